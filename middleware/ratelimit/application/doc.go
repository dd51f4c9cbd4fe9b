// Package application contém o caso de uso do gate de admissão.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: AdmissionService.Admit(ctx, key) retorna um Verdict (success + retry-after).
package application
