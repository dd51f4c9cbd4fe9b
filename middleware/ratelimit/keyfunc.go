package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// DefaultKeyHeader é o header com o IP do cliente colocado pelo edge (Cloudflare).
const DefaultKeyHeader = "CF-Connecting-IP"

// FallbackKey é usada quando nenhuma fonte identifica o cliente.
const FallbackKey = "unknown"

type KeyFunc func(r *http.Request) string

// KeyOptions define de onde sai a chave do cliente, em ordem:
// header, X-Forwarded-For (se confiável), RemoteAddr (se habilitado), FallbackKey.
type KeyOptions struct {
	Header             string
	TrustXForwardedFor bool
	UseRemoteAddr      bool
}

func DefaultKeyFunc(opts KeyOptions) KeyFunc {
	return func(r *http.Request) string {
		if opts.Header != "" {
			if v := strings.TrimSpace(r.Header.Get(opts.Header)); v != "" {
				return v
			}
		}

		if opts.TrustXForwardedFor {
			// primeiro IP do X-Forwarded-For (cliente original)
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
		}

		if opts.UseRemoteAddr {
			host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
			if err == nil && host != "" {
				return host
			}
			if r.RemoteAddr != "" {
				return r.RemoteAddr
			}
		}
		return FallbackKey
	}
}
