// Package logging expõe um logger com níveis e pares chave/valor,
// implementado sobre github.com/goliatone/go-logger.
package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Logger é o contrato usado pelo gateway. Os args seguem o estilo
// chave/valor do slog: "file", name, "err", err.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	Level  string
	Format string
}

// Root é o logger raiz; Named devolve filhos por módulo.
type Root struct {
	base *glog.BaseLogger
}

func New(cfg Config) (*Root, error) {
	var options []glog.Option

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	return &Root{base: glog.NewLogger(options...)}, nil
}

func (r *Root) Debug(msg string, args ...any) { r.base.Debug(msg, args...) }
func (r *Root) Info(msg string, args ...any)  { r.base.Info(msg, args...) }
func (r *Root) Warn(msg string, args ...any)  { r.base.Warn(msg, args...) }
func (r *Root) Error(msg string, args ...any) { r.base.Error(msg, args...) }

// Named devolve um logger filho identificado por name.
func (r *Root) Named(name string) Logger {
	if r == nil || r.base == nil {
		return NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return r
	}
	return r.base.GetLogger(name)
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return ""
	}
}

type noop struct{}

func (noop) Debug(string, ...any) {}
func (noop) Info(string, ...any)  {}
func (noop) Warn(string, ...any)  {}
func (noop) Error(string, ...any) {}

// NoOp descarta tudo. Default seguro quando nenhum logger é injetado.
func NoOp() Logger { return noop{} }

// OrNoOp devolve l, ou NoOp se l for nil.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOp()
	}
	return l
}
