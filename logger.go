package mandel

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var renderLog atomic.Pointer[slog.Logger]

func init() {
	SetLogger(nil)
}

// SetLogger routes the renderers' diagnostics to l. Renders write only
// debug records: one per finished band with its rows and sub-plane, and
// a summary with the elapsed time once a render returns. Nothing is
// logged until SetLogger is called with a non-nil logger; nil silences it
// again.
//
// Bands finish on pool goroutines, so l must be safe for concurrent use.
// SetLogger itself may be called while renders are running.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	renderLog.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return renderLog.Load()
}
