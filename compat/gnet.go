// FILE: compat/gnet.go

package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/rathven/ilog"
)

// GnetAdapter implements gnet's logging.Logger interface over an engine.
type GnetAdapter struct {
	engine       *ilog.Engine
	module       *ilog.ModuleLogger
	fatalHandler func(msg string)
}

// NewGnetAdapter creates a gnet-compatible adapter. A nil engine routes
// through the package default.
func NewGnetAdapter(engine *ilog.Engine, opts ...GnetOption) *GnetAdapter {
	if engine == nil {
		engine = ilog.Default()
	}
	adapter := &GnetAdapter{
		engine: engine,
		module: ilog.NewModule(engine, "gnet"),
		fatalHandler: func(msg string) {
			os.Exit(1)
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.module.Debug(fmt.Sprintf(format, args...))
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.module.Info(fmt.Sprintf(format, args...))
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.module.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.module.Error(fmt.Sprintf(format, args...))
}

// Fatalf logs at critical level, drains the queue and triggers the fatal
// handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.module.Critical(msg)

	_ = a.engine.Flush(100 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
