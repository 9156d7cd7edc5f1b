// FILE: module.go
package ilog

// ModuleLogger is a lightweight handle bound to a fixed module name, offering
// one call per severity. It holds no state beyond the binding and delegates
// every call to the engine.
type ModuleLogger struct {
	engine *Engine
	name   string
}

// NewModule binds a module name to an engine. A nil engine binds to the
// package default engine.
func NewModule(engine *Engine, name string) *ModuleLogger {
	if engine == nil {
		engine = defaultEngine
	}
	return &ModuleLogger{engine: engine, name: name}
}

// Name returns the bound module name.
func (m *ModuleLogger) Name() string {
	return m.name
}

// Trace logs a message at trace level. Extra args are stringified and joined
// space-separated after the message; the same applies to every severity.
func (m *ModuleLogger) Trace(message string, args ...any) {
	m.log(LevelTrace, message, args)
}

// Debug logs a message at debug level.
func (m *ModuleLogger) Debug(message string, args ...any) {
	m.log(LevelDebug, message, args)
}

// Info logs a message at info level.
func (m *ModuleLogger) Info(message string, args ...any) {
	m.log(LevelInfo, message, args)
}

// Warn logs a message at warning level.
func (m *ModuleLogger) Warn(message string, args ...any) {
	m.log(LevelWarn, message, args)
}

// Error logs a message at error level.
func (m *ModuleLogger) Error(message string, args ...any) {
	m.log(LevelError, message, args)
}

// Critical logs a message at critical level.
func (m *ModuleLogger) Critical(message string, args ...any) {
	m.log(LevelCritical, message, args)
}

func (m *ModuleLogger) log(level int64, message string, args []any) {
	if len(args) > 0 {
		message = joinArgs(message, args)
	}
	m.engine.Log(level, m.name, message)
}
