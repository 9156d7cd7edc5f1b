// FILE: default.go
package ilog

import (
	"time"
)

// Package-level default engine, for applications that want the classic
// one-engine-per-process usage without threading an *Engine through every
// collaborator. Lazily self-initializes on first use.
var defaultEngine = NewEngine()

// Default returns the package-level engine instance.
func Default() *Engine {
	return defaultEngine
}

// Initialize applies a configuration to the default engine and starts it
func Initialize(cfg *Config) error {
	return defaultEngine.Initialize(cfg)
}

// Log writes a record through the default engine
func Log(level int64, module, message string) {
	defaultEngine.Log(level, module, message)
}

// SetLevel updates the default engine's threshold
func SetLevel(level int64) {
	defaultEngine.SetLevel(level)
}

// GetLevel returns the default engine's threshold
func GetLevel() int64 {
	return defaultEngine.GetLevel()
}

// Flush drains the default engine's queue within the timeout
func Flush(timeout time.Duration) error {
	return defaultEngine.Flush(timeout)
}

// Shutdown gracefully closes the default engine
func Shutdown() error {
	return defaultEngine.Shutdown()
}

// Module binds a module name to the default engine
func Module(name string) *ModuleLogger {
	return NewModule(defaultEngine, name)
}
