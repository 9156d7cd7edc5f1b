// FILE: compat/fasthttp.go

// Package compat adapts the logging engine to the logger interfaces of
// third-party servers so their internal messages land in the same pipeline.
package compat

import (
	"fmt"
	"strings"

	"github.com/rathven/ilog"
)

// FastHTTPAdapter implements fasthttp's Logger interface over an engine.
type FastHTTPAdapter struct {
	module        *ilog.ModuleLogger
	defaultLevel  int64
	levelDetector func(string) int64
}

// NewFastHTTPAdapter creates a fasthttp-compatible adapter. A nil engine
// routes through the package default.
func NewFastHTTPAdapter(engine *ilog.Engine, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		module:        ilog.NewModule(engine, "fasthttp"),
		defaultLevel:  ilog.LevelInfo,
		levelDetector: DetectLogLevel,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when detection yields nothing
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to classify message severity
func WithLevelDetector(detector func(string) int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		level = a.levelDetector(msg)
	}

	switch level {
	case ilog.LevelTrace:
		a.module.Trace(msg)
	case ilog.LevelDebug:
		a.module.Debug(msg)
	case ilog.LevelWarn:
		a.module.Warn(msg)
	case ilog.LevelError:
		a.module.Error(msg)
	case ilog.LevelCritical:
		a.module.Critical(msg)
	default:
		a.module.Info(msg)
	}
}

// DetectLogLevel classifies a fasthttp message by its content.
func DetectLogLevel(msg string) int64 {
	msgLower := strings.ToLower(msg)

	if strings.Contains(msgLower, "panic") ||
		strings.Contains(msgLower, "fatal") {
		return ilog.LevelCritical
	}

	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") {
		return ilog.LevelError
	}

	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return ilog.LevelWarn
	}

	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return ilog.LevelDebug
	}

	return ilog.LevelInfo
}
