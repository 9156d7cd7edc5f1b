// FILE: module_test.go
package ilog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleLoggerName(t *testing.T) {
	engine, _ := createTestEngine(t)
	defer engine.Shutdown()

	m := NewModule(engine, "CAMERA")
	assert.Equal(t, "CAMERA", m.Name())
}

func TestModuleLoggerNilEngineBindsDefault(t *testing.T) {
	m := NewModule(nil, "ORPHAN")
	assert.Same(t, defaultEngine, m.engine)
}

func TestModuleLoggerLevels(t *testing.T) {
	engine, logPath := createTestEngine(t)
	defer engine.Shutdown()

	m := NewModule(engine, "INFERENCE")

	m.Trace("trace record")
	m.Debug("debug record")
	m.Info("info record")
	m.Warn("warn record")
	m.Error("error record")
	m.Critical("critical record")

	require.NoError(t, engine.Flush(0))
	content := readLogFile(t, logPath)

	assert.Contains(t, content, "[TRACE   ] [INFERENCE      ] trace record")
	assert.Contains(t, content, "[DEBUG   ] [INFERENCE      ] debug record")
	assert.Contains(t, content, "[INFO    ] [INFERENCE      ] info record")
	assert.Contains(t, content, "[WARN    ] [INFERENCE      ] warn record")
	assert.Contains(t, content, "[ERROR   ] [INFERENCE      ] error record")
	assert.Contains(t, content, "[CRITICAL] [INFERENCE      ] critical record")
}

func TestModuleLoggerArgs(t *testing.T) {
	engine, logPath := createTestEngine(t)
	defer engine.Shutdown()

	m := NewModule(engine, "CAMERA")
	m.Warn("frame dropped", 17, errors.New("buffer full"))

	require.NoError(t, engine.Flush(0))
	assert.Contains(t, readLogFile(t, logPath), "frame dropped 17 buffer full")
}
