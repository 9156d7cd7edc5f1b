// FILE: engine_test.go
package ilog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestEngine creates a file-target engine in a temp directory
func createTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "test.log")

	cfg := DefaultConfig()
	cfg.Level = LevelTrace
	cfg.Target = TargetFile
	cfg.FilePath = logPath
	cfg.BufferSize = 2048
	cfg.FlushIntervalMs = 10

	engine := NewEngine()
	require.NoError(t, engine.Initialize(cfg))

	return engine, logPath
}

func readLogFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// TestNewEngine verifies initial state before any configuration
func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine)
	assert.False(t, engine.state.IsInitialized.Load())
	assert.False(t, engine.state.Started.Load())
	assert.True(t, engine.state.ProcessorExited.Load())
	assert.Equal(t, LevelInfo, engine.GetLevel())
}

func TestInitialize(t *testing.T) {
	engine, logPath := createTestEngine(t)
	defer engine.Shutdown()

	assert.True(t, engine.state.IsInitialized.Load())
	assert.True(t, engine.state.Started.Load())

	require.NoError(t, engine.Flush(0))

	// Bootstrap records announce the effective configuration
	content := readLogFile(t, logPath)
	assert.Contains(t, content, "Logging system initialized")
	assert.Contains(t, content, "Log level: TRACE")
	assert.Contains(t, content, "Log target: FILE")
	assert.Contains(t, content, "Log file: "+logPath)
}

func TestInitializeRejectsInvalidConfig(t *testing.T) {
	engine := NewEngine()

	assert.Error(t, engine.Initialize(nil))

	cfg := DefaultConfig()
	cfg.Target = 7
	assert.Error(t, engine.Initialize(cfg))

	cfg = DefaultConfig()
	cfg.Target = TargetFile
	cfg.FilePath = ""
	assert.Error(t, engine.Initialize(cfg))
}

// TestLazyInitialization verifies the engine self-initializes on first Log
func TestLazyInitialization(t *testing.T) {
	engine := NewEngine()
	defer engine.Shutdown()

	assert.False(t, engine.state.IsInitialized.Load())

	engine.Log(LevelInfo, "TEST", "lazy init probe")

	assert.True(t, engine.state.IsInitialized.Load())
	assert.Equal(t, LevelInfo, engine.GetLevel())
	assert.Equal(t, TargetConsole, engine.getConfig().Target)
}

func TestLevelFiltering(t *testing.T) {
	engine, logPath := createTestEngine(t)
	defer engine.Shutdown()

	engine.SetLevel(LevelWarn)

	engine.Log(LevelTrace, "TEST", "trace message")
	engine.Log(LevelDebug, "TEST", "debug message")
	engine.Log(LevelInfo, "TEST", "info message")
	engine.Log(LevelWarn, "TEST", "warn message")
	engine.Log(LevelError, "TEST", "error message")
	engine.Log(LevelCritical, "TEST", "critical message")

	require.NoError(t, engine.Flush(0))
	content := readLogFile(t, logPath)

	assert.NotContains(t, content, "trace message")
	assert.NotContains(t, content, "debug message")
	assert.NotContains(t, content, "info message")
	assert.Contains(t, content, "warn message")
	assert.Contains(t, content, "error message")
	assert.Contains(t, content, "critical message")
}

// TestSetLevelImmediate verifies threshold changes apply to the next call
func TestSetLevelImmediate(t *testing.T) {
	engine, logPath := createTestEngine(t)
	defer engine.Shutdown()

	engine.SetLevel(LevelInfo)
	engine.Log(LevelDebug, "TEST", "suppressed debug")

	engine.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, engine.GetLevel())
	engine.Log(LevelDebug, "TEST", "visible debug")

	require.NoError(t, engine.Flush(0))
	content := readLogFile(t, logPath)

	assert.NotContains(t, content, "suppressed debug")
	assert.Contains(t, content, "visible debug")
}

func TestConcurrentLogging(t *testing.T) {
	engine, logPath := createTestEngine(t)
	defer engine.Shutdown()

	const producers = 10
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				engine.Log(LevelInfo, "WORKER", fmt.Sprintf("record p%d-i%d", id, i))
			}
		}(p)
	}
	wg.Wait()

	require.NoError(t, engine.Flush(0))
	content := readLogFile(t, logPath)

	assert.Equal(t, producers*perProducer, strings.Count(content, "record p"))
	assert.Equal(t, uint64(0), engine.Stats().Dropped)
}

// TestConcurrentSetLevel verifies level changes race safely with producers
func TestConcurrentSetLevel(t *testing.T) {
	engine, _ := createTestEngine(t)
	defer engine.Shutdown()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			engine.SetLevel(LevelDebug)
			engine.SetLevel(LevelError)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			engine.Log(LevelInfo, "TEST", "racing record")
		}
	}()

	wg.Wait()

	// The final SetLevel wins; no particular record count is guaranteed
	assert.Equal(t, LevelError, engine.GetLevel())
}

func TestOrderingSingleProducer(t *testing.T) {
	engine, logPath := createTestEngine(t)
	defer engine.Shutdown()

	for i := 0; i < 100; i++ {
		engine.Log(LevelInfo, "SEQ", fmt.Sprintf("seq-%04d", i))
	}

	require.NoError(t, engine.Flush(0))
	content := readLogFile(t, logPath)

	// Enqueue order is write order
	prev := -1
	for i := 0; i < 100; i++ {
		idx := strings.Index(content, fmt.Sprintf("seq-%04d", i))
		require.GreaterOrEqual(t, idx, 0, "missing record %d", i)
		assert.Greater(t, idx, prev, "record %d out of order", i)
		prev = idx
	}
}

func TestStats(t *testing.T) {
	engine, _ := createTestEngine(t)
	defer engine.Shutdown()

	engine.Log(LevelInfo, "TEST", "counted record")
	require.NoError(t, engine.Flush(0))

	stats := engine.Stats()
	// Bootstrap records count too
	assert.GreaterOrEqual(t, stats.Processed, uint64(5))
	assert.Equal(t, uint64(0), stats.Dropped)
	assert.Equal(t, uint64(0), stats.Rotations)
}

func TestGetConfigReturnsCopy(t *testing.T) {
	engine, _ := createTestEngine(t)
	defer engine.Shutdown()

	cfg := engine.GetConfig()
	cfg.MaxBackups = 99

	assert.NotEqual(t, int64(99), engine.getConfig().MaxBackups)
}

func TestApplyConfigString(t *testing.T) {
	tests := []struct {
		name      string
		overrides []string
		verify    func(t *testing.T, cfg *Config)
		wantError bool
	}{
		{
			name:      "level by name",
			overrides: []string{"level=debug"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, LevelDebug, cfg.Level)
			},
		},
		{
			name:      "level numeric",
			overrides: []string{"level=8"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, LevelError, cfg.Level)
			},
		},
		{
			name:      "target and sizes",
			overrides: []string{"target=both", "max_size_bytes=4096", "max_backups=3"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, TargetBoth, cfg.Target)
				assert.Equal(t, int64(4096), cfg.MaxSizeBytes)
				assert.Equal(t, int64(3), cfg.MaxBackups)
			},
		},
		{
			name:      "size in megabytes",
			overrides: []string{"max_size_mb=20"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int64(20*1024*1024), cfg.MaxSizeBytes)
			},
		},
		{
			name:      "invalid format",
			overrides: []string{"no-equals-sign"},
			wantError: true,
		},
		{
			name:      "unknown key",
			overrides: []string{"unknown_key=value"},
			wantError: true,
		},
		{
			name:      "invalid value type",
			overrides: []string{"buffer_size=not_a_number"},
			wantError: true,
		},
		{
			name:      "multiple errors combined",
			overrides: []string{"unknown_key=value", "buffer_size=bad"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, logPath := createTestEngine(t)
			defer engine.Shutdown()

			overrides := append([]string{"file_path=" + logPath}, tt.overrides...)
			err := engine.ApplyConfigString(overrides...)

			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.verify(t, engine.getConfig())
		})
	}
}

// TestReconfigureKeepsSingleProcessor verifies Initialize on a live engine
// never leaves a second worker running
func TestReconfigureKeepsSingleProcessor(t *testing.T) {
	engine, logPath := createTestEngine(t)
	defer engine.Shutdown()

	cfg := engine.GetConfig()
	cfg.BufferSize = 4096 // Forces a processor restart
	require.NoError(t, engine.Initialize(cfg))

	engine.Log(LevelInfo, "TEST", "post-reconfigure record")
	require.NoError(t, engine.Flush(0))

	content := readLogFile(t, logPath)
	assert.Contains(t, content, "post-reconfigure record")
	assert.True(t, engine.state.Started.Load())
}
