// FILE: integration_test.go
package ilog

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullLifecycle(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "lifecycle.log")

	engine, err := NewBuilder().
		TargetString("file").
		FilePath(logPath).
		LevelString("trace").
		MaxSizeMB(1).
		MaxBackups(2).
		BufferSize(1000).
		Build()
	require.NoError(t, err)
	require.NotNil(t, engine)

	defer func() {
		assert.NoError(t, engine.Shutdown())
	}()

	// Module facade across every severity
	camera := NewModule(engine, "CAMERA")
	camera.Trace("sensor poll")
	camera.Debug("frame buffer state", 3)
	camera.Info("camera ready")
	camera.Warn("exposure clipped")
	camera.Error("frame corrupt", 17)
	camera.Critical("device lost")

	// Runtime override reconfigures without a new engine
	require.NoError(t, engine.ApplyConfigString("level=debug", "file_path="+logPath))
	camera.Trace("suppressed after override")

	// Concurrent producers while the level changes underneath
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				engine.Log(LevelInfo, "WORKER", fmt.Sprintf("int-p%d-i%d", id, i))
			}
		}(p)
	}
	wg.Wait()

	require.NoError(t, engine.Flush(0))
	content := readLogFile(t, logPath)

	assert.Contains(t, content, "camera ready")
	assert.Contains(t, content, "device lost")
	assert.NotContains(t, content, "suppressed after override")
	assert.Equal(t, 100, strings.Count(content, "int-p"))
	assert.Equal(t, uint64(0), engine.Stats().Dropped)
}
