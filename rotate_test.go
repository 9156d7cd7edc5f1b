// FILE: rotate_test.go
package ilog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeActive(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readBackup(t *testing.T, path string, index int64) string {
	t.Helper()
	data, err := os.ReadFile(backupPath(path, index))
	require.NoError(t, err)
	return string(data)
}

func TestBackupPath(t *testing.T) {
	assert.Equal(t, "/var/log/app.log.1", backupPath("/var/log/app.log", 1))
	assert.Equal(t, "/var/log/app.log.12", backupPath("/var/log/app.log", 12))
}

// TestAgeBackupsChain verifies the newest-first chain over repeated
// rotations: index 1 always holds the newest backup, the slot past the
// chain length is deleted
func TestAgeBackupsChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	writeActive(t, path, "first")
	require.NoError(t, ageBackups(path, 2))
	assert.Equal(t, "first", readBackup(t, path, 1))
	assert.NoFileExists(t, backupPath(path, 2))

	writeActive(t, path, "second")
	require.NoError(t, ageBackups(path, 2))
	assert.Equal(t, "second", readBackup(t, path, 1))
	assert.Equal(t, "first", readBackup(t, path, 2))

	writeActive(t, path, "third")
	require.NoError(t, ageBackups(path, 2))
	assert.Equal(t, "third", readBackup(t, path, 1))
	assert.Equal(t, "second", readBackup(t, path, 2))
	assert.NoFileExists(t, backupPath(path, 3))

	// The oldest content fell off the end of the chain
	assert.NoFileExists(t, path)
}

// TestAgeBackupsSingleSlot verifies chain length one replaces the sole
// backup on each rotation
func TestAgeBackupsSingleSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	writeActive(t, path, "gen-1")
	require.NoError(t, ageBackups(path, 1))
	assert.Equal(t, "gen-1", readBackup(t, path, 1))

	writeActive(t, path, "gen-2")
	require.NoError(t, ageBackups(path, 1))
	assert.Equal(t, "gen-2", readBackup(t, path, 1))
	assert.NoFileExists(t, backupPath(path, 2))
}

func TestAgeBackupsMissingActive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.log")

	assert.Error(t, ageBackups(path, 3))
}

// TestAgeBackupsSparseChain verifies holes in the chain do not break aging
func TestAgeBackupsSparseChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	// Only index 3 exists, 1 and 2 are holes
	writeActive(t, backupPath(path, 3), "orphan")
	writeActive(t, path, "active")

	require.NoError(t, ageBackups(path, 5))
	assert.Equal(t, "active", readBackup(t, path, 1))
	assert.Equal(t, "orphan", readBackup(t, path, 4))
	assert.NoFileExists(t, backupPath(path, 3))
}

// fixedSizeMessage pads a marker so the rendered line is exactly lineSize
// bytes for the calling goroutine; format overhead is 57 bytes plus the
// goroutine id digits
func fixedSizeMessage(t *testing.T, marker string, lineSize int) string {
	t.Helper()
	msgLen := lineSize - 57 - len(strconv.FormatUint(goroutineID(), 10))
	require.Greater(t, msgLen, len(marker))
	return marker + strings.Repeat("x", msgLen-len(marker))
}

// TestRotationScenario walks the documented sizing example: a 1000-byte
// ceiling, 200-byte records and a two-slot chain gives exactly one rotation
// on the fifth write, a full backup at index 1 and the sixth record alone in
// the active file
func TestRotationScenario(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "scenario.log")

	cfg := DefaultConfig()
	cfg.Level = LevelWarn // Bootstrap and rotation notices stay below threshold
	cfg.Target = TargetFile
	cfg.FilePath = logPath
	cfg.MaxSizeBytes = 1000
	cfg.MaxBackups = 2
	cfg.BufferSize = 64
	cfg.FlushIntervalMs = 10

	engine := NewEngine()
	require.NoError(t, engine.Initialize(cfg))
	defer engine.Shutdown()

	for i := 1; i <= 6; i++ {
		msg := fixedSizeMessage(t, fmt.Sprintf("r%d-", i), 200)
		engine.Log(LevelWarn, "BULK", msg)
		require.NoError(t, engine.Flush(0))
	}

	assert.Equal(t, uint64(1), engine.Stats().Rotations)

	backup, err := os.Stat(backupPath(logPath, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), backup.Size())
	assert.NoFileExists(t, backupPath(logPath, 2))

	active, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Equal(t, int64(200), active.Size())

	assert.Contains(t, readBackup(t, logPath, 1), "r5-")
	assert.Contains(t, readLogFile(t, logPath), "r6-")
}

// TestRotationEndToEnd drives the engine past the size ceiling and verifies
// the backup chain, the counters and that no record is lost
func TestRotationEndToEnd(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rotate.log")

	cfg := DefaultConfig()
	cfg.Level = LevelTrace
	cfg.Target = TargetFile
	cfg.FilePath = logPath
	cfg.MaxSizeBytes = 4096
	cfg.MaxBackups = 2
	cfg.BufferSize = 64
	cfg.FlushIntervalMs = 10

	engine := NewEngine()
	require.NoError(t, engine.Initialize(cfg))
	defer engine.Shutdown()

	payload := strings.Repeat("x", 900)
	for i := 0; i < 12; i++ {
		engine.Log(LevelInfo, "BULK", fmt.Sprintf("marker-%d %s", i, payload))
		require.NoError(t, engine.Flush(0))
	}

	assert.GreaterOrEqual(t, engine.Stats().Rotations, uint64(2))
	assert.FileExists(t, backupPath(logPath, 1))

	// The newest records are in the chain even though the oldest fell off
	combined := readLogFile(t, logPath)
	for i := int64(1); i <= cfg.MaxBackups; i++ {
		if data, err := os.ReadFile(backupPath(logPath, i)); err == nil {
			combined += string(data)
		}
	}
	assert.Contains(t, combined, "marker-11 ")
	assert.Contains(t, combined, "Log file rotated")
}

// TestRotationCeilingBound verifies a rotated-out file never exceeds the
// ceiling by more than one record
func TestRotationCeilingBound(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "bound.log")

	cfg := DefaultConfig()
	cfg.Level = LevelWarn
	cfg.Target = TargetFile
	cfg.FilePath = logPath
	cfg.MaxSizeBytes = 2048
	cfg.MaxBackups = 3
	cfg.BufferSize = 256
	cfg.FlushIntervalMs = 10

	engine := NewEngine()
	require.NoError(t, engine.Initialize(cfg))
	defer engine.Shutdown()

	const recordSize = 300
	for i := 0; i < 40; i++ {
		engine.Log(LevelWarn, "BULK", fixedSizeMessage(t, "b-", recordSize))
	}
	require.NoError(t, engine.Flush(0))

	for i := int64(1); i <= cfg.MaxBackups; i++ {
		fi, err := os.Stat(backupPath(logPath, i))
		if err != nil {
			continue
		}
		assert.LessOrEqual(t, fi.Size(), cfg.MaxSizeBytes+recordSize,
			"backup %d exceeds ceiling by more than one record", i)
	}
}

// TestRotationDisabled verifies a zero ceiling never rotates
func TestRotationDisabled(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "norotate.log")

	cfg := DefaultConfig()
	cfg.Target = TargetFile
	cfg.FilePath = logPath
	cfg.MaxSizeBytes = 0
	cfg.FlushIntervalMs = 10

	engine := NewEngine()
	require.NoError(t, engine.Initialize(cfg))
	defer engine.Shutdown()

	engine.Log(LevelInfo, "TEST", strings.Repeat("z", 4096))
	require.NoError(t, engine.Flush(0))

	assert.Equal(t, uint64(0), engine.Stats().Rotations)
	assert.NoFileExists(t, backupPath(logPath, 1))
}
