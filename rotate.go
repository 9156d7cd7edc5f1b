// FILE: rotate.go
package ilog

import (
	"fmt"
	"os"
)

// rotateLogFile implements the backup-chain rotation strategy.
// The active file is closed and renamed to path.1, existing backups age by
// one index, and the slot past MaxBackups is deleted so at most MaxBackups
// backups exist. The path is then reopened fresh.
//
// Any step failing abandons rotation for this cycle: the error is reported,
// the path is reopened (or kept) in append mode, and the file is allowed to
// exceed the ceiling until the next successful attempt. No queued record is
// lost either way. Only the processor goroutine calls this.
func (e *Engine) rotateLogFile(cfg *Config) {
	currentFile, _ := e.state.CurrentFile.Load().(*os.File)
	if currentFile != nil {
		if err := currentFile.Close(); err != nil {
			e.internalLog("failed to close log file before rotation: %v\n", err)
			// Continue with rotation anyway
		}
	}

	rotated := true
	if err := ageBackups(cfg.FilePath, cfg.MaxBackups); err != nil {
		e.internalLog("log rotation failed: %v\n", err)
		rotated = false
	}

	// Reopen the path regardless of rotation outcome; on failure this
	// reattaches the still-oversized file in append mode.
	newFile, err := e.openLogFile(cfg.FilePath)
	if err != nil {
		e.internalLog("failed to reopen log file after rotation: %v\n", err)
		e.state.CurrentFile.Store((*os.File)(nil))
		e.state.CurrentSize.Store(0)
		return
	}

	e.state.CurrentFile.Store(newFile)
	e.state.CurrentSize.Store(0)
	if fi, errStat := newFile.Stat(); errStat == nil {
		e.state.CurrentSize.Store(fi.Size())
	}

	if rotated {
		e.state.Rotations.Add(1)
		// Through the normal pipeline, after reopening, so the record cannot
		// recurse into another rotation of the just-closed file.
		e.Log(LevelInfo, engineModule, "Log file rotated")
	}
}

// ageBackups shifts the backup chain by one slot and moves the active file
// to index 1. path.N is deleted first, then path.i renames to path.(i+1)
// for i = N-1..1, then path renames to path.1. With N == 1 the rename onto
// path.1 replaces the previous backup.
func ageBackups(path string, maxBackups int64) error {
	for i := maxBackups; i >= 1; i-- {
		backup := backupPath(path, i)
		if _, err := os.Stat(backup); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmtErrorf("failed to stat backup '%s': %w", backup, err)
		}

		if i == maxBackups {
			if err := os.Remove(backup); err != nil {
				return fmtErrorf("failed to delete oldest backup '%s': %w", backup, err)
			}
		} else {
			next := backupPath(path, i+1)
			if err := os.Rename(backup, next); err != nil {
				return fmtErrorf("failed to age backup '%s' to '%s': %w", backup, next, err)
			}
		}
	}

	if err := os.Rename(path, backupPath(path, 1)); err != nil {
		return fmtErrorf("failed to move active log '%s' to first backup: %w", path, err)
	}
	return nil
}

// backupPath returns the path of the backup at the given chain index
func backupPath(path string, index int64) string {
	return fmt.Sprintf("%s.%d", path, index)
}
