// FILE: processor.go
package ilog

import (
	"os"
	"time"
)

// processRecords is the main processing loop running in a separate goroutine.
// It exits only when the channel is closed AND every buffered record has been
// delivered: a closed Go channel keeps handing out its buffered values, so a
// stop request issued mid-backlog still drains fully before the loop returns.
func (e *Engine) processRecords(ch <-chan logRecord) {
	e.state.ProcessorExited.Store(false)
	defer e.state.ProcessorExited.Store(true) // Ensure flag is set on exit

	cfg := e.getConfig()
	flushInterval := cfg.FlushIntervalMs
	if flushInterval <= 0 {
		flushInterval = DefaultConfig().FlushIntervalMs
	}
	flushTicker := time.NewTicker(time.Duration(flushInterval) * time.Millisecond)
	defer flushTicker.Stop()

	for {
		select {
		case record, ok := <-ch:
			if !ok {
				// Channel closed and buffer drained: final sync and exit
				e.performSync()
				return
			}
			e.writeRecord(record)

		case confirmChan := <-e.state.flushRequestChan:
			e.handleFlushRequest(ch, confirmChan)

		case <-flushTicker.C:
			e.performSync()
		}
	}
}

// handleFlushRequest drains everything currently queued, syncs the file, and
// confirms back to the Flush caller.
func (e *Engine) handleFlushRequest(ch <-chan logRecord, confirmChan chan struct{}) {
	e.drainPending(ch)
	e.performSync()
	close(confirmChan) // Signal completion back to the Flush caller
}

// drainPending writes every record already buffered without blocking for more
func (e *Engine) drainPending(ch <-chan logRecord) {
	for {
		select {
		case record, ok := <-ch:
			if !ok {
				return
			}
			e.writeRecord(record)
		default:
			return
		}
	}
}

// writeRecord writes one formatted line to every configured target.
// The file size check runs only after a completed write, so a single record
// may transiently push the file past the ceiling by its own length.
func (e *Engine) writeRecord(record logRecord) {
	cfg := e.getConfig()
	written := false

	if cfg.consoleEnabled() {
		if s, ok := e.state.ConsoleWriter.Load().(*sink); ok && s != nil {
			if _, err := s.w.Write(record.Line); err != nil {
				e.internalLog("failed to write to console: %v\n", err)
			} else {
				written = true
			}
		}
	}

	if cfg.fileEnabled() {
		currentFile, _ := e.state.CurrentFile.Load().(*os.File)
		if currentFile == nil {
			// Degraded mode: file target configured but not open
			if !written {
				e.state.DroppedLogs.Add(1)
				e.state.TotalDropped.Add(1)
			}
		} else {
			n, err := currentFile.Write(record.Line)
			if err != nil {
				e.internalLog("failed to write to log file: %v\n", err)
				if !written {
					e.state.DroppedLogs.Add(1)
					e.state.TotalDropped.Add(1)
				}
			} else {
				written = true
				e.state.CurrentSize.Add(int64(n))

				if cfg.MaxSizeBytes > 0 && e.state.CurrentSize.Load() >= cfg.MaxSizeBytes {
					e.rotateLogFile(cfg)
				}
			}
		}
	}

	if written {
		e.state.Processed.Add(1)
	}
}

// performSync syncs the active log file
func (e *Engine) performSync() {
	cfg := e.getConfig()
	if !cfg.fileEnabled() {
		return
	}

	if currentFile, ok := e.state.CurrentFile.Load().(*os.File); ok && currentFile != nil {
		if err := currentFile.Sync(); err != nil {
			e.internalLog("failed to sync log file '%s': %v\n", currentFile.Name(), err)
		}
	}
}
