// FILE: lifecycle.go
package ilog

import (
	"os"
	"time"
)

// Flush blocks until the processor has drained everything currently queued
// and synced the active file, or until the timeout elapses. A zero timeout
// uses the configured default. This is a best-effort drain, not a durability
// guarantee: a write in flight when the timeout fires may not have reached
// storage yet.
func (e *Engine) Flush(timeout time.Duration) error {
	e.state.flushMutex.Lock()
	defer e.state.flushMutex.Unlock()

	if !e.state.IsInitialized.Load() || e.state.ShutdownCalled.Load() {
		return fmtErrorf("engine not initialized or already shut down")
	}
	if !e.state.Started.Load() {
		return fmtErrorf("engine not started")
	}

	if timeout <= 0 {
		timeout = time.Duration(e.getConfig().FlushTimeoutMs) * time.Millisecond
	}

	return e.requestFlush(timeout)
}

// requestFlush performs the drain handshake with the processor without
// lifecycle state checks, shared by Flush and Shutdown.
func (e *Engine) requestFlush(timeout time.Duration) error {
	// Create a channel to wait for confirmation from the processor
	confirmChan := make(chan struct{})

	// Send the request with the confirmation channel
	select {
	case e.state.flushRequestChan <- confirmChan:
		// Request sent
	case <-time.After(minWaitTime): // Short timeout to prevent blocking if processor is stuck
		return fmtErrorf("failed to send flush request to processor (possible deadlock or high load)")
	}

	select {
	case <-confirmChan:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// Shutdown gracefully closes the engine: drain remaining records, stop the
// processor, wait for it to exit, then sync and close the file. Idempotent,
// and safe to call from any goroutine. Errors during the sequence are
// collected and returned but never interrupt it; the engine always ends up
// stopped. A later Initialize performs a cold restart.
func (e *Engine) Shutdown() error {
	if !e.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	if !e.state.IsInitialized.Load() {
		e.state.ShutdownCalled.Store(false)
		e.state.ProcessorExited.Store(true)
		return nil
	}

	// Best-effort drain before signaling stop; the processor drains the
	// channel again on close, so records enqueued meanwhile still land.
	var finalErr error
	if e.state.Started.Load() {
		flushTimeout := time.Duration(e.getConfig().FlushTimeoutMs) * time.Millisecond
		if err := e.requestFlush(flushTimeout); err != nil {
			finalErr = combineErrors(finalErr, err)
		}

		if err := e.stop(); err != nil {
			finalErr = combineErrors(finalErr, err)
		}
	}

	e.state.IsInitialized.Store(false)

	if currentFile, ok := e.state.CurrentFile.Load().(*os.File); ok && currentFile != nil {
		if err := currentFile.Sync(); err != nil {
			syncErr := fmtErrorf("failed to sync log file '%s' during shutdown: %w", currentFile.Name(), err)
			finalErr = combineErrors(finalErr, syncErr)
		}
		if err := currentFile.Close(); err != nil {
			closeErr := fmtErrorf("failed to close log file '%s' during shutdown: %w", currentFile.Name(), err)
			finalErr = combineErrors(finalErr, closeErr)
		}
		e.state.CurrentFile.Store((*os.File)(nil))
	}

	return finalErr
}

// shutdownTimeout returns the bound on waiting for the processor to exit.
// Defaults to 2x the flush timeout when not configured. The original design
// joined the worker without any bound; a hung write could then hang shutdown
// forever, so the join is bounded here and the timeout surfaces as an error
// instead.
func (e *Engine) shutdownTimeout() time.Duration {
	cfg := e.getConfig()
	if cfg.ShutdownTimeoutMs > 0 {
		return time.Duration(cfg.ShutdownTimeoutMs) * time.Millisecond
	}
	return 2 * time.Duration(cfg.FlushTimeoutMs) * time.Millisecond
}
