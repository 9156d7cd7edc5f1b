// FILE: state.go
package ilog

import (
	"sync"
	"sync/atomic"
)

// State encapsulates the runtime state of the engine.
// Lifecycle: uninitialized -> running -> draining -> stopped; stopped is
// left again only through a fresh Initialize (cold restart).
type State struct {
	IsInitialized   atomic.Bool
	Started         atomic.Bool
	ShutdownCalled  atomic.Bool
	ProcessorExited atomic.Bool // Tracks if the processor goroutine is running or has exited

	flushRequestChan chan chan struct{} // Channel to request a drain+sync
	flushMutex       sync.Mutex         // Protect concurrent Flush calls

	CurrentFile atomic.Value // stores *os.File, nil in console-only or degraded mode
	CurrentSize atomic.Int64 // Size of the active log file

	ActiveLogChannel atomic.Value // stores chan logRecord
	ConsoleWriter    atomic.Value // stores *sink (os.Stdout, os.Stderr, or io.Discard)

	// Processing counters
	DroppedLogs  atomic.Uint64 // Drops not yet reported through the pipeline
	TotalDropped atomic.Uint64 // Drops over the engine's lifetime
	Processed    atomic.Uint64 // Records written to at least one target
	Rotations    atomic.Uint64 // Successful rotations
}
