// FILE: type.go
package ilog

import (
	"io"
)

// logRecord carries one formatted line from a producer to the processor.
// The line is fully rendered in the caller's goroutine, the processor only
// performs target I/O.
type logRecord struct {
	Line            []byte
	unreportedDrops uint64 // Dropped record tracker
}

// sink is a wrapper around an io.Writer, atomic value type change workaround
type sink struct {
	w io.Writer
}

// Stats is a snapshot of the engine's processing counters.
type Stats struct {
	Processed uint64
	Dropped   uint64
	Rotations uint64
}
