// FILE: record.go
package ilog

import (
	"strconv"
	"time"
)

// getCurrentLogChannel safely retrieves the current log channel
func (e *Engine) getCurrentLogChannel() chan logRecord {
	chVal := e.state.ActiveLogChannel.Load()
	return chVal.(chan logRecord)
}

// sendLogRecord handles safe sending to the active channel.
// The send is non-blocking: producers must never stall on a slow consumer,
// a full queue counts the record as dropped instead.
func (e *Engine) sendLogRecord(record logRecord) {
	defer func() {
		if r := recover(); r != nil { // Catch panic on send to closed channel
			e.handleFailedSend(record)
		}
	}()

	if e.state.ShutdownCalled.Load() {
		e.handleFailedSend(record)
		return
	}

	ch := e.getCurrentLogChannel()

	select {
	case ch <- record:
		// Success: report accumulated drops once the queue has room again
		if record.unreportedDrops == 0 {
			droppedCount := e.state.DroppedLogs.Swap(0)

			if droppedCount > 0 {
				line := formatLine(time.Now(), goroutineID(), LevelError, engineModule,
					"Log records were dropped: "+strconv.FormatUint(droppedCount, 10))
				dropRecord := logRecord{
					Line:            line,
					unreportedDrops: droppedCount, // Carry the count for recovery
				}
				// No success check is required, count is restored if it fails
				e.sendLogRecord(dropRecord)
			}
		}
	default:
		e.handleFailedSend(record)
	}
}

// handleFailedSend restores or increments the drop counters
func (e *Engine) handleFailedSend(record logRecord) {
	// For a regular record, add 1 to the dropped count
	// For a drop report, restore the carried count
	if record.unreportedDrops > 0 {
		e.state.DroppedLogs.Add(record.unreportedDrops)
		return
	}
	e.state.DroppedLogs.Add(1)
	e.state.TotalDropped.Add(1)
}
