// FILE: constant.go
package ilog

import (
	"time"
)

// Log level constants, ordered by severity
const (
	LevelTrace    int64 = -8
	LevelDebug    int64 = -4
	LevelInfo     int64 = 0
	LevelWarn     int64 = 4
	LevelError    int64 = 8
	LevelCritical int64 = 12
)

// Output target constants
const (
	TargetConsole int64 = 1
	TargetFile    int64 = 2
	TargetBoth    int64 = 3
)

// Formatter field widths, part of the line contract
const (
	levelFieldWidth  = 8
	moduleFieldWidth = 15
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
)

// timestampLayout renders YYYY-MM-DD HH:MM:SS.mmm
const timestampLayout = "2006-01-02 15:04:05.000"

// engineModule is the module name used for records the engine emits about itself
const engineModule = "LOGGER"
