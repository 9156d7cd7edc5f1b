// FILE: utility.go
package ilog

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "ilog: ") {
		format = "ilog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// LevelNames lists the six level literals in severity order.
func LevelNames() []string {
	return []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "CRITICAL"}
}

// LevelToString converts a level constant to its literal.
func LevelToString(level int64) string {
	return levelToString(level)
}

// Level converts level string to numeric constant.
func Level(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use trace, debug, info, warn, error, critical)", levelStr)
	}
}

// Target converts target string to numeric constant.
func Target(targetStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(targetStr)) {
	case "console":
		return TargetConsole, nil
	case "file":
		return TargetFile, nil
	case "both":
		return TargetBoth, nil
	default:
		return 0, fmtErrorf("invalid target string: '%s' (use console, file, both)", targetStr)
	}
}

// targetToString converts a target constant to its literal.
func targetToString(target int64) string {
	switch target {
	case TargetConsole:
		return "CONSOLE"
	case TargetFile:
		return "FILE"
	case TargetBoth:
		return "BOTH"
	default:
		return fmt.Sprintf("TARGET(%d)", target)
	}
}

var goroutineSpace = []byte("goroutine ")

var littleBuf = sync.Pool{
	New: func() any {
		buf := make([]byte, 64)
		return &buf
	},
}

// goroutineID parses the current goroutine's numeric id out of the first
// runtime.Stack line ("goroutine 4707 ["). Returns 0 if the header cannot
// be parsed, records never fail over thread identity.
func goroutineID() uint64 {
	bp := littleBuf.Get().(*[]byte)
	defer littleBuf.Put(bp)
	b := *bp
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, goroutineSpace)
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	n, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
