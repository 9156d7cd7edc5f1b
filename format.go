// FILE: format.go
package ilog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// formatLine renders one record into its fixed single-line form:
//
//	YYYY-MM-DD HH:MM:SS.mmm [goroutine-id] [LEVEL   ] [module         ] message
//
// Field order and padding are the on-disk contract; external scrapers depend
// on them. Messages containing newlines produce multi-line entries, embedded
// newlines are intentionally not escaped.
//
// Rendering happens in the caller's goroutine so the record leaves the
// caller's context as immutable bytes; the processor only performs I/O.
func formatLine(timestamp time.Time, gid uint64, level int64, module, message string) []byte {
	buf := make([]byte, 0, 64+len(module)+len(message))

	buf = timestamp.AppendFormat(buf, timestampLayout)
	buf = append(buf, ' ', '[')
	buf = strconv.AppendUint(buf, gid, 10)
	buf = append(buf, "] ["...)
	buf = appendPadded(buf, levelToString(level), levelFieldWidth)
	buf = append(buf, "] ["...)
	buf = appendPadded(buf, module, moduleFieldWidth)
	buf = append(buf, "] "...)
	buf = append(buf, message...)
	buf = append(buf, '\n')

	return buf
}

// appendPadded appends s padded on the right with spaces to width.
// Longer strings pass through untruncated.
func appendPadded(buf []byte, s string, width int) []byte {
	buf = append(buf, s...)
	for i := len(s); i < width; i++ {
		buf = append(buf, ' ')
	}
	return buf
}

// levelToString converts a level constant to its literal
func levelToString(level int64) string {
	switch level {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}

// joinArgs joins the stringified args onto message, space-separated.
// Used by the module facade's formatted variants.
func joinArgs(message string, args []any) string {
	if len(args) == 0 {
		return message
	}
	var sb strings.Builder
	sb.WriteString(message)
	for _, arg := range args {
		sb.WriteByte(' ')
		sb.WriteString(stringifyValue(arg))
	}
	return sb.String()
}

// stringifyValue converts any value to its textual representation.
// Falls back to go-spew for types without an explicit conversion, which
// keeps structs and maps readable without fmt's pointer noise.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "nil"
	case time.Duration:
		return val.String()
	case time.Time:
		return val.Format(timestampLayout)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		var b bytes.Buffer
		dumper := &spew.ConfigState{
			Indent:                  " ",
			MaxDepth:                10,
			DisablePointerAddresses: true, // Cleaner for logs
			DisableCapacities:       true, // Less noise
			SortKeys:                true, // Consistent map output
		}
		dumper.Fdump(&b, val)
		return string(bytes.TrimSpace(b.Bytes()))
	}
}
