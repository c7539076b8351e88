package table

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatValue is the default cell formatter. Nil renders empty.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.DateOnly)
	case fmt.Stringer:
		return v.String()
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ExportValue formats a value for CSV: raw and locale free.
func ExportValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339)
	case HTML:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return FormatValue(v)
	}
}

// Comma formats integers and floats with thousands separators.
func Comma(value any) string {
	if f, ok := toFloat(value); ok {
		if f == float64(int64(f)) {
			return humanize.Comma(int64(f))
		}
		return humanize.Commaf(f)
	}
	return FormatValue(value)
}

// Bytes formats a size in bytes (1.2 MB).
func Bytes(value any) string {
	if f, ok := toFloat(value); ok && f >= 0 {
		return humanize.Bytes(uint64(f))
	}
	return FormatValue(value)
}

// Relative formats a time relative to now (3 days ago).
func Relative(value any) string {
	if t, ok := value.(time.Time); ok {
		if t.IsZero() {
			return ""
		}
		return humanize.Time(t)
	}
	return FormatValue(value)
}

// Ordinal formats an integer as 1st, 2nd, 3rd.
func Ordinal(value any) string {
	if f, ok := toFloat(value); ok {
		return humanize.Ordinal(int(f))
	}
	return FormatValue(value)
}

// Formatters maps formatter names usable from column specs.
var Formatters = map[string]Formatter{
	"":         FormatValue,
	"text":     FormatValue,
	"comma":    Comma,
	"bytes":    Bytes,
	"relative": Relative,
	"ordinal":  Ordinal,
}
