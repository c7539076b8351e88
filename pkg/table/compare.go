package table

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// Value classes in their sort order. Values of different classes compare by
// class alone, which keeps mixed columns totally ordered.
const (
	classNil = iota
	classNumber
	classBool
	classTime
	classText
)

func classOf(value any) int {
	switch value.(type) {
	case nil:
		return classNil
	case bool:
		return classBool
	case time.Time:
		return classTime
	}
	if _, ok := toFloat(value); ok {
		return classNumber
	}
	return classText
}

// compareValues orders accessor values: nil first, then numbers compared
// numerically, booleans false before true, times chronologically, and
// everything else by its text form.
func compareValues(a, b any) int {
	ca, cb := classOf(a), classOf(b)
	if ca != cb {
		return cmp.Compare(ca, cb)
	}

	switch ca {
	case classNil:
		return 0
	case classNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return cmp.Compare(fa, fb)
	case classBool:
		av, bv := a.(bool), b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case classTime:
		return a.(time.Time).Compare(b.(time.Time))
	}
	return strings.Compare(textOf(a), textOf(b))
}

func textOf(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
