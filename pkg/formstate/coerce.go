package formstate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		return parseBool(v)
	default:
		return false, false
	}
}

// parseBool accepts HTML checkbox values as well as strconv forms.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "y", "checked":
		return true, true
	case "off", "no", "n", "":
		return false, true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	return b, err == nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Decode copies validated values into out, typically a pointer to a struct
// with json tags.
func Decode(values map[string]any, out any) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("formstate: encode values: %w", err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("formstate: decode values: %w", err)
	}
	return nil
}
