package extraction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// listSeparator joins list values into a single cell.
const listSeparator = ", "

// canonicalize flattens a decoded JSON value into the string written to a
// cell. Lists are comma-joined, numbers keep their JSON spelling, nested
// objects are re-encoded as compact JSON, and null becomes "".
func canonicalize(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := canonicalize(item); s != "" && s != Missing {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, listSeparator)
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
