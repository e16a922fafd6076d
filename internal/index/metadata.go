package index

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SanitizeMetadata coerces arbitrary metadata values to scalars. The index
// only stores string/number/boolean values, so lists are joined with a
// stable delimiter and nested structures are serialized to canonical
// compact JSON. The coercion is deterministic: identical input always
// produces identical output.
func SanitizeMetadata(md map[string]interface{}) map[string]interface{} {
	if len(md) == 0 {
		return nil
	}

	clean := make(map[string]interface{}, len(md))
	for k, v := range md {
		clean[k] = coerceScalar(v)
	}
	return clean
}

func coerceScalar(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case string, bool,
		int, int32, int64,
		float32, float64:
		return val
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		// encoding/json sorts map keys, so this is canonical.
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprint(v)
}
