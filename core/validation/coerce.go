package validation

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
)

// coerce converts a raw payload value to the Go representation of the
// declared field type. JSON decoding produces string, bool, float64, []any,
// map[string]any and json.Number; textual numerics (e.g. "129.99" for a
// decimal field) are converted rather than rejected.
func coerce(t schema.FieldType, value any) (any, bool) {
	switch t {
	case schema.FieldTypeString:
		s, ok := value.(string)
		return s, ok

	case schema.FieldTypeDecimal:
		return coerceDecimal(value)

	case schema.FieldTypeInteger:
		return coerceInteger(value)

	case schema.FieldTypeBoolean:
		return coerceBoolean(value)

	case schema.FieldTypeURL:
		return coerceURL(value)

	case schema.FieldTypeTimestamp:
		return coerceTimestamp(value)

	case schema.FieldTypeObject:
		m, ok := value.(map[string]any)
		return m, ok

	case schema.FieldTypeArray:
		a, ok := value.([]any)
		return a, ok

	default:
		return nil, false
	}
}

func coerceDecimal(value any) (any, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return nil, false
	}
}

func coerceInteger(value any) (any, bool) {
	switch n := value.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return nil, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return nil, false
	}
}

func coerceBoolean(value any) (any, bool) {
	switch b := value.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil
	case float64:
		if b == 0 {
			return false, true
		}
		if b == 1 {
			return true, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func coerceURL(value any) (any, bool) {
	s, ok := value.(string)
	if !ok {
		return nil, false
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return nil, false
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, false
	}
	return s, true
}

func coerceTimestamp(value any) (any, bool) {
	switch ts := value.(type) {
	case time.Time:
		return ts, true
	case string:
		parsed, err := time.Parse(time.RFC3339, ts)
		return parsed, err == nil
	default:
		return nil, false
	}
}

// typeLabel names the payload value's type the way a client would see it in
// JSON, for type-mismatch messages.
func typeLabel(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
