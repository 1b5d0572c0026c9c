package utils

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ToInt converts an integer or an integral float to int.
// It reports false for anything else, including bools and strings.
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case int16:
		return int(v), true
	case int8:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case uint32:
		return int(v), true
	case uint16:
		return int(v), true
	case uint8:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	case float32:
		if float64(v) == math.Trunc(float64(v)) {
			return int(v), true
		}
	}
	return 0, false
}

// ToFloat converts any numeric value to float64.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	if i, ok := ToInt(val); ok {
		return float64(i), true
	}
	return 0, false
}

// ParseFloat converts numbers and numeric strings to float64.
func ParseFloat(val any) (float64, bool) {
	if f, ok := ToFloat(val); ok {
		return f, true
	}
	if s, ok := val.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	}
	if i, ok := ToInt(val); ok {
		return i == 1
	}
	return false
}

// ToSlice converts any slice or array to []any.
// It reports false for non-slice values.
func ToSlice(val any) ([]any, bool) {
	if val == nil {
		return nil, false
	}
	if s, ok := val.([]any); ok {
		return s, true
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ToMap converts string keyed maps to map[string]any.
func ToMap(val any) (map[string]any, bool) {
	switch v := val.(type) {
	case map[string]any:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, s := range v {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = s
		}
		return out, true
	}
	return nil, false
}
