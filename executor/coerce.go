package executor

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/miniql/miniql/errors"
	"github.com/miniql/miniql/schema"
)

// coerceValue shapes a raw resolver value into the form mandated by its
// declared type. Nullability is enforced post hoc: NonNull coerces the
// wrapped type first and then rejects a null result.
func coerceValue(value any, typ *schema.Type) (any, error) {
	switch typ.Kind {
	case schema.KindNonNull:
		v, err := coerceValue(value, typ.OfType)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, errors.New("cannot return null for non-nullable type %s", typ)
		}
		return v, nil

	case schema.KindList:
		if isNil(value) {
			return nil, nil
		}
		items, ok := iterate(value)
		if !ok {
			// A bare value for a list type is wrapped, not rejected.
			items = []any{value}
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := coerceValue(item, typ.OfType)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case schema.KindScalar:
		if isNil(value) {
			return nil, nil
		}
		return coerceScalar(value, typ)

	case schema.KindObject:
		if isNil(value) {
			return nil, nil
		}
		if m, ok := value.(map[string]any); ok {
			return m, nil
		}
		return nil, errors.New("value of type %T cannot be coerced to object type %s", value, typ.Name)

	default:
		return nil, errors.New("unsupported type kind %s for coercion", typ.Kind)
	}
}

func coerceScalar(value any, typ *schema.Type) (any, error) {
	switch typ.Name {
	case "String", "ID":
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprint(value), nil
	case "Int":
		return coerceInt(value)
	case "Float":
		return coerceFloat(value)
	case "Boolean":
		return coerceBool(value), nil
	default:
		return nil, errors.New("unknown scalar type %s", typ.Name)
	}
}

// coerceInt accepts integer values, integral floats, and strings whose
// formatted round-trip equals the input ("1.0", "1abc" and "01" all fail).
func coerceInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, errors.New("value %d is not a valid Int", v)
		}
		return int64(v), nil
	case float32:
		return intFromFloat(float64(v))
	case float64:
		return intFromFloat(v)
	case json.Number:
		return intFromString(v.String())
	case string:
		return intFromString(v)
	default:
		return nil, errors.New("value %v is not a valid Int", value)
	}
}

func intFromFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, errors.New("value %v is not a valid Int", f)
	}
	// float64(MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, errors.New("value %v is not a valid Int", f)
	}
	return int64(f), nil
}

func intFromString(s string) (any, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != s {
		return nil, errors.New("value %q is not a valid Int", s)
	}
	return n, nil
}

// coerceFloat accepts any numeric value and numeric strings.
func coerceFloat(value any) (any, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, errors.New("value %q is not a valid Float", v.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("value %q is not a valid Float", v)
		}
		return f, nil
	default:
		return nil, errors.New("value %v is not a valid Float", value)
	}
}

// coerceBool is permissive and never fails: booleans pass through, common
// textual true/false forms are recognized, numbers compare against zero,
// and anything else falls back to a generic truthiness cast.
func coerceBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "t", "1", "yes", "y", "on":
			return true
		case "false", "f", "0", "no", "n", "off", "":
			return false
		}
		return true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		rv := reflect.ValueOf(v)
		return !rv.IsZero()
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	}
	return truthy(value)
}

// truthy is the generic fallback: zero values and empty containers are
// false, everything else is true.
func truthy(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() > 0
	default:
		return !rv.IsZero()
	}
}

// iterate converts slice and array values into []any, preserving order.
// Strings and other non-sequence values are not iterable.
func iterate(value any) ([]any, bool) {
	if direct, ok := value.([]any); ok {
		return direct, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// isNil reports nil interfaces and typed nils (pointer, map, slice, func,
// chan, interface).
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
