package xmlrpc

import (
	"math"
	"time"
)

// NewValue creates a value from a native data type. Supported types: Value,
// string, bool, int, int8, int16, int32, int64, uint8, uint16, uint32 (integers
// must fit into 32 bits), float32, float64, time.Time, []byte, []interface{},
// []string, []int, []float64, []bool, []Value, map[string]interface{},
// map[string]string, map[string]Value and map[interface{}]interface{}.
//
// Members of a map[interface{}]interface{} with a non-string key are silently
// dropped.
func NewValue(in interface{}) (Value, error) {
	switch val := in.(type) {
	case Value:
		if err := checkValue(val); err != nil {
			return nil, err
		}
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return newInt(in, int64(val))
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return newInt(in, val)
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return newInt(in, int64(val))
	case float32:
		return Double(val), nil
	case float64:
		return Double(val), nil
	case time.Time:
		return DateTime(val), nil
	case []byte:
		return Base64(val), nil
	case []interface{}:
		a := make(Array, len(val))
		for i, e := range val {
			cv, err := NewValue(e)
			if err != nil {
				return nil, err
			}
			a[i] = cv
		}
		return a, nil
	case []string:
		a := make(Array, len(val))
		for i, e := range val {
			a[i] = String(e)
		}
		return a, nil
	case []int:
		a := make(Array, len(val))
		for i, e := range val {
			cv, err := newInt(e, int64(e))
			if err != nil {
				return nil, err
			}
			a[i] = cv
		}
		return a, nil
	case []float64:
		a := make(Array, len(val))
		for i, e := range val {
			a[i] = Double(e)
		}
		return a, nil
	case []bool:
		a := make(Array, len(val))
		for i, e := range val {
			a[i] = Bool(e)
		}
		return a, nil
	case []Value:
		a := make(Array, len(val))
		for i, e := range val {
			if e == nil {
				return nil, &UnsupportedTypeError{Value: e}
			}
			a[i] = e
		}
		return a, nil
	case map[string]interface{}:
		s := make(Struct, len(val))
		for n, v := range val {
			cv, err := NewValue(v)
			if err != nil {
				return nil, err
			}
			s[n] = cv
		}
		return s, nil
	case map[string]string:
		s := make(Struct, len(val))
		for n, v := range val {
			s[n] = String(v)
		}
		return s, nil
	case map[string]Value:
		s := make(Struct, len(val))
		for n, v := range val {
			if v == nil {
				return nil, &UnsupportedTypeError{Value: v}
			}
			s[n] = v
		}
		return s, nil
	case map[interface{}]interface{}:
		s := make(Struct, len(val))
		for k, v := range val {
			n, ok := k.(string)
			if !ok {
				// only textual keys are transferred
				continue
			}
			cv, err := NewValue(v)
			if err != nil {
				return nil, err
			}
			s[n] = cv
		}
		return s, nil
	default:
		return nil, &UnsupportedTypeError{Value: in}
	}
}

func newInt(in interface{}, i int64) (Value, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return nil, &UnsupportedTypeError{Value: in}
	}
	return Int(i), nil
}

// Native converts a value into a native data type: string, int, float64,
// bool, time.Time, []byte, []interface{} or map[string]interface{}. A nil
// value returns nil.
func Native(v Value) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case String:
		return string(val)
	case Int:
		return int(val)
	case Double:
		return float64(val)
	case Bool:
		return bool(val)
	case DateTime:
		return time.Time(val)
	case Base64:
		return []byte(val)
	case Array:
		r := make([]interface{}, len(val))
		for i, e := range val {
			r[i] = Native(e)
		}
		return r
	case Struct:
		r := make(map[string]interface{}, len(val))
		for n, e := range val {
			r[n] = Native(e)
		}
		return r
	default:
		panic("xmlrpc: unexpected value type")
	}
}

// checkValue verifies that an array or struct contains no nil elements.
func checkValue(v Value) error {
	switch val := v.(type) {
	case Array:
		for _, e := range val {
			if e == nil {
				return &UnsupportedTypeError{Value: val}
			}
			if err := checkValue(e); err != nil {
				return err
			}
		}
	case Struct:
		for _, e := range val {
			if e == nil {
				return &UnsupportedTypeError{Value: val}
			}
			if err := checkValue(e); err != nil {
				return err
			}
		}
	}
	return nil
}
