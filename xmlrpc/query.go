package xmlrpc

import (
	"fmt"
	"time"
)

// Query helps to extract values from the value model. The first encountered
// error is retained and shared by all queries derived from the same root.
// After an error all accessors return zero values.
type Query struct {
	value Value
	err   *error
}

// Q creates a new Query for the specified Value.
func Q(v Value) *Query {
	var err error
	return &Query{value: v, err: &err}
}

// Err returns the first encountered error.
func (q *Query) Err() error {
	return *q.err
}

// Value returns the wrapped Value. nil is returned for an empty optional.
func (q *Query) Value() Value {
	return q.value
}

func (q *Query) fail(err error) {
	if *q.err == nil {
		*q.err = err
	}
}

func (q *Query) kindError(want Kind) error {
	return fmt.Errorf("Invalid data type (expected: %s): %s", want, q.value.Kind())
}

// Int gets an XML-RPC int or i4 value.
func (q *Query) Int() int {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return 0
	}
	i, ok := q.value.(Int)
	if !ok {
		q.fail(q.kindError(IntKind))
		return 0
	}
	return int(i)
}

// Bool gets an XML-RPC boolean value.
func (q *Query) Bool() bool {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return false
	}
	b, ok := q.value.(Bool)
	if !ok {
		q.fail(q.kindError(BoolKind))
		return false
	}
	return bool(b)
}

// String gets an XML-RPC string value.
func (q *Query) String() string {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return ""
	}
	s, ok := q.value.(String)
	if !ok {
		q.fail(q.kindError(StringKind))
		return ""
	}
	return string(s)
}

// Float64 gets an XML-RPC double value.
func (q *Query) Float64() float64 {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return 0
	}
	d, ok := q.value.(Double)
	if !ok {
		q.fail(q.kindError(DoubleKind))
		return 0
	}
	return float64(d)
}

// Time gets an XML-RPC dateTime.iso8601 value.
func (q *Query) Time() time.Time {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return time.Time{}
	}
	d, ok := q.value.(DateTime)
	if !ok {
		q.fail(q.kindError(DateTimeKind))
		return time.Time{}
	}
	return time.Time(d)
}

// Bytes gets an XML-RPC base64 value.
func (q *Query) Bytes() []byte {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return nil
	}
	b, ok := q.value.(Base64)
	if !ok {
		q.fail(q.kindError(Base64Kind))
		return nil
	}
	return []byte(b)
}

// IsEmpty returns true, if there is no previous error and the value is an
// empty optional (e.g. from TryKey).
func (q *Query) IsEmpty() bool {
	return q.Err() == nil && q.value == nil
}

// Any returns the value as native data type (see Native), or nil for an empty
// optional.
func (q *Query) Any() interface{} {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return nil
	}
	return Native(q.value)
}

// Map returns all members of an XML-RPC struct.
func (q *Query) Map() map[string]*Query {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return nil
	}
	s, ok := q.value.(Struct)
	if !ok {
		q.fail(q.kindError(StructKind))
		return nil
	}
	m := make(map[string]*Query, len(s))
	for n, v := range s {
		m[n] = &Query{value: v, err: q.err}
	}
	return m
}

// key gets the specified member from a struct.
func (q *Query) key(name string, must bool) *Query {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return &Query{err: q.err}
	}
	s, ok := q.value.(Struct)
	if !ok {
		q.fail(q.kindError(StructKind))
		return &Query{err: q.err}
	}
	v, ok := s[name]
	if !ok {
		if must {
			q.fail(fmt.Errorf("Field not found: %s", name))
		}
		return &Query{err: q.err}
	}
	return &Query{value: v, err: q.err}
}

// Key sets an error, if the specified member is missing.
func (q *Query) Key(name string) *Query {
	return q.key(name, true)
}

// TryKey does not set an error, if the specified member is missing. An empty
// optional is returned instead.
func (q *Query) TryKey(name string) *Query {
	return q.key(name, false)
}

// Slice returns all array elements.
func (q *Query) Slice() []*Query {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return nil
	}
	a, ok := q.value.(Array)
	if !ok {
		q.fail(q.kindError(ArrayKind))
		return nil
	}
	r := make([]*Query, len(a))
	for i, v := range a {
		r[i] = &Query{value: v, err: q.err}
	}
	return r
}

// Strings returns a string array.
func (q *Query) Strings() []string {
	s := q.Slice()
	if q.Err() != nil || s == nil {
		return nil
	}
	r := make([]string, len(s))
	for i, e := range s {
		r[i] = e.String()
	}
	if q.Err() != nil {
		return nil
	}
	return r
}

// Idx returns the array element at i.
func (q *Query) Idx(i int) *Query {
	s := q.Slice()
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return &Query{err: q.err}
	}
	// check bounds
	if i < 0 || i >= len(s) {
		q.fail(fmt.Errorf("Index out of bounds (array length: %d): %d", len(s), i))
		return &Query{err: q.err}
	}
	return s[i]
}
