// Package xmlrpc implements an XML-RPC client: conversion of native Go values
// into request documents, parsing of response documents and the HTTP call.
package xmlrpc

import (
	"bytes"
	"fmt"
	"time"
)

// Kind identifies the XML-RPC data type of a Value.
type Kind int

// Supported XML-RPC data types.
const (
	StringKind Kind = iota
	IntKind
	DoubleKind
	BoolKind
	DateTimeKind
	Base64Kind
	ArrayKind
	StructKind
)

var kindNames = [...]string{
	StringKind:   "string",
	IntKind:      "int",
	DoubleKind:   "double",
	BoolKind:     "boolean",
	DateTimeKind: "dateTime.iso8601",
	Base64Kind:   "base64",
	ArrayKind:    "array",
	StructKind:   "struct",
}

// String returns the XML tag name of the data type.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value represents an XML-RPC value. The set of implementations is closed:
// String, Int, Double, Bool, DateTime, Base64, Array and Struct.
type Value interface {
	Kind() Kind
	isValue()
}

// String is an XML-RPC string.
type String string

// Int is an XML-RPC int or i4.
type Int int32

// Double is an XML-RPC double.
type Double float64

// Bool is an XML-RPC boolean.
type Bool bool

// DateTime is an XML-RPC dateTime.iso8601. The wire format carries no time
// zone. The location of the time.Time is replaced by the output zone when
// encoding, and the input zone is used when decoding.
type DateTime time.Time

// Base64 is an XML-RPC base64 (binary data).
type Base64 []byte

// Array is an XML-RPC array.
type Array []Value

// Struct is an XML-RPC struct.
type Struct map[string]Value

// Kind implements Value.
func (String) Kind() Kind { return StringKind }

// Kind implements Value.
func (Int) Kind() Kind { return IntKind }

// Kind implements Value.
func (Double) Kind() Kind { return DoubleKind }

// Kind implements Value.
func (Bool) Kind() Kind { return BoolKind }

// Kind implements Value.
func (DateTime) Kind() Kind { return DateTimeKind }

// Kind implements Value.
func (Base64) Kind() Kind { return Base64Kind }

// Kind implements Value.
func (Array) Kind() Kind { return ArrayKind }

// Kind implements Value.
func (Struct) Kind() Kind { return StructKind }

func (String) isValue()   {}
func (Int) isValue()      {}
func (Double) isValue()   {}
func (Bool) isValue()     {}
func (DateTime) isValue() {}
func (Base64) isValue()   {}
func (Array) isValue()    {}
func (Struct) isValue()   {}

// Time returns the wrapped time.Time.
func (d DateTime) Time() time.Time {
	return time.Time(d)
}

// String implements fmt.Stringer. The wire format is used with the location
// of the time value.
func (d DateTime) String() string {
	return time.Time(d).Format(dateTimeLayout)
}

// Equal reports whether a and b are structurally equal. Date/time values are
// compared as instants, struct members regardless of their order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case String:
		return av == b.(String)
	case Int:
		return av == b.(Int)
	case Double:
		return av == b.(Double)
	case Bool:
		return av == b.(Bool)
	case DateTime:
		return time.Time(av).Equal(time.Time(b.(DateTime)))
	case Base64:
		return bytes.Equal(av, b.(Base64))
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Struct:
		bv := b.(Struct)
		if len(av) != len(bv) {
			return false
		}
		for k, am := range av {
			bm, ok := bv[k]
			if !ok || !Equal(am, bm) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("xmlrpc: unexpected value type %T", a))
	}
}
