package xmlrpc

import (
	"encoding/base64"
	"io"
	"strconv"
	"strings"
	"time"
)

// DecodeResponse reads a methodResponse document. Date/time values are
// interpreted in the location in (UTC, if nil).
//
// A fault response returns a *Fault, or ErrUndefinedFault if the fault value
// has not the expected structure. Parameters whose value has no known data
// type are skipped.
func DecodeResponse(r io.Reader, in *time.Location) (*Response, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}
	return decodeResponse(root, in)
}

func decodeResponse(root *element, in *time.Location) (*Response, error) {
	if in == nil {
		in = time.UTC
	}

	// fault response?
	if faults := root.descendants("fault"); len(faults) != 0 {
		vals := faults[0].descendants("value")
		if len(vals) == 0 {
			return nil, ErrUndefinedFault
		}
		v, err := decodeValue(vals[0], in)
		if err != nil {
			return nil, err
		}
		return nil, newFault(v)
	}

	// collect parameters
	resp := &Response{}
	for _, p := range root.descendants("param") {
		ve := p.child("value")
		if ve == nil {
			continue
		}
		v, err := decodeValue(ve, in)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		resp.Values = append(resp.Values, v)
	}
	return resp, nil
}

func newFault(v Value) error {
	s, ok := v.(Struct)
	if !ok {
		return ErrUndefinedFault
	}
	code, ok := s["faultCode"].(Int)
	if !ok {
		return ErrUndefinedFault
	}
	msg, ok := s["faultString"].(String)
	if !ok {
		return ErrUndefinedFault
	}
	return &Fault{Code: int(code), Message: string(msg)}
}

// decodeValue dispatches on the first child element with a known data type.
// nil is returned, if there is none.
func decodeValue(ve *element, in *time.Location) (Value, error) {
	for _, c := range ve.children() {
		switch c.name {
		case "string":
			return String(c.text()), nil
		case "int", "i4":
			txt := c.text()
			i, err := strconv.ParseInt(txt, 10, 32)
			if err != nil {
				return nil, &NumberParseError{c.name, txt, err}
			}
			return Int(i), nil
		case "double":
			txt := c.text()
			// surrounding white space is accepted only for doubles
			d, err := strconv.ParseFloat(strings.TrimSpace(txt), 64)
			if err != nil {
				return nil, &NumberParseError{c.name, txt, err}
			}
			return Double(d), nil
		case "boolean":
			return Bool(c.text() == "1"), nil
		case "base64":
			b, err := base64.StdEncoding.DecodeString(c.text())
			if err != nil {
				return nil, &XMLParseError{err}
			}
			return Base64(b), nil
		case "struct":
			return decodeStruct(c, in)
		case "array":
			return decodeArray(c, in)
		case "dateTime.iso8601":
			txt := c.text()
			t, err := time.ParseInLocation(dateTimeLayout, txt, in)
			if err != nil {
				return nil, &DateParseError{txt, err}
			}
			return DateTime(t), nil
		}
	}
	return nil, nil
}

func decodeStruct(se *element, in *time.Location) (Value, error) {
	s := Struct{}
	for _, m := range se.children() {
		if m.name != "member" {
			continue
		}
		var name *string
		var value Value
		for _, mc := range m.children() {
			switch mc.name {
			case "name":
				n := mc.text()
				name = &n
			case "value":
				v, err := decodeValue(mc, in)
				if err != nil {
					return nil, err
				}
				value = v
			}
		}
		// incomplete members are dropped
		if name != nil && value != nil {
			s[*name] = value
		}
	}
	return s, nil
}

func decodeArray(ae *element, in *time.Location) (Value, error) {
	a := Array{}
	data := ae.child("data")
	if data == nil {
		return a, nil
	}
	for _, e := range data.children() {
		if e.name != "value" {
			continue
		}
		v, err := decodeValue(e, in)
		if err != nil {
			return nil, err
		}
		// elements without a known data type are skipped
		if v == nil {
			continue
		}
		a = append(a, v)
	}
	return a, nil
}
