package xmlrpc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMethodName is returned for an empty method name.
	ErrInvalidMethodName = errors.New("Method name cannot be empty")

	// ErrUndefinedFault is returned, if the server signals a fault, but the
	// fault value is not a struct with the members faultCode and faultString.
	ErrUndefinedFault = errors.New("Undefined fault response")
)

// UnsupportedTypeError is returned, if a parameter can not be converted to an
// XML-RPC value.
type UnsupportedTypeError struct {
	Value interface{}
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Conversion of type %[1]T with value %[1]v is not supported", e.Value)
}

// Fault encapsulates an XML-RPC fault response.
type Fault struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("XML-RPC fault (code: %d, message: %s)", f.Code, f.Message)
}

// XMLParseError is returned, if the response is not well-formed XML.
type XMLParseError struct {
	Err error
}

func (e *XMLParseError) Error() string {
	return fmt.Sprintf("XML parser error: %v", e.Err)
}

func (e *XMLParseError) Unwrap() error { return e.Err }

// DateParseError is returned for an invalid dateTime.iso8601 value.
type DateParseError struct {
	Text string
	Err  error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("Invalid dateTime.iso8601: %s: %v", e.Text, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// NumberParseError is returned for an invalid or out of range int, i4 or
// double value.
type NumberParseError struct {
	Tag  string
	Text string
	Err  error
}

func (e *NumberParseError) Error() string {
	return fmt.Sprintf("Invalid %s: %s: %v", e.Tag, e.Text, e.Err)
}

func (e *NumberParseError) Unwrap() error { return e.Err }

// HTTPError is returned, if the server responds with a status other than 200.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP server returned error code: %d", e.StatusCode)
}
