package xmlrpc

import "strings"

// Method is a validated XML-RPC method name.
type Method struct {
	name string
}

// NewMethod creates a Method. An empty name returns ErrInvalidMethodName.
func NewMethod(name string) (*Method, error) {
	if name == "" {
		return nil, ErrInvalidMethodName
	}
	return &Method{name: name}, nil
}

// Name returns the method name.
func (m *Method) Name() string {
	return m.name
}

// Request builds the complete methodCall document. encodedParams must be the
// result of EncodeParams. The method name is inserted as is.
func (m *Method) Request(encodedParams string) string {
	return m.request(`<?xml version="1.0"?>`, encodedParams)
}

// requestWithCharset declares the character encoding of the document. The
// caller is responsible for the transcoding.
func (m *Method) requestWithCharset(charset, encodedParams string) string {
	return m.request(`<?xml version="1.0" encoding="`+charset+`"?>`, encodedParams)
}

func (m *Method) request(header, encodedParams string) string {
	var b strings.Builder
	b.Grow(len(header) + len(m.name) + len(encodedParams) + 64)
	b.WriteString(header)
	b.WriteString("<methodCall><methodName>")
	b.WriteString(m.name)
	b.WriteString("</methodName><params>")
	b.WriteString(encodedParams)
	b.WriteString("</params></methodCall>")
	return b.String()
}

// BuildRequest builds the complete methodCall document for the specified
// method and the result of EncodeParams.
func BuildRequest(methodName, encodedParams string) (string, error) {
	m, err := NewMethod(methodName)
	if err != nil {
		return "", err
	}
	return m.Request(encodedParams), nil
}
