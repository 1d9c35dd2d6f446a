package xmlrpc

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a node of a parsed XML document. Only element names and
// character data are retained.
type element struct {
	name string
	// *element or string (character data) in document order
	nodes []interface{}
}

// children returns the child elements in document order.
func (e *element) children() []*element {
	var r []*element
	for _, n := range e.nodes {
		if c, ok := n.(*element); ok {
			r = append(r, c)
		}
	}
	return r
}

// child returns the first child element with the specified name.
func (e *element) child(name string) *element {
	for _, n := range e.nodes {
		if c, ok := n.(*element); ok && c.name == name {
			return c
		}
	}
	return nil
}

// descendants returns all descendant elements with the specified name in
// document order. e itself is not included.
func (e *element) descendants(name string) []*element {
	var r []*element
	var walk func(*element)
	walk = func(p *element) {
		for _, n := range p.nodes {
			if c, ok := n.(*element); ok {
				if c.name == name {
					r = append(r, c)
				}
				walk(c)
			}
		}
	}
	walk(e)
	return r
}

// text returns the concatenated character data of e and all descendants.
func (e *element) text() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *element) writeText(b *strings.Builder) {
	for _, n := range e.nodes {
		switch c := n.(type) {
		case string:
			b.WriteString(c)
		case *element:
			c.writeText(b)
		}
	}
}

// parseTree reads a complete XML document. The character encoding declared in
// the document is honored.
func parseTree(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &XMLParseError{err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &element{name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, &XMLParseError{errors.New("Multiple root elements")}
				}
				root = e
			} else {
				p := stack[len(stack)-1]
				p.nodes = append(p.nodes, e)
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				p := stack[len(stack)-1]
				p.nodes = append(p.nodes, string(t))
			}
		}
	}
	if root == nil {
		return nil, &XMLParseError{errors.New("No root element")}
	}
	return root, nil
}
