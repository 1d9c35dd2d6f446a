package xmlrpc

// Response holds the result values of a successful method call, one for each
// returned parameter.
type Response struct {
	Values []Value
}

// Len returns the number of result values.
func (r *Response) Len() int {
	return len(r.Values)
}

// Value returns the result value at index i, or nil if i is out of range.
func (r *Response) Value(i int) Value {
	if i < 0 || i >= len(r.Values) {
		return nil
	}
	return r.Values[i]
}

// Q creates a Query for the result value at index i. An index out of range
// sets the error of the Query.
func (r *Response) Q(i int) *Query {
	return Q(Array(r.Values)).Idx(i)
}

// Natives converts all result values into native data types (see Native).
func (r *Response) Natives() []interface{} {
	ns := make([]interface{}, len(r.Values))
	for i, v := range r.Values {
		ns[i] = Native(v)
	}
	return ns
}
