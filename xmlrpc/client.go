package xmlrpc

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mdzio/go-logging"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// max. size of a valid response, if not specified: 10 MB
const responseSizeLimit = 10 * 1024 * 1024

// Caller is an interface for calling XML-RPC functions.
type Caller interface {
	Call(method string, params ...interface{}) (*Response, error)
}

var clnLog = logging.Get("xmlrpc-client")

// Client provides access to an XML-RPC server. The zero value of the optional
// fields selects UTC for date/time values, UTF-8 for the request and
// http.DefaultClient for the transport. Like the transport itself, a call has
// no timeout unless HTTPClient specifies one.
type Client struct {
	// Absolute URL of the XML-RPC server.
	Addr string

	// Time zone for interpreting dateTime.iso8601 values of responses.
	InputZone *time.Location

	// Time zone for representing date/time parameters in requests.
	OutputZone *time.Location

	// Character encoding of requests (e.g. ISO-8859-1). Responses are decoded
	// according to their XML declaration.
	Charset string

	ResponseSizeLimit int64
	HTTPClient        *http.Client
}

// NewClient creates a Client with GMT as input and output time zone.
func NewClient(addr string) *Client {
	return &Client{Addr: addr, InputZone: time.UTC, OutputZone: time.UTC}
}

// Call executes a remote procedure call synchronously. Call implements Caller.
func (c *Client) Call(method string, params ...interface{}) (*Response, error) {
	clnLog.Tracef("Calling method %s on %s", method, c.Addr)

	// build request
	m, err := NewMethod(method)
	if err != nil {
		return nil, err
	}
	encParams, err := EncodeParams(params, c.OutputZone)
	if err != nil {
		return nil, fmt.Errorf("Encoding of request for %s failed: %w", c.Addr, err)
	}
	reqBody, err := c.encodeRequest(m, encParams)
	if err != nil {
		return nil, fmt.Errorf("Encoding of request for %s failed: %w", c.Addr, err)
	}
	if clnLog.TraceEnabled() {
		clnLog.Tracef("Request XML: %s", string(reqBody))
	}

	// http post
	httpReq, err := http.NewRequest(http.MethodPost, c.Addr, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("Creating HTTP request for %s failed: %w", c.Addr, err)
	}
	httpReq.Header.Set("Content-Type", "text/xml")
	httpReq.ContentLength = int64(len(reqBody))
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	httpResp, err := hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed on %s: %w", c.Addr, err)
	}
	defer httpResp.Body.Close()

	// check status
	if httpResp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: httpResp.StatusCode, Status: httpResp.Status}
	}

	// read response
	limit := c.ResponseSizeLimit
	if limit == 0 {
		limit = responseSizeLimit
	}
	respBuf, err := io.ReadAll(io.LimitReader(httpResp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("Reading of response failed from %s: %w", c.Addr, err)
	}
	if clnLog.TraceEnabled() {
		// attention: log message is probably not UTF-8 encoded!
		clnLog.Tracef("Response XML: %s", string(respBuf))
	}

	// decode response
	resp, err := DecodeResponse(bytes.NewReader(respBuf), c.InputZone)
	if err != nil {
		if _, ok := err.(*Fault); ok {
			clnLog.Tracef("Result: %v", err)
			return nil, err
		}
		return nil, fmt.Errorf("Decoding of response from %s failed: %w", c.Addr, err)
	}
	clnLog.Tracef("Result: %d value(s)", resp.Len())
	return resp, nil
}

// encodeRequest builds the methodCall document in the configured character
// encoding. Characters, which can not be represented, are written as numeric
// character references.
func (c *Client) encodeRequest(m *Method, encParams string) ([]byte, error) {
	if c.Charset == "" {
		return []byte(m.Request(encParams)), nil
	}
	enc, err := ianaindex.IANA.Encoding(c.Charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("Unsupported character encoding: %s", c.Charset)
	}
	if enc == unicode.UTF8 {
		return []byte(m.Request(encParams)), nil
	}
	return encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes([]byte(m.requestWithCharset(c.Charset, encParams)))
}
