package xmlrpc

import (
	"errors"
	"time"

	"github.com/mdzio/go-lib/conc"
)

// RetryingCaller repeats failed calls. Faults reported by the server, HTTP
// status errors below 500 and invalid parameters are returned immediately.
type RetryingCaller struct {
	// Caller which is called multiple times if it returns an error.
	Caller Caller

	// Number of retries. 0 disables retries.
	RetryCount int

	// Delay between retries.
	RetryDelay time.Duration

	// The repeated calls can be cancelled with this context.
	Context conc.Context
}

// Call implements Caller.
func (c *RetryingCaller) Call(method string, params ...interface{}) (*Response, error) {
	// retry counter
	rcnt := 0
	for {
		// try a call
		resp, err := c.Caller.Call(method, params...)
		// on success, return response
		if err == nil {
			return resp, nil
		}
		// give up when the retries have been used up
		rcnt++
		if rcnt > c.RetryCount || !retryable(err) {
			return nil, err
		}
		clnLog.Debugf("Call of method %s failed, retry in %s: %v", method, c.RetryDelay, err)
		// wait before the next call
		errc := c.Context.Sleep(c.RetryDelay)
		if errc != nil {
			// return last error
			return nil, err
		}
	}
}

func retryable(err error) bool {
	var fault *Fault
	if errors.As(err, &fault) || errors.Is(err, ErrUndefinedFault) {
		return false
	}
	var typeErr *UnsupportedTypeError
	if errors.As(err, &typeErr) || errors.Is(err, ErrInvalidMethodName) {
		return false
	}
	// only server errors may be temporary
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return true
}
