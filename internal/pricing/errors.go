package pricing

import (
	"errors"
	"fmt"
)

// TransportError is returned when the request never produced an HTTP
// response: unreachable host, timeout or cancellation.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is returned for any response status other than 200
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string // the service's "error" field, when it sent one
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
}

// DecodeError is returned when a 200 response body cannot be used
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsTransient reports whether err came from the network rather than from the
// service's answer. Callers do not retry; this only picks the log level.
func IsTransient(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
