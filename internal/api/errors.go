package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrorKind classifies a failed backend request
type ErrorKind int

const (
	// KindTimeout means the deadline elapsed before a reply arrived
	KindTimeout ErrorKind = iota

	// KindNetwork means the request was sent but no response came back
	KindNetwork

	// KindTransport means the request could not be constructed or sent
	KindTransport

	// KindServer means the backend answered with a non-success status
	KindServer

	// KindUnexpected means the response did not match the backend contract
	KindUnexpected
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// ErrFallbackData marks a list response whose status reported an error but
// whose body still carried a usable coin array.
var ErrFallbackData = errors.New("backend returned fallback data")

// RequestError describes a failed backend call
type RequestError struct {
	Op         string // "ping", "list", "search", "add" or "remove"
	Kind       ErrorKind
	StatusCode int    // zero when no response was received
	Message    string // backend-reported error text, if any
	Err        error
}

// Error returns a human-readable description of the failure
func (e *RequestError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Message != "":
		return fmt.Sprintf("%s request failed: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s request failed: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed (%s): %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s request failed (%s): %s", e.Op, e.Kind, e.Message)
	}
}

// Unwrap exposes the underlying cause for errors.Is / errors.As
func (e *RequestError) Unwrap() error {
	return e.Err
}

// classify converts a transport-level error from the HTTP client into a
// RequestError of the matching kind. Deadline expiry wins over everything,
// then any url.Error counts as the request having left without a response.
func classify(op string, err error) *RequestError {
	kind := KindTransport

	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindTransport
	case errors.As(err, &urlErr):
		kind = KindNetwork
	}

	return &RequestError{Op: op, Kind: kind, Err: err}
}
