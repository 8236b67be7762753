package httpclient

import (
	"errors"
	"fmt"
)

// Kind classifies upstream request failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindTimeout
	KindRateLimited
	KindServiceUnavailable
	KindNetworkError
	KindInvalidUpstreamShape
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate_limited"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindNetworkError:
		return "network_error"
	case KindInvalidUpstreamShape:
		return "invalid_upstream_shape"
	default:
		return "unknown"
	}
}

// Error is a classified upstream failure. StatusCode is set for
// service_unavailable and rate_limited kinds when an HTTP status was seen.
type Error struct {
	Service    string
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Service, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewShapeError reports an upstream response that decoded but did not carry
// the expected shape. Adapters raise it; the gateway never does.
func NewShapeError(service, format string, args ...interface{}) *Error {
	return &Error{
		Service: service,
		Kind:    KindInvalidUpstreamShape,
		Err:     fmt.Errorf(format, args...),
	}
}

// KindOf extracts the failure kind from an error chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsTimeout(err error) bool     { return KindOf(err) == KindTimeout }
func IsRateLimited(err error) bool { return KindOf(err) == KindRateLimited }
