package providers

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrProviderUnavailable is returned when no remote service is configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrInvalidRequest marks a request rejected locally before any remote call.
	ErrInvalidRequest = errors.New("invalid provider request")
)

// RateLimitError captures rate limit responses from the remote service.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// RPCError is the error object of a JSON-RPC response.
type RPCError struct {
	Method  string
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "API error occurred"
	}
	if e.Method != "" {
		return fmt.Sprintf("%s: %s (code=%d)", e.Method, msg, e.Code)
	}
	return fmt.Sprintf("%s (code=%d)", msg, e.Code)
}

// AsRPCError attempts to unwrap an error into an RPCError.
func AsRPCError(err error) (*RPCError, bool) {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}
