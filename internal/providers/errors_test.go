package providers

import (
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(err)
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestRPCErrorString(t *testing.T) {
	err := &RPCError{Method: "teams.search", Code: -32000, Message: "bad key"}
	if got := err.Error(); got != "teams.search: bad key (code=-32000)" {
		t.Fatalf("unexpected error string %q", got)
	}

	wrapped := fmt.Errorf("search: %w", err)
	rpcErr, ok := AsRPCError(wrapped)
	if !ok || rpcErr.Code != -32000 {
		t.Fatalf("expected to unwrap rpc error, got %v", rpcErr)
	}

	if got := (&RPCError{Code: 1}).Error(); got != "API error occurred (code=1)" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}
