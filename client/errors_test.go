package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyProtocolError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"unknown tool", errors.New(`jsonrpc2: invalid params: unknown tool "nope"`), KindNotFound},
		{"resource not found", errors.New("Resource not found: resource://missing"), KindNotFound},
		{"schema violation", errors.New(`validating "add" arguments: got string, want number`), KindInvalidArgument},
		{"invalid params", errors.New("jsonrpc2: invalid params"), KindInvalidArgument},
		{"unmarshal failure", errors.New("json: cannot unmarshal string into field a"), KindInvalidArgument},
		{"refused", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), KindConnection},
		{"anything else", errors.New("serpapi status 500"), KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := classifyProtocolError("target", tt.err)
			if classified.Kind != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, classified.Kind)
			}
			if !errors.Is(classified, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	err := &Error{Kind: KindUpstream, Target: "search_google", Err: errors.New("boom")}

	if KindOf(err) != KindUpstream {
		t.Errorf("expected upstream, got %q", KindOf(err))
	}
	if KindOf(fmt.Errorf("wrapped: %w", err)) != KindUpstream {
		t.Error("KindOf should see through wrapping")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("expected empty kind for unclassified error")
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: KindNotFound, Target: "no_such_tool", Err: errors.New("unknown tool")}
	msg := err.Error()

	if msg != `not_found error for no_such_tool: unknown tool` {
		t.Errorf("unexpected message: %q", msg)
	}

	connErr := &Error{Kind: KindConnection, Err: errors.New("refused")}
	if connErr.Error() != "connection error: refused" {
		t.Errorf("unexpected message: %q", connErr.Error())
	}
}
