package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies failures surfaced to the invoker.
type ErrorKind string

const (
	// KindConnection: the server endpoint could not be reached.
	KindConnection ErrorKind = "connection"
	// KindNotFound: an unregistered tool or resource name was invoked.
	KindNotFound ErrorKind = "not_found"
	// KindInvalidArgument: arguments failed the declared schema.
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindUpstream: the handler executed and failed (external API error).
	KindUpstream ErrorKind = "upstream"
)

// Error is a classified invocation failure. The server never swallows
// errors; every failed call surfaces as one of these.
type Error struct {
	Kind   ErrorKind
	Target string // tool name or resource URI, empty for connection errors
	Err    error
}

func (e *Error) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error for %s: %v", e.Kind, e.Target, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or "" if err is not a classified
// invocation error.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// classifyProtocolError maps an error returned by the protocol layer onto
// the error taxonomy. The SDK flattens error codes into strings, so this
// matches on the stable fragments of its messages.
func classifyProtocolError(target string, err error) *Error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "dial tcp"):
		return &Error{Kind: KindConnection, Target: target, Err: err}
	case strings.Contains(msg, "unknown tool"),
		strings.Contains(msg, "not found"):
		return &Error{Kind: KindNotFound, Target: target, Err: err}
	case strings.Contains(msg, "invalid params"),
		strings.Contains(msg, "validat"),
		strings.Contains(msg, "unmarshal"),
		strings.Contains(msg, "schema"):
		return &Error{Kind: KindInvalidArgument, Target: target, Err: err}
	default:
		return &Error{Kind: KindUpstream, Target: target, Err: err}
	}
}
