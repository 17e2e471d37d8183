package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed request.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindServer       Kind = "server_error"
	KindNetwork      Kind = "network_error"
	KindRequestSetup Kind = "request_setup"
	// KindUnexpected covers responses that arrived but fit none of the
	// above: other 4xx statuses, or a 2xx body that does not decode.
	KindUnexpected Kind = "unexpected_response"
)

// Error is the single error type produced by the client. It is classified
// once and passed through unchanged by the layers above.
type Error struct {
	Kind   Kind
	Status int // 0 when no response was received
	Method string
	Path   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s %s: %s (%d): %v", e.Method, e.Path, e.Kind, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: %s (%d)", e.Method, e.Path, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsServer(err error) bool       { return KindOf(err) == KindServer }
func IsNetwork(err error) bool      { return KindOf(err) == KindNetwork }
func IsRequestSetup(err error) bool { return KindOf(err) == KindRequestSetup }

// classifyStatus maps a non-2xx status to a Kind.
func classifyStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= http.StatusInternalServerError:
		return KindServer
	}
	return KindUnexpected
}

// ServerMessage returns the message the server sent with an error status,
// or "" when there is none.
func ServerMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Status >= http.StatusBadRequest && e.Err != nil {
		return e.Err.Error()
	}
	return ""
}
