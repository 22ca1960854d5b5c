package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable marks a request that got no response at all.
var ErrUnreachable = errors.New("backend unreachable")

// ServerError is a response the backend did send: either a non-2xx status or
// a success:false envelope. Message prefers the envelope's own text.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("request failed: %s", http.StatusText(e.StatusCode))
	}
	return "request failed"
}

// UserMessage picks the most specific user-facing text for an error:
// server-provided message, then status-derived, then the network hint.
func UserMessage(err error, fallback string) string {
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Error()
	}
	if errors.Is(err, ErrUnreachable) {
		return "Cannot reach the store backend. Is it running?"
	}
	return fallback
}
