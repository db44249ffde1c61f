package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mkalinin/healthportal/internal/common"
)

// ErrUnavailable wraps transport failures: the request never produced a
// response at all.
var ErrUnavailable = errors.New("server unavailable")

// Error is a non-2xx response decoded at the network boundary. Message holds
// the server-provided text (the body's "error" or "message" field) and may be
// empty when the body carried neither.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known status codes onto the shared sentinels so callers
// can match with errors.Is without inspecting the code themselves.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	default:
		return nil
	}
}

// errorBody is the error shape the portal returns on failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// decodeError converts a non-2xx body into an *Error, tolerating bodies that
// are not JSON at all.
func decodeError(status int, body []byte) *Error {
	var b errorBody
	_ = json.Unmarshal(body, &b)
	return &Error{StatusCode: status, Message: firstNonEmpty(b.Error, b.Message)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
