package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("backend unavailable")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match a 404 without losing the backend message.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// IgnoreNotFound turns a missing-resource error into success, for idempotent deletes.
func IgnoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Message returns the most specific human readable text carried by err:
// the backend's own message when there is one, otherwise an empty string.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "the store backend is temporarily unavailable"
	}
	return ""
}

// extractMessage digs the error text out of a backend error body. It understands
// {"detail": "..."}, {"detail": [{"msg": "...", "loc": [...]}]}, {"message": "..."}
// and {"error": "..."}; anything else falls back to the status text.
func extractMessage(body []byte, status int) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil {
		if raw, ok := payload["detail"]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
			var items []struct {
				Msg string `json:"msg"`
				Loc []any  `json:"loc"`
			}
			if json.Unmarshal(raw, &items) == nil && len(items) > 0 && items[0].Msg != "" {
				if n := len(items[0].Loc); n > 0 {
					return fmt.Sprintf("%v: %s", items[0].Loc[n-1], items[0].Msg)
				}
				return items[0].Msg
			}
		}
		for _, key := range []string{"message", "error"} {
			var s string
			if raw, ok := payload[key]; ok && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(status)
}
