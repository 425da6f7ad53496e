package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-success backend response with its extracted message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// checkStatus turns a non-2xx response into an *APIError. The message is
// extracted in priority order: structured "detail" field, then "message",
// then the raw body text, then a generic HTTP-status fallback. The failure
// reason is never silently discarded.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Body size is bounded: error payloads are small, and a broken
	// backend must not make the admin read an unbounded stream.
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if readErr != nil {
		body = nil
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    extractErrorMessage(resp.StatusCode, body),
	}
}

func extractErrorMessage(statusCode int, body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := detailToString(payload.Detail); msg != "" {
			return msg
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// detailToString renders the "detail" field: usually a plain string, but
// FastAPI-style backends send structured validation details too.
func detailToString(detail json.RawMessage) string {
	if len(detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(detail, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(detail))
}
