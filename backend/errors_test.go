package backend

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorFromResponse(t *testing.T, status int, contentType, body string) *APIError {
	t.Helper()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})

	_, err := client.ListPlayers(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr
}

// Приоритет извлечения текста ошибки: detail, затем message, затем сырое
// тело, затем generic HTTP-статус.
func TestErrorMessageExtractionPriority(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "structured detail",
			status:  422,
			body:    `{"detail":"duplicate participant"}`,
			wantMsg: "duplicate participant",
		},
		{
			name:    "detail wins over message",
			status:  400,
			body:    `{"detail":"из detail","message":"из message"}`,
			wantMsg: "из detail",
		},
		{
			name:    "message fallback",
			status:  400,
			body:    `{"message":"что-то пошло не так"}`,
			wantMsg: "что-то пошло не так",
		},
		{
			name:    "raw body fallback",
			status:  502,
			body:    "Bad Gateway",
			wantMsg: "Bad Gateway",
		},
		{
			name:    "generic status fallback",
			status:  500,
			body:    "",
			wantMsg: "HTTP 500",
		},
		{
			name:    "structured detail list rendered as text",
			status:  422,
			body:    `{"detail":[{"loc":["body","name"],"msg":"field required"}]}`,
			wantMsg: `[{"loc":["body","name"],"msg":"field required"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := errorFromResponse(t, tt.status, "application/json", tt.body)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestSuccessStatusesPass(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status["status"])
}

func TestErrorIsNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.ListPlayers(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Health(ctx)
	require.Error(t, err)
}
