package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/infrastructure/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "organize my tasks", req.Prompt)

		json.NewEncoder(w).Encode(generateResponse{Text: "done thinking"})
	}))
	defer srv.Close()

	client := NewClient(configs.SuggestConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "nyx-core",
		Timeout: time.Second,
	})

	text, err := client.Generate(context.Background(), "organize my tasks", nil)
	require.NoError(t, err)
	assert.Equal(t, "done thinking", text)
}

func TestGenerate_ServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(configs.SuggestConfig{BaseURL: srv.URL, Timeout: time.Second})

	_, err := client.Generate(context.Background(), "prompt", nil)
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}

func TestGenerate_Unreachable(t *testing.T) {
	t.Parallel()

	client := NewClient(configs.SuggestConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})

	_, err := client.Generate(context.Background(), "prompt", nil)
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}

func TestGenerate_MalformedResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(configs.SuggestConfig{BaseURL: srv.URL, Timeout: time.Second})

	_, err := client.Generate(context.Background(), "prompt", nil)
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}
