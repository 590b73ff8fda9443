package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/resilience"
)

const groundedBody = `{
	"candidates": [{
		"content": {"role": "model", "parts": [{"text": "| Nome | Telefone |\n"}, {"text": "|---|---|"}]},
		"groundingMetadata": {"groundingChunks": [
			{"web": {"uri": "http://a.com", "title": "A"}},
			{"web": {"uri": "http://b.com"}},
			{"retrievedContext": {"uri": "ignored"}},
			{"web": {}}
		]}
	}]
}`

func TestRetrieve(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  string
		wantText string
		wantURLs []string
	}{
		{
			name:     "success_with_grounding",
			status:   http.StatusOK,
			body:     groundedBody,
			wantText: "| Nome | Telefone |\n|---|---|",
			wantURLs: []string{"http://a.com", "http://b.com"},
		},
		{
			name:     "no_candidates",
			status:   http.StatusOK,
			body:     `{"candidates": []}`,
			wantText: "",
			wantURLs: nil,
		},
		{
			name:     "no_grounding_metadata",
			status:   http.StatusOK,
			body:     `{"candidates": [{"content": {"parts": [{"text": "hello"}]}}]}`,
			wantText: "hello",
			wantURLs: nil,
		},
		{
			name:    "auth_failure",
			status:  http.StatusUnauthorized,
			body:    `{"error": {"message": "API key not valid"}}`,
			wantErr: "unexpected status 401",
		},
		{
			name:    "server_error",
			status:  http.StatusInternalServerError,
			body:    `{"error": {"message": "internal"}}`,
			wantErr: "unexpected status 500",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{invalid json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))

			got, err := client.Retrieve(context.Background(), "find leads")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantURLs, got.SourceURLs)
		})
	}
}

func TestRetrieve_RequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))

		tools, ok := raw["tools"].([]any)
		require.True(t, ok, "request must enable the search tool")
		require.Len(t, tools, 1)
		_, hasSearch := tools[0].(map[string]any)["google_search"]
		assert.True(t, hasSearch)

		// Search grounding and structured-output schemas are mutually
		// exclusive on this backend; the request must carry neither a
		// generationConfig schema nor a response mime type.
		_, hasGenCfg := raw["generationConfig"]
		assert.False(t, hasGenCfg)

		contents := raw["contents"].([]any)
		require.Len(t, contents, 1)
		parts := contents[0].(map[string]any)["parts"].([]any)
		require.Len(t, parts, 1)
		assert.Equal(t, "the prompt", parts[0].(map[string]any)["text"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Retrieve(context.Background(), "the prompt")
	require.NoError(t, err)
}

func TestRetrieve_ModelInPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-pro:generateContent", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithModel("gemini-2.5-pro"))
	_, err := client.Retrieve(context.Background(), "prompt")
	require.NoError(t, err)
}

func TestRetrieve_TransientStatusMarked(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		transient bool
	}{
		{"rate_limited", http.StatusTooManyRequests, true},
		{"server_error", http.StatusInternalServerError, true},
		{"service_unavailable", http.StatusServiceUnavailable, true},
		{"bad_request", http.StatusBadRequest, false},
		{"unauthorized", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error": {}}`))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))
			_, err := client.Retrieve(context.Background(), "prompt")

			require.Error(t, err)
			assert.Equal(t, tt.transient, resilience.IsTransient(err))
		})
	}
}

func TestRetrieve_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Retrieve(ctx, "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestRetrieve_ErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "API key expired"}}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := client.Retrieve(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "API key expired")
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()
	c := NewClient("my-key")
	hc := c.(*httpClient)
	assert.Equal(t, "my-key", hc.apiKey)
	assert.Equal(t, defaultBaseURL, hc.baseURL)
	assert.Equal(t, defaultModel, hc.model)
	assert.NotNil(t, hc.http)
	assert.NotNil(t, hc.http.Transport)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()
	custom := &http.Client{}
	c := NewClient("test-key", WithHTTPClient(custom))
	hc := c.(*httpClient)
	assert.Equal(t, custom, hc.http)
}
