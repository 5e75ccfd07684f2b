package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuadmd/WHH-SBG/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.GenAIConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func candidateResponse(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestNewClient(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewClient(config.GenAIConfig{})
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		client, err := NewClient(config.GenAIConfig{APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.0-flash", client.model)
		assert.Equal(t, "https://generativelanguage.googleapis.com", client.baseURL)
	})
}

func TestGenerateText(t *testing.T) {
	t.Run("returns candidate text", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
			w.Write([]byte(candidateResponse("steady growth, low churn")))
		})

		text, err := client.GenerateText(context.Background(), "analyze this")
		require.NoError(t, err)
		assert.Equal(t, "steady growth, low churn", text)
	})

	t.Run("surfaces api error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`))
		})

		_, err := client.GenerateText(context.Background(), "prompt")
		assert.ErrorContains(t, err, "RESOURCE_EXHAUSTED")
	})

	t.Run("empty candidates is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		})

		_, err := client.GenerateText(context.Background(), "prompt")
		assert.ErrorContains(t, err, "empty response")
	})
}

func TestGenerateStructured(t *testing.T) {
	type template struct {
		Platform string `json:"platform"`
		Caption  string `json:"caption"`
	}

	schema := &Schema{
		Type: "ARRAY",
		Items: &Schema{
			Type: "OBJECT",
			Properties: map[string]*Schema{
				"platform": {Type: "STRING"},
				"caption":  {Type: "STRING"},
			},
			Required: []string{"platform", "caption"},
		},
	}

	t.Run("decodes json payload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var req generateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.GenerationConfig)
			assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
			assert.NotNil(t, req.GenerationConfig.ResponseSchema)

			w.Write([]byte(candidateResponse(`[{"platform":"Instagram","caption":"hello"}]`)))
		})

		var out []template
		err := client.GenerateStructured(context.Background(), "templates please", schema, &out)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Instagram", out[0].Platform)
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(candidateResponse(`not json at all`)))
		})

		var out []template
		err := client.GenerateStructured(context.Background(), "templates please", schema, &out)
		assert.ErrorContains(t, err, "decode structured response")
	})
}
