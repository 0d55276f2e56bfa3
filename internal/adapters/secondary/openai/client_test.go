package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
)

// newAPIServer serves minimal OpenAI-compatible responses for the given
// paths. The handler map keys are URL paths under /v1.
func newAPIServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) entities.OpenAIConfig {
	return entities.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL + "/v1",
	}
}

func TestClient_Complete(t *testing.T) {
	t.Run("returns first candidate text", func(t *testing.T) {
		var gotBody map[string]interface{}
		srv := newAPIServer(t, map[string]http.HandlerFunc{
			"/v1/chat/completions": func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"choices": [
						{"message": {"role": "assistant", "content": "Slide 1: First\n- Point."}},
						{"message": {"role": "assistant", "content": "ignored second choice"}}
					]
				}`))
			},
		})

		c := NewClient(testConfig(srv.URL))

		text, err := c.Complete(context.Background(), "draft a pitch deck")
		require.NoError(t, err)
		assert.Equal(t, "Slide 1: First\n- Point.", text)

		assert.Equal(t, "gpt-4o-mini", gotBody["model"])
		assert.InDelta(t, 2048, gotBody["max_tokens"], 0.1)
	})

	t.Run("configured model and limits are sent", func(t *testing.T) {
		var gotBody map[string]interface{}
		srv := newAPIServer(t, map[string]http.HandlerFunc{
			"/v1/chat/completions": func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
				_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
			},
		})

		cfg := testConfig(srv.URL)
		cfg.Model = "gpt-4o"
		cfg.MaxTokens = 512
		cfg.Temperature = 0.4

		c := NewClient(cfg)

		_, err := c.Complete(context.Background(), "prompt")
		require.NoError(t, err)

		assert.Equal(t, "gpt-4o", gotBody["model"])
		assert.InDelta(t, 512, gotBody["max_tokens"], 0.1)
		assert.InDelta(t, 0.4, gotBody["temperature"], 0.01)
	})

	t.Run("empty candidate list is an upstream error", func(t *testing.T) {
		srv := newAPIServer(t, map[string]http.HandlerFunc{
			"/v1/chat/completions": func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices": []}`))
			},
		})

		c := NewClient(testConfig(srv.URL))

		_, err := c.Complete(context.Background(), "prompt")
		require.Error(t, err)

		var upstream *entities.UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, "completion", upstream.Operation)
	})

	t.Run("api error is an upstream error", func(t *testing.T) {
		srv := newAPIServer(t, map[string]http.HandlerFunc{
			"/v1/chat/completions": func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "requests"}}`))
			},
		})

		c := NewClient(testConfig(srv.URL))

		_, err := c.Complete(context.Background(), "prompt")
		require.Error(t, err)

		var upstream *entities.UpstreamError
		assert.True(t, errors.As(err, &upstream))
	})
}

func TestClient_GenerateImage(t *testing.T) {
	t.Run("returns image URL", func(t *testing.T) {
		var gotBody map[string]interface{}
		srv := newAPIServer(t, map[string]http.HandlerFunc{
			"/v1/images/generations": func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
				_, _ = w.Write([]byte(`{"data": [{"url": "https://img.example.test/1.png"}]}`))
			},
		})

		c := NewClient(testConfig(srv.URL))

		url, err := c.GenerateImage(context.Background(), "a rocket on a launch pad")
		require.NoError(t, err)
		assert.Equal(t, "https://img.example.test/1.png", url)

		assert.Equal(t, "a rocket on a launch pad", gotBody["prompt"])
		assert.Equal(t, "512x512", gotBody["size"])
		assert.InDelta(t, 1, gotBody["n"], 0.1)
	})

	t.Run("empty data is an upstream error", func(t *testing.T) {
		srv := newAPIServer(t, map[string]http.HandlerFunc{
			"/v1/images/generations": func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data": []}`))
			},
		})

		c := NewClient(testConfig(srv.URL))

		_, err := c.GenerateImage(context.Background(), "prompt")
		require.Error(t, err)

		var upstream *entities.UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, "image generation", upstream.Operation)
	})
}

func TestFixtureClient(t *testing.T) {
	t.Run("default fixture parses into slides", func(t *testing.T) {
		c := NewFixtureClient()

		text, err := c.Complete(context.Background(), "any prompt at all")
		require.NoError(t, err)
		assert.Equal(t, FixtureCompletion, text)
		assert.Contains(t, text, "Slide 1: Ham on Rye")
		assert.Contains(t, text, "- I Like Ham.")
	})

	t.Run("custom text", func(t *testing.T) {
		c := NewFixtureClientWithText("Slide 1: Custom\n")

		text, err := c.Complete(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "Slide 1: Custom\n", text)
	})
}
