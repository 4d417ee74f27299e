package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deepnoodle-ai/archsketch"
	"github.com/deepnoodle-ai/wonton/assert"
	tassert "github.com/stretchr/testify/assert"
)

// fakeGemini serves canned generateContent responses and records requests.
type fakeGemini struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []recordedRequest
}

type recordedRequest struct {
	path   string
	apiKey string
	body   string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		path:   r.URL.Path,
		apiKey: r.Header.Get("x-goog-api-key"),
		body:   string(data),
	})
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func candidateResponse(t *testing.T, text string) string {
	t.Helper()
	resp := map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			},
			"finishReason": "STOP",
			"index":        0,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 48,
			"totalTokenCount":      60,
		},
	}
	data, err := json.Marshal(resp)
	assert.NoError(t, err)
	return string(data)
}

func newTestClient(t *testing.T, fake *fakeGemini, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithAPIKey("test-key"), WithBaseURL(srv.URL)}, opts...)
	client, err := New(context.Background(), opts...)
	assert.NoError(t, err)
	return client
}

func TestNewRequiresCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")

	client, err := New(context.Background())
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")

	client, err := New(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "google-key", client.apiKey)
	assert.Equal(t, "gemini", client.Backend())

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	client, err = New(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "gemini-key", client.apiKey)
}

func TestOptions(t *testing.T) {
	client, err := New(context.Background(),
		WithAPIKey("explicit"),
		WithModel(ModelGemini25Pro),
		WithLocation("us-central1"),
	)
	assert.NoError(t, err)
	assert.Equal(t, "explicit", client.apiKey)
	assert.Equal(t, ModelGemini25Pro, client.Model())
	assert.Equal(t, "us-central1", client.location)

	client, err = New(context.Background(), WithAPIKey("explicit"), WithModel(""))
	assert.NoError(t, err)
	assert.Equal(t, ModelGemini25Flash, client.Model())
}

func TestGenerateDiagram(t *testing.T) {
	diagramJSON := `{"nodes":[{"id":"WEB","name":"Web App"},{"id":"DB","name":"Database"},{"id":"CACHE","name":"Cache"}],` +
		`"edges":[{"from_id":"WEB","to_id":"DB"},{"from_id":"WEB","to_id":"CACHE"}]}`
	fake := &fakeGemini{body: candidateResponse(t, diagramJSON)}
	client := newTestClient(t, fake)

	gen, err := client.GenerateDiagram(context.Background(), "A web app with a database and a cache")
	assert.NoError(t, err)
	assert.Equal(t, diagramJSON, string(gen.Raw))
	assert.Len(t, gen.Diagram.Nodes, 3)
	assert.Len(t, gen.Diagram.Edges, 2)
	assert.Equal(t, "CACHE", gen.Diagram.Edges[1].ToID)

	assert.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.True(t, strings.HasSuffix(req.path, "models/gemini-2.5-flash:generateContent"))
	assert.Equal(t, "test-key", req.apiKey)
	assert.Contains(t, req.body, "A web app with a database and a cache")
	assert.Contains(t, req.body, "You are an expert system architecture designer.")
	assert.Contains(t, req.body, `"temperature":0.2`)
	assert.Contains(t, req.body, `"responseMimeType":"application/json"`)
	assert.Contains(t, req.body, `"responseSchema"`)
	assert.Contains(t, req.body, `"from_id"`)
}

func TestGenerateDiagramProseText(t *testing.T) {
	fake := &fakeGemini{body: candidateResponse(t, "Sure! Here is the diagram you asked for.")}
	client := newTestClient(t, fake)

	gen, err := client.GenerateDiagram(context.Background(), "anything")
	assert.Nil(t, gen)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON in model response")
}

func TestGenerateDiagramOffSchemaJSON(t *testing.T) {
	texts := map[string]string{
		"numeric id":    `{"nodes": [{"id": 1, "name": "Web"}], "edges": []}`,
		"numeric label": `{"nodes": [], "edges": [{"from_id": "A", "to_id": "B", "label": 7}]}`,
		"array":         `[{"id": "WEB"}]`,
	}
	for name, text := range texts {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, &fakeGemini{body: candidateResponse(t, text)})
			gen, err := client.GenerateDiagram(context.Background(), "anything")
			assert.NoError(t, err)
			assert.Nil(t, gen.Diagram)
			tassert.JSONEq(t, text, string(gen.Raw))
		})
	}
}

func TestGenerateDiagramEmptyCandidates(t *testing.T) {
	fake := &fakeGemini{body: `{"candidates":[]}`}
	client := newTestClient(t, fake)

	_, err := client.GenerateDiagram(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateDiagramBlockedPrompt(t *testing.T) {
	fake := &fakeGemini{body: `{"promptFeedback":{"blockReason":"SAFETY"}}`}
	client := newTestClient(t, fake)

	_, err := client.GenerateDiagram(context.Background(), "anything")
	var blocked *BlockedError
	assert.True(t, errors.As(err, &blocked))
	assert.Equal(t, "SAFETY", blocked.Reason)
}

func TestGenerateDiagramAPIError(t *testing.T) {
	fake := &fakeGemini{
		status: http.StatusBadRequest,
		body:   `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
	}
	client := newTestClient(t, fake)

	_, err := client.GenerateDiagram(context.Background(), "anything")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error generating content")
	assert.Contains(t, err.Error(), "API key not valid")
	assert.Len(t, fake.requests, 1)
}

func TestGenerateDiagramLive(t *testing.T) {
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		t.Skip("Skipping test: GEMINI_API_KEY or GOOGLE_API_KEY not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := New(ctx)
	assert.NoError(t, err)

	gen, err := client.GenerateDiagram(ctx, "A web app with a database and a cache")
	assert.NoError(t, err)
	assert.NotNil(t, gen.Diagram)
	assert.True(t, len(gen.Diagram.Nodes) > 0)
}

var _ archsketch.Generator = (*Client)(nil)
