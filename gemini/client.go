// Package gemini generates architecture diagrams with the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/deepnoodle-ai/archsketch"
	"github.com/deepnoodle-ai/archsketch/log"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
var DefaultModel = ModelGemini25Flash

var (
	// ErrAPIKeyMissing is returned by New when neither an API key nor a
	// Vertex AI project is available.
	ErrAPIKeyMissing = errors.New("gemini API key not found in GEMINI_API_KEY or GOOGLE_API_KEY")

	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("empty response from Gemini")
)

// BlockedError reports a prompt rejected by the API's safety filters.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("prompt blocked by Gemini: %s", e.Reason)
}

var _ archsketch.Generator = (*Client)(nil)

// Client is an archsketch.Generator backed by the Gemini API. It holds a
// single genai client and is safe for concurrent use.
type Client struct {
	client     *genai.Client
	schema     *genai.Schema
	config     *genai.GenerateContentConfig
	apiKey     string
	projectID  string
	location   string
	model      string
	backend    string
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// New builds the client. The API key comes from WithAPIKey, GEMINI_API_KEY or
// GOOGLE_API_KEY, in that order. A project (WithProjectID or
// GOOGLE_CLOUD_PROJECT) selects Vertex AI with application default
// credentials instead.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	var apiKey string
	if value := os.Getenv("GEMINI_API_KEY"); value != "" {
		apiKey = value
	} else if value := os.Getenv("GOOGLE_API_KEY"); value != "" {
		apiKey = value
	}
	c := &Client{
		apiKey:    apiKey,
		projectID: os.Getenv("GOOGLE_CLOUD_PROJECT"),
		location:  os.Getenv("GOOGLE_CLOUD_LOCATION"),
		model:     DefaultModel,
		logger:    log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	cc := &genai.ClientConfig{HTTPClient: c.httpClient}
	switch {
	case c.apiKey != "":
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = c.apiKey
		c.backend = "gemini"
	case c.projectID != "":
		cc.Backend = genai.BackendVertexAI
		cc.Project = c.projectID
		cc.Location = c.location
		c.backend = "vertex"
	default:
		return nil, ErrAPIKeyMissing
	}
	if c.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create google genai client: %w", err)
	}
	c.client = client
	c.schema = convertSchemaToGenAI(archsketch.DiagramSchema())
	c.config = buildGenerateConfig(c.schema)
	return c, nil
}

// Model returns the model identifier sent with each request.
func (c *Client) Model() string {
	return c.model
}

// Backend reports which API the client talks to: "gemini" or "vertex".
func (c *Client) Backend() string {
	return c.backend
}

// GenerateDiagram sends one GenerateContent request and returns the response
// text as JSON. Valid JSON that does not fit Diagram is still returned.
// There are no retries.
func (c *Client) GenerateDiagram(ctx context.Context, instructions string) (*archsketch.Generation, error) {
	started := time.Now()
	c.logger.Debug("generating diagram",
		"model", c.model,
		"instructions_length", len(instructions))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, userContents(instructions), c.config)
	if err != nil {
		return nil, fmt.Errorf("error generating content: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	gen, err := archsketch.ParseGeneration(text)
	if err != nil {
		return nil, err
	}

	args := []any{
		"model", c.model,
		"bytes", len(gen.Raw),
		"duration", time.Since(started),
	}
	if gen.Diagram != nil {
		args = append(args, "nodes", len(gen.Diagram.Nodes), "edges", len(gen.Diagram.Edges))
	}
	if resp.UsageMetadata != nil {
		args = append(args,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount)
	}
	c.logger.Debug("generated diagram", args...)
	return gen, nil
}
