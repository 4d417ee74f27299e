package gemini

import (
	"net/http"

	"github.com/deepnoodle-ai/archsketch/log"
)

// Option is a function that configures the Gemini client.
type Option func(*Client)

// WithAPIKey sets the Gemini API key. A non-empty key overrides
// GEMINI_API_KEY and GOOGLE_API_KEY.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		if apiKey != "" {
			c.apiKey = apiKey
		}
	}
}

// WithProjectID sets the Google Cloud project ID. Setting a project selects
// the Vertex AI backend.
func WithProjectID(projectID string) Option {
	return func(c *Client) {
		if projectID != "" {
			c.projectID = projectID
		}
	}
}

// WithLocation sets the Google Cloud location/region.
func WithLocation(location string) Option {
	return func(c *Client) {
		if location != "" {
			c.location = location
		}
	}
}

// WithModel sets the model used for every request.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
