// Package groq wraps the Groq OpenAI-compatible audio transcription API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "whisper-large-v3-turbo"
	defaultHTTPTimeout = 5 * time.Minute
)

// Client calls the Groq transcription endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option customizes the Groq client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModel overrides the default whisper model.
func WithModel(model string) Option {
	return func(c *Client) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// NewClient constructs a Groq API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Span is one timed span from the verbose transcription payload. Pointer
// timing fields keep "missing" distinguishable from zero for downstream
// validation.
type Span struct {
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Text  string   `json:"text"`
}

type verboseTranscription struct {
	Text     string `json:"text"`
	Segments []Span `json:"segments"`
}

// Transcribe uploads the audio file and returns the detected speech spans in
// provider order. A transcription with no spans returns an empty slice, not
// an error; the caller decides how to treat silence.
func (c *Client) Transcribe(ctx context.Context, audioPath string) ([]Span, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, errors.New("groq transcribe: api key required")
	}
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("groq transcribe: open audio: %w", err)
	}
	defer file.Close()

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("groq transcribe: build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("groq transcribe: copy audio: %w", err)
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return nil, fmt.Errorf("groq transcribe: build form: %w", err)
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("groq transcribe: build form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("groq transcribe: finalize form: %w", err)
	}

	endpoint := c.baseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &requestBody)
	if err != nil {
		return nil, fmt.Errorf("groq transcribe: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("groq transcribe: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("groq transcribe: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("groq transcribe: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload verboseTranscription
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("groq transcribe: parse response: %w", err)
	}
	return payload.Segments, nil
}
