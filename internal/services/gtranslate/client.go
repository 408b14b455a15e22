// Package gtranslate wraps the public Google Translate web endpoint
// (translate_a/single, client=gtx). One Client instance translates into a
// single fixed target language.
package gtranslate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://translate.googleapis.com"
	defaultHTTPTimeout = 30 * time.Second
)

// Client calls the translate endpoint.
type Client struct {
	baseURL    string
	targetLang string
	sourceLang string
	httpClient *http.Client
}

// Option customizes the translate client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default endpoint base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a translate client targeting targetLang. The source
// language is always auto-detected.
func NewClient(targetLang string, opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		targetLang: strings.TrimSpace(targetLang),
		sourceLang: "auto",
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Translate translates text into the client's target language. It satisfies
// the translate.Translator contract used by the batch translator.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(c.targetLang) == "" {
		return "", errors.New("translate: target language required")
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", c.sourceLang)
	query.Set("tl", c.targetLang)
	query.Set("dt", "t")
	endpoint := c.baseURL + "/translate_a/single?" + query.Encode()

	form := url.Values{}
	form.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("translate: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("translate: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	translated, err := decodeResponse(body)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	return translated, nil
}

// decodeResponse extracts the translated text from the endpoint's nested
// array payload: [[["translated","source",...],...],...]. Sentence chunks are
// concatenated in order.
func decodeResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(payload) == 0 {
		return "", errors.New("empty response")
	}

	var sentences []json.RawMessage
	if err := json.Unmarshal(payload[0], &sentences); err != nil {
		return "", fmt.Errorf("parse sentence list: %w", err)
	}

	var b strings.Builder
	for _, sentence := range sentences {
		var chunk []json.RawMessage
		if err := json.Unmarshal(sentence, &chunk); err != nil {
			return "", fmt.Errorf("parse sentence: %w", err)
		}
		if len(chunk) == 0 {
			continue
		}
		var text string
		if err := json.Unmarshal(chunk[0], &text); err != nil {
			// Trailing metadata entries are not strings; skip them.
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
