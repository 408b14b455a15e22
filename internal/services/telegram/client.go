// Package telegram implements the slice of the Telegram Bot API the pipeline
// needs: long-polling updates, file download, text replies, and video upload.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.telegram.org"
	defaultHTTPTimeout = 90 * time.Second
)

// Client calls the Bot API on behalf of one bot token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the Telegram client.
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

// NewClient constructs a Bot API client.
func NewClient(token string, opts ...Option) *Client {
	client := &Client{
		token:      strings.TrimSpace(token),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

func (c *Client) call(ctx context.Context, method string, params url.Values, result any) error {
	var body io.Reader
	if params != nil {
		body = strings.NewReader(params.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), body)
	if err != nil {
		return fmt.Errorf("telegram %s: request: %w", method, err)
	}
	if params != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: request failed: %w", method, err)
	}
	defer resp.Body.Close()
	return decodeAPIResponse(method, resp, result)
}

func decodeAPIResponse(method string, resp *http.Response, result any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram %s: read body: %w", method, err)
	}
	var envelope apiResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("telegram %s: parse response: %w", method, err)
	}
	if !envelope.OK {
		description := strings.TrimSpace(envelope.Description)
		if description == "" {
			description = fmt.Sprintf("http %d", resp.StatusCode)
		}
		return fmt.Errorf("telegram %s: %s", method, description)
	}
	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("telegram %s: parse result: %w", method, err)
		}
	}
	return nil
}

// GetUpdates long polls for updates after offset. timeoutSeconds rides in the
// request so the server holds the connection; the HTTP client timeout must
// exceed it.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	params := url.Values{}
	params.Set("offset", strconv.FormatInt(offset, 10))
	params.Set("timeout", strconv.Itoa(timeoutSeconds))
	params.Set("allowed_updates", `["message"]`)

	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends a plain-text message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)
	return c.call(ctx, "sendMessage", params, nil)
}

// GetFile resolves a file ID into a download path.
func (c *Client) GetFile(ctx context.Context, fileID string) (File, error) {
	params := url.Values{}
	params.Set("file_id", fileID)

	var file File
	if err := c.call(ctx, "getFile", params, &file); err != nil {
		return File{}, err
	}
	if file.FilePath == "" {
		return File{}, errors.New("telegram getFile: empty file_path in response")
	}
	return file, nil
}

// DownloadFile fetches the raw bytes behind a getFile path.
func (c *Client) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, filePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("telegram download: request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram download: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram download: http %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telegram download: read body: %w", err)
	}
	return data, nil
}

// SendVideo uploads a video with an optional caption.
func (c *Client) SendVideo(ctx context.Context, chatID int64, video io.Reader, filename, caption string) error {
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return fmt.Errorf("telegram sendVideo: build form: %w", err)
	}
	if caption != "" {
		if err := writer.WriteField("caption", caption); err != nil {
			return fmt.Errorf("telegram sendVideo: build form: %w", err)
		}
	}
	part, err := writer.CreateFormFile("video", filename)
	if err != nil {
		return fmt.Errorf("telegram sendVideo: build form: %w", err)
	}
	if _, err := io.Copy(part, video); err != nil {
		return fmt.Errorf("telegram sendVideo: copy video: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("telegram sendVideo: finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendVideo"), &requestBody)
	if err != nil {
		return fmt.Errorf("telegram sendVideo: request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendVideo: request failed: %w", err)
	}
	defer resp.Body.Close()
	return decodeAPIResponse("sendVideo", resp, nil)
}
