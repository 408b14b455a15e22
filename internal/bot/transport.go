package bot

import (
	"context"
	"io"

	"subburn/internal/services/telegram"
)

// Transport adapts the Telegram client to the workflow's outbound contract.
type Transport struct {
	client *telegram.Client
}

// NewTransport wraps a Telegram client.
func NewTransport(client *telegram.Client) *Transport {
	return &Transport{client: client}
}

// Notify sends a progress or error message to the chat.
func (t *Transport) Notify(ctx context.Context, chatID int64, text string) error {
	return t.client.SendMessage(ctx, chatID, text)
}

// DeliverVideo uploads the finished video to the chat.
func (t *Transport) DeliverVideo(ctx context.Context, chatID int64, video io.Reader, filename, caption string) error {
	return t.client.SendVideo(ctx, chatID, video, filename, caption)
}
