// Package bot owns the control path: it long polls Telegram for updates,
// answers commands, and hands inbound videos to the workflow manager through
// the non-blocking admission check. No pipeline stage ever runs on the
// polling goroutine.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"subburn/internal/logging"
	"subburn/internal/services/telegram"
	"subburn/internal/workflow"
)

const startReply = "🎬 שלח סרטון עד 5 דקות ואחזיר אותו עם כתוביות בעברית — מסודרות וימניות!"

const pollErrorBackoff = 3 * time.Second

// API is the slice of the Telegram client the dispatcher uses.
type API interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
	GetFile(ctx context.Context, fileID string) (telegram.File, error)
	DownloadFile(ctx context.Context, filePath string) ([]byte, error)
}

// Submitter admits jobs into the pipeline.
type Submitter interface {
	Submit(ctx context.Context, req workflow.Request) (string, error)
}

// Dispatcher runs the update loop.
type Dispatcher struct {
	api         API
	submitter   Submitter
	logger      *slog.Logger
	pollTimeout int
}

// NewDispatcher constructs a dispatcher polling with the given long-poll
// timeout in seconds.
func NewDispatcher(api API, submitter Submitter, pollTimeoutSeconds int, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	if pollTimeoutSeconds < 1 {
		pollTimeoutSeconds = 60
	}
	return &Dispatcher{
		api:         api,
		submitter:   submitter,
		logger:      logger.With(logging.String("component", "bot")),
		pollTimeout: pollTimeoutSeconds,
	}
}

// Run polls for updates until ctx is canceled. Poll errors are logged and
// retried after a short backoff; they never stop the loop.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("starting update polling", logging.Int("poll_timeout_seconds", d.pollTimeout))
	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		updates, err := d.api.GetUpdates(ctx, offset, d.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.Warn("update poll failed", logging.Error(err))
			select {
			case <-time.After(pollErrorBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			d.handleUpdate(ctx, update)
		}
	}
}

func (d *Dispatcher) handleUpdate(ctx context.Context, update telegram.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	switch {
	case strings.HasPrefix(msg.Text, "/start"):
		d.reply(ctx, msg.Chat.ID, startReply)
	case msg.Video != nil:
		d.handleVideo(ctx, msg)
	}
}

// handleVideo performs the admission check synchronously and returns
// immediately. The download runs inside the admitted job, not here.
func (d *Dispatcher) handleVideo(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID
	video := *msg.Video
	filename := video.FileName
	if filename == "" {
		filename = "video.mp4"
	}

	req := workflow.Request{
		ChatID:   chatID,
		Filename: filename,
		Fetch: func(ctx context.Context) ([]byte, error) {
			file, err := d.api.GetFile(ctx, video.FileID)
			if err != nil {
				return nil, err
			}
			return d.api.DownloadFile(ctx, file.FilePath)
		},
	}

	jobID, err := d.submitter.Submit(ctx, req)
	if err != nil {
		if errors.Is(err, workflow.ErrBusy) {
			d.logger.Info("admission denied",
				logging.String(logging.FieldEventType, "admission_denied"),
				logging.Int64(logging.FieldChatID, chatID),
			)
			d.reply(ctx, chatID, workflow.BusyNotice)
			return
		}
		d.logger.Error("job submission failed", logging.Error(err), logging.Int64(logging.FieldChatID, chatID))
		return
	}
	d.logger.Info("video accepted",
		logging.String(logging.FieldJobID, jobID),
		logging.Int64(logging.FieldChatID, chatID),
		logging.String("filename", filename),
	)
}

func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) {
	if err := d.api.SendMessage(ctx, chatID, text); err != nil {
		d.logger.Warn("reply failed", logging.Error(err), logging.Int64(logging.FieldChatID, chatID))
	}
}
