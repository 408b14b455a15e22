// Package workflow runs the per-video subtitle pipeline under admission
// control: transcribe, validate, translate, serialize, burn in, deliver,
// clean up. One job never blocks another and every admitted job releases its
// slot exactly once.
package workflow

import (
	"context"
	"errors"
	"io"
	"time"

	"subburn/internal/segments"
)

// ErrBusy reports that every worker slot is held. The caller surfaces this as
// an immediate rejection, never a queued wait.
var ErrBusy = errors.New("all worker slots busy")

// ErrNoSpeech reports that transcription produced no usable segments.
var ErrNoSpeech = errors.New("no speech detected")

// Request is one inbound video to process. Media carries pre-fetched bytes;
// when Fetch is set the job downloads the video itself as its first stage,
// keeping the accepting control path free.
type Request struct {
	ChatID   int64
	Media    []byte
	Filename string
	Fetch    func(ctx context.Context) ([]byte, error)
}

// Transcriber converts an audio file into timed speech spans.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]segments.RawSpan, error)
}

// Renderer drives the external encoder for audio extraction and subtitle
// burn-in.
type Renderer interface {
	ExtractAudio(ctx context.Context, inputPath, outputPath string) error
	BurnSubtitles(ctx context.Context, inputPath, trackPath, outputPath string) error
}

// Transport delivers progress notices and the finished video back to the
// requesting chat.
type Transport interface {
	Notify(ctx context.Context, chatID int64, text string) error
	DeliverVideo(ctx context.Context, chatID int64, video io.Reader, filename, caption string) error
}

// Job outcome statuses recorded to history.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Outcome is the terminal record of one job.
type Outcome struct {
	JobID      string
	ChatID     int64
	Filename   string
	Status     string
	Detail     string
	Segments   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Recorder persists terminal job outcomes. Recording is best-effort; a
// failure to record never fails the job.
type Recorder interface {
	Record(ctx context.Context, outcome Outcome) error
}
