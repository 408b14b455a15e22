// Package daemon assembles the service from configuration and owns its
// lifecycle: single-instance locking, the liveness endpoint, the update
// dispatcher, and graceful drain of in-flight jobs on shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"subburn/internal/bot"
	"subburn/internal/config"
	"subburn/internal/history"
	"subburn/internal/language"
	"subburn/internal/logging"
	"subburn/internal/render"
	"subburn/internal/segments"
	"subburn/internal/services/groq"
	"subburn/internal/services/gtranslate"
	"subburn/internal/services/telegram"
	"subburn/internal/workflow"
)

// drainTimeout bounds how long shutdown waits for in-flight jobs.
const drainTimeout = 30 * time.Second

// Daemon wires the pipeline together and runs it until the context ends.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *history.Store
	manager    *workflow.Manager
	dispatcher *bot.Dispatcher
	health     *healthServer

	lockPath string
	lock     *flock.Flock
}

// transcriberAdapter narrows the Groq client to the workflow contract.
type transcriberAdapter struct {
	client *groq.Client
}

func (a transcriberAdapter) Transcribe(ctx context.Context, audioPath string) ([]segments.RawSpan, error) {
	spans, err := a.client.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	raw := make([]segments.RawSpan, len(spans))
	for i, span := range spans {
		raw[i] = segments.RawSpan{Start: span.Start, End: span.End, Text: span.Text}
	}
	return raw, nil
}

// New builds a daemon from validated configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon: config required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := os.MkdirAll(cfg.Pipeline.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	if cfg.Pipeline.FontsDir != "" {
		if _, err := os.Stat(cfg.Pipeline.FontsDir); err != nil {
			return nil, fmt.Errorf("fonts directory: %w", err)
		}
	}

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	target, err := language.ParseTarget(cfg.Translation.TargetLanguage)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("target language: %w", err)
	}

	telegramClient := telegram.NewClient(cfg.Telegram.Token,
		telegram.WithBaseURL(cfg.Telegram.BaseURL),
		telegram.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Telegram.PollTimeoutSeconds+30) * time.Second,
		}),
	)
	groqClient := groq.NewClient(cfg.Transcription.APIKey,
		groq.WithBaseURL(cfg.Transcription.BaseURL),
		groq.WithModel(cfg.Transcription.Model),
	)
	translateClient := gtranslate.NewClient(target.Code,
		gtranslate.WithBaseURL(cfg.Translation.BaseURL),
		gtranslate.WithTimeout(time.Duration(cfg.Translation.RequestTimeoutSeconds)*time.Second),
	)
	invoker := render.NewInvoker(cfg.Pipeline.FFmpegBinary, cfg.Pipeline.FontsDir)

	manager, err := workflow.NewManager(cfg, workflow.Dependencies{
		Transcriber: transcriberAdapter{client: groqClient},
		Translator:  translateClient,
		Transport:   bot.NewTransport(telegramClient),
		Renderer:    invoker,
		Recorder:    store,
	}, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	dispatcher := bot.NewDispatcher(telegramClient, manager, cfg.Telegram.PollTimeoutSeconds, logger)
	lockPath := filepath.Join(cfg.Paths.LogDir, "subburn.lock")

	return &Daemon{
		cfg:        cfg,
		logger:     logger.With(logging.String("component", "daemon")),
		store:      store,
		manager:    manager,
		dispatcher: dispatcher,
		health:     newHealthServer(cfg.Paths.HealthBind, logger),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}, nil
}

// acquireLock takes the single-instance lock and returns its release func.
func (d *Daemon) acquireLock() (func(), error) {
	ok, err := d.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another subburn instance holds %s", d.lockPath)
	}
	return func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("failed to release daemon lock", logging.Error(err))
		}
	}, nil
}

// Run serves until ctx is canceled, then drains in-flight jobs within
// drainTimeout before returning.
func (d *Daemon) Run(ctx context.Context) error {
	unlock, err := d.acquireLock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := d.health.start(); err != nil {
		return fmt.Errorf("start health endpoint: %w", err)
	}
	d.logger.Info("daemon started",
		logging.String("health_bind", d.cfg.Paths.HealthBind),
		logging.Int("workers", d.manager.Gate().Capacity()),
		logging.String("lock", d.lockPath),
	)

	runErr := d.dispatcher.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if waitErr := d.manager.Shutdown(shutdownCtx); waitErr != nil {
		d.logger.Warn("in-flight jobs canceled after drain timeout", logging.Error(waitErr))
	}
	d.health.stop(shutdownCtx)
	d.logger.Info("daemon stopped")

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	return d.store.Close()
}
