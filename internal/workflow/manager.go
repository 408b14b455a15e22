package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"subburn/internal/config"
	"subburn/internal/language"
	"subburn/internal/logging"
	"subburn/internal/translate"
)

// Dependencies are the collaborators a Manager drives. All fields except
// Recorder are required.
type Dependencies struct {
	Transcriber Transcriber
	Translator  translate.Translator
	Transport   Transport
	Renderer    Renderer
	Recorder    Recorder
}

// Manager owns the admission gate and runs each admitted job through the
// full pipeline on its own goroutine.
type Manager struct {
	cfg    *config.Config
	logger *slog.Logger
	gate   *Gate
	target language.Target

	transcriber Transcriber
	batch       *translate.Batch
	transport   Transport
	renderer    Renderer
	recorder    Recorder

	// jobsCtx outlives the submit context: a job admitted before shutdown
	// keeps running through the drain window and is only canceled when
	// Shutdown gives up waiting.
	jobsCtx    context.Context
	cancelJobs context.CancelFunc

	wg sync.WaitGroup
}

// NewManager constructs a workflow manager.
func NewManager(cfg *config.Config, deps Dependencies, logger *slog.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("workflow: config required")
	}
	if deps.Transcriber == nil || deps.Translator == nil || deps.Transport == nil || deps.Renderer == nil {
		return nil, errors.New("workflow: transcriber, translator, transport and renderer are required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	target, err := language.ParseTarget(cfg.Translation.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("workflow: target language: %w", err)
	}
	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	return &Manager{
		cfg:         cfg,
		logger:      logger.With(logging.String("component", "workflow-manager")),
		gate:        NewGate(cfg.Pipeline.Workers),
		target:      target,
		transcriber: deps.Transcriber,
		batch:       translate.NewBatch(deps.Translator),
		transport:   deps.Transport,
		renderer:    deps.Renderer,
		recorder:    deps.Recorder,
		jobsCtx:     jobsCtx,
		cancelJobs:  cancelJobs,
	}, nil
}

// Gate exposes the admission gate for status reporting.
func (m *Manager) Gate() *Gate {
	return m.gate
}

// Submit attempts to admit a job. The admission check is non-blocking; when
// every slot is held it returns ErrBusy immediately and no job is created.
// On success the job runs on its own goroutine under the manager's job
// context, so cancellation of the submit context (dispatcher shutdown) does
// not abort work already admitted.
func (m *Manager) Submit(ctx context.Context, req Request) (string, error) {
	if !m.gate.TryAcquire() {
		return "", ErrBusy
	}
	jobID := uuid.NewString()
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.runJob(m.jobsCtx, jobID, req)
	}()
	m.logger.Info("job admitted",
		logging.String(logging.FieldEventType, "job_admitted"),
		logging.String(logging.FieldJobID, jobID),
		logging.Int64(logging.FieldChatID, req.ChatID),
		logging.Int("in_flight", m.gate.InFlight()),
	)
	return jobID, nil
}

// Wait blocks until every in-flight job has finished or ctx expires.
func (m *Manager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown drains in-flight jobs. Jobs still running when ctx expires are
// canceled and their cleanup is awaited; the returned error reports whether
// the drain window was exceeded.
func (m *Manager) Shutdown(ctx context.Context) error {
	err := m.Wait(ctx)
	if err == nil {
		return nil
	}
	m.cancelJobs()
	_ = m.Wait(context.Background())
	return err
}
