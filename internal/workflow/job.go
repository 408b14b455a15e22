package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"subburn/internal/fileutil"
	"subburn/internal/logging"
	"subburn/internal/segments"
	"subburn/internal/subtitles"
)

// runJob drives one admitted job to a terminal state. The deferred block is
// the single cleanup path: it removes every artifact created so far and
// releases the admission slot, no matter where the pipeline stopped.
func (m *Manager) runJob(ctx context.Context, jobID string, req Request) {
	logger := m.logger.With(
		logging.String(logging.FieldJobID, jobID),
		logging.Int64(logging.FieldChatID, req.ChatID),
	)
	started := time.Now()

	var artifacts []string
	defer func() {
		fileutil.RemoveQuietly(artifacts...)
		m.gate.Release()
	}()

	jobCtx := ctx
	if timeout := m.cfg.Pipeline.JobTimeoutSeconds; timeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	segmentCount, err := m.execute(jobCtx, logger, req, &artifacts)

	// The notice and the history record must still go out when the job
	// context expired mid-stage.
	finishCtx := context.WithoutCancel(ctx)
	outcome := Outcome{
		JobID:      jobID,
		ChatID:     req.ChatID,
		Filename:   req.Filename,
		Segments:   segmentCount,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Detail = err.Error()
		logger.Error("job failed",
			logging.String(logging.FieldEventType, "job_failed"),
			logging.Error(err),
			logging.Duration("elapsed", time.Since(started)),
		)
		m.notify(finishCtx, logger, req.ChatID, failureNotice(err, m.cfg.Pipeline.MaxVideoSeconds))
	} else {
		outcome.Status = StatusCompleted
		logger.Info("job completed",
			logging.String(logging.FieldEventType, "job_completed"),
			logging.Int("segments", segmentCount),
			logging.Duration("elapsed", time.Since(started)),
		)
	}
	if m.recorder != nil {
		if recordErr := m.recorder.Record(finishCtx, outcome); recordErr != nil {
			logger.Warn("failed to record job outcome", logging.Error(recordErr))
		}
	}
}

// execute runs the pipeline stages in order and returns the number of
// subtitle segments delivered. Every temporary path is appended to artifacts
// before use so the caller's cleanup sees it even on mid-stage failure.
func (m *Manager) execute(ctx context.Context, logger *slog.Logger, req Request, artifacts *[]string) (int, error) {
	workDir := m.cfg.Pipeline.WorkDir

	media := req.Media
	if req.Fetch != nil {
		m.notify(ctx, logger, req.ChatID, msgDownloading)
		fetched, err := req.Fetch(ctx)
		if err != nil {
			return 0, fmt.Errorf("download video: %w", err)
		}
		media = fetched
	}

	ext := filepath.Ext(req.Filename)
	if ext == "" {
		ext = ".mp4"
	}
	inputPath, err := fileutil.WriteTemp(workDir, "input-*"+ext, media)
	if inputPath != "" {
		*artifacts = append(*artifacts, inputPath)
	}
	if err != nil {
		return 0, fmt.Errorf("write input video: %w", err)
	}

	m.notify(ctx, logger, req.ChatID, msgTranscribing)
	audioPath, err := fileutil.TempPath(workDir, "audio-*.wav")
	if audioPath != "" {
		*artifacts = append(*artifacts, audioPath)
	}
	if err != nil {
		return 0, fmt.Errorf("allocate audio path: %w", err)
	}
	if err := m.renderer.ExtractAudio(ctx, inputPath, audioPath); err != nil {
		return 0, fmt.Errorf("extract audio: %w", err)
	}

	spans, err := m.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return 0, fmt.Errorf("transcribe: %w", err)
	}
	segs := segments.Normalize(spans)
	if len(segs) == 0 {
		return 0, ErrNoSpeech
	}
	logger.Debug("transcription normalized",
		logging.Int("raw_spans", len(spans)),
		logging.Int("segments", len(segs)),
		logging.Float64("duration_seconds", segments.TotalDuration(segs)),
	)

	if err := segments.CheckDuration(segs, float64(m.cfg.Pipeline.MaxVideoSeconds)); err != nil {
		return 0, err
	}

	m.notify(ctx, logger, req.ChatID, msgTranslating)
	translated, err := m.batch.TranslateAll(ctx, segments.Texts(segs))
	if err != nil {
		return 0, fmt.Errorf("translate: %w", err)
	}
	if err := segments.ApplyTexts(segs, translated); err != nil {
		return 0, err
	}

	m.notify(ctx, logger, req.ChatID, msgSerializing)
	trackPath, err := subtitles.CreateTrackFile(workDir, segs, subtitles.Options{
		FontName: m.cfg.Pipeline.FontName,
		RTL:      m.target.RTL,
	})
	if trackPath != "" {
		*artifacts = append(*artifacts, trackPath)
	}
	if err != nil {
		return 0, fmt.Errorf("write subtitle track: %w", err)
	}

	m.notify(ctx, logger, req.ChatID, msgRendering)
	outputPath, err := fileutil.TempPath(workDir, "subtitled-*.mp4")
	if outputPath != "" {
		*artifacts = append(*artifacts, outputPath)
	}
	if err != nil {
		return 0, fmt.Errorf("allocate output path: %w", err)
	}
	if err := m.renderer.BurnSubtitles(ctx, inputPath, trackPath, outputPath); err != nil {
		return 0, fmt.Errorf("burn subtitles: %w", err)
	}

	m.notify(ctx, logger, req.ChatID, msgDelivering)
	output, err := os.Open(outputPath)
	if err != nil {
		return 0, fmt.Errorf("open rendered video: %w", err)
	}
	defer output.Close()
	if err := m.transport.DeliverVideo(ctx, req.ChatID, output, deliveredFilename(req.Filename), msgDeliveredCaption); err != nil {
		return 0, fmt.Errorf("deliver video: %w", err)
	}
	return len(segs), nil
}

// notify sends a progress or error notice. Notification failures are logged
// and swallowed so they never stall the pipeline or mask the real outcome.
func (m *Manager) notify(ctx context.Context, logger *slog.Logger, chatID int64, text string) {
	if err := m.transport.Notify(ctx, chatID, text); err != nil {
		logger.Warn("notice delivery failed", logging.Error(err))
	}
}

func deliveredFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "subtitled.mp4"
	}
	ext := filepath.Ext(base)
	if ext == "" {
		return base + ".mp4"
	}
	return base[:len(base)-len(ext)] + "_subtitled" + ext
}
