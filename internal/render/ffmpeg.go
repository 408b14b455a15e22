// Package render drives ffmpeg for the two media transformations in the
// pipeline: extracting a transcription-friendly audio stream and re-encoding
// the video with the subtitle track burned in.
package render

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// FFmpegCommand is the default binary name resolved from PATH.
const FFmpegCommand = "ffmpeg"

// Invoker runs ffmpeg with a fixed encode profile: libx264 veryfast at a
// constant quality target, audio passed through untouched.
type Invoker struct {
	binary        string
	fontsDir      string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewInvoker creates an Invoker. An empty binary falls back to "ffmpeg";
// fontsDir may be empty when subtitle fonts resolve from the system.
func NewInvoker(binary, fontsDir string) *Invoker {
	if binary == "" {
		binary = FFmpegCommand
	}
	return &Invoker{binary: binary, fontsDir: fontsDir}
}

// WithCommandRunner sets a custom command runner (for testing).
func (i *Invoker) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	i.commandRunner = runner
}

// BurnSubtitles re-encodes the input video with the subtitle track rendered
// into the pixel data. A non-zero ffmpeg exit is a hard failure; there is no
// retry at this layer.
func (i *Invoker) BurnSubtitles(ctx context.Context, inputPath, trackPath, outputPath string) error {
	filter := fmt.Sprintf("ass='%s'", escapeFilterPath(trackPath))
	if i.fontsDir != "" {
		filter = fmt.Sprintf("ass='%s':fontsdir='%s'", escapeFilterPath(trackPath), escapeFilterPath(i.fontsDir))
	}
	args := []string{
		"-y",
		"-nostdin",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vf", filter,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-c:a", "copy",
		outputPath,
	}
	if err := i.run(ctx, args...); err != nil {
		return fmt.Errorf("burn subtitles: %w", err)
	}
	return nil
}

// ExtractAudio pulls the first audio stream into a mono 16kHz WAV file, the
// format transcription providers handle best. Keeping uploads audio-only also
// stays well under provider size limits for bounded-duration clips.
func (i *Invoker) ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y",
		"-nostdin",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		outputPath,
	}
	if err := i.run(ctx, args...); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	return nil
}

func (i *Invoker) run(ctx context.Context, args ...string) error {
	if i.commandRunner != nil {
		return i.commandRunner(ctx, i.binary, args...)
	}
	cmd := exec.CommandContext(ctx, i.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", i.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// escapeFilterPath quotes characters that carry meaning inside an ffmpeg
// filter argument. Single quotes and colons appear in ordinary temp paths on
// some platforms and would otherwise terminate the filter option.
func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)
	return replacer.Replace(path)
}
