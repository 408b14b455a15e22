// Package segments models timed speech spans produced by transcription and
// the validation rules applied before translation and rendering.
package segments

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTooLong indicates the transcript exceeds the configured duration bound.
var ErrTooLong = errors.New("video exceeds maximum duration")

// Segment is a single timed span of spoken text. Start and End are second
// offsets from the beginning of the media.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// RawSpan is an unvalidated span as reported by a transcription provider.
// Pointer fields distinguish "missing" from zero values.
type RawSpan struct {
	Start *float64
	End   *float64
	Text  string
}

// Normalize filters raw provider spans down to usable segments. A span is
// kept only when both timing fields are present, the trimmed text is
// non-empty, and End is strictly greater than Start. Anything else is dropped
// silently; transcription providers emit garbage spans routinely and a single
// bad span must not fail the job. Ordering and overlap between spans are
// passed through untouched.
func Normalize(spans []RawSpan) []Segment {
	result := make([]Segment, 0, len(spans))
	for _, span := range spans {
		if span.Start == nil || span.End == nil {
			continue
		}
		text := strings.TrimSpace(span.Text)
		if text == "" {
			continue
		}
		if *span.End <= *span.Start || *span.Start < 0 {
			continue
		}
		result = append(result, Segment{Start: *span.Start, End: *span.End, Text: text})
	}
	return result
}

// TotalDuration returns the maximum End across the segments, or zero for an
// empty sequence.
func TotalDuration(segs []Segment) float64 {
	var max float64
	for _, seg := range segs {
		if seg.End > max {
			max = seg.End
		}
	}
	return max
}

// CheckDuration enforces the duration bound as a hard gate: when the
// transcript runs past maxSeconds the whole job is rejected, never truncated.
// A non-positive maxSeconds disables the check.
func CheckDuration(segs []Segment, maxSeconds float64) error {
	if maxSeconds <= 0 {
		return nil
	}
	if total := TotalDuration(segs); total > maxSeconds {
		return fmt.Errorf("%w: %.1fs > %.0fs", ErrTooLong, total, maxSeconds)
	}
	return nil
}

// Texts returns the segment texts in order, for batch translation.
func Texts(segs []Segment) []string {
	texts := make([]string, len(segs))
	for i, seg := range segs {
		texts[i] = seg.Text
	}
	return texts
}

// ApplyTexts replaces each segment's text with the corresponding translation.
// The two slices must be the same length.
func ApplyTexts(segs []Segment, texts []string) error {
	if len(segs) != len(texts) {
		return fmt.Errorf("segment/text count mismatch: %d segments, %d texts", len(segs), len(texts))
	}
	for i := range segs {
		segs[i].Text = texts[i]
	}
	return nil
}
