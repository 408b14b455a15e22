// Package timecode converts between floating-point second offsets and the
// H:MM:SS.cc representation used by ASS subtitle events.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a second offset as an ASS timestamp (H:MM:SS.cc). Hours are
// not zero padded; minutes and seconds are. The centisecond component is
// truncated, not rounded, so a cue never starts ahead of its source time.
// Negative inputs clamp to zero.
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	h := whole / 3600
	m := (whole % 3600) / 60
	s := whole % 60
	// The epsilon counters binary float representation error (0.99 stored as
	// 0.98999...) without changing the truncation semantics.
	cs := int((seconds-float64(whole))*100 + 1e-6)
	if cs > 99 {
		cs = 99
	}
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// Parse converts an ASS timestamp back into seconds. It accepts the output of
// Format as well as zero-padded hour fields.
func Parse(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(parts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	centis, errC := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || errS != nil || errC != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || centis < 0 || centis > 99 {
		return 0, fmt.Errorf("timestamp field out of range %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(centis)/100, nil
}
