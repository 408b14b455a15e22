package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// consoleHandler renders records as single human-readable lines:
// timestamp LEVEL message key=value ...
// Level names are colored when the writer is an interactive terminal.
// boundAttr is an attr captured by WithAttrs along with the group prefix
// that was open when it was added.
type boundAttr struct {
	prefix string
	attr   slog.Attr
}

type consoleHandler struct {
	mu     sync.Mutex
	writer io.Writer
	level  *slog.LevelVar
	attrs  []boundAttr
	groups []string
	color  bool
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &consoleHandler{writer: w, level: lvl, color: writerIsTerminal(w)}
}

func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var buf bytes.Buffer
	buf.WriteString(timestamp.Format("2006-01-02 15:04:05"))
	buf.WriteByte(' ')
	buf.WriteString(h.levelLabel(record.Level))
	buf.WriteByte(' ')
	buf.WriteString(record.Message)

	prefix := groupPrefix(h.groups)
	for _, bound := range h.attrs {
		writeAttr(&buf, bound.prefix, bound.attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&buf, prefix, attr)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &consoleHandler{writer: h.writer, level: h.level, color: h.color}
	clone.groups = append(clone.groups, h.groups...)
	clone.attrs = append(clone.attrs, h.attrs...)
	prefix := groupPrefix(h.groups)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, boundAttr{prefix: prefix, attr: attr})
	}
	return clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := &consoleHandler{writer: h.writer, level: h.level, color: h.color}
	clone.attrs = append(clone.attrs, h.attrs...)
	clone.groups = append(clone.groups, h.groups...)
	clone.groups = append(clone.groups, name)
	return clone
}

const (
	ansiReset  = "\x1b[0m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiCyan   = "\x1b[36m"
)

func (h *consoleHandler) levelLabel(level slog.Level) string {
	label := level.String()
	if !h.color {
		return label
	}
	switch {
	case level >= slog.LevelError:
		return ansiRed + label + ansiReset
	case level >= slog.LevelWarn:
		return ansiYellow + label + ansiReset
	case level < slog.LevelInfo:
		return ansiCyan + label + ansiReset
	default:
		return label
	}
}

func groupPrefix(groups []string) string {
	prefix := ""
	for _, g := range groups {
		prefix += g + "."
	}
	return prefix
}

func writeAttr(buf *bytes.Buffer, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		nested := prefix
		if attr.Key != "" {
			nested += attr.Key + "."
		}
		for _, inner := range attr.Value.Group() {
			writeAttr(buf, nested, inner)
		}
		return
	}
	if attr.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(buf, " %s%s=%v", prefix, attr.Key, attr.Value)
}
