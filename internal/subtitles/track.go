package subtitles

import (
	"fmt"
	"io"
	"os"
	"strings"

	"subburn/internal/segments"
	"subburn/internal/timecode"
)

// Options controls the single visual style emitted in the track header and
// the text shaping applied to every event line.
type Options struct {
	// FontName names the font referenced by the Default style. The render
	// stage points ffmpeg at a fonts directory so the name resolves even when
	// the font is not installed system-wide.
	FontName string
	// RTL forces a right-to-left directional override on every event line.
	// No per-line language detection happens; the target language decides.
	RTL bool
}

// DefaultFontName is used when no font is configured.
const DefaultFontName = "NotoSansHebrew"

const styleFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, " +
	"BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, " +
	"BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"

// WriteTrack serializes the segments as a complete ASS document: script
// metadata, one Default style (white 42pt, outline 3 shadow 1, bottom-center
// anchor), then one Dialogue line per segment in input order. The caller is
// responsible for segment ordering; nothing is sorted here.
func WriteTrack(w io.Writer, segs []segments.Segment, opts Options) error {
	fontName := strings.TrimSpace(opts.FontName)
	if fontName == "" {
		fontName = DefaultFontName
	}

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	b.WriteString("PlayResX: 1280\n")
	b.WriteString("PlayResY: 720\n")
	b.WriteString("WrapStyle: 0\n")
	b.WriteString("ScaledBorderAndShadow: yes\n\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString(styleFormat + "\n")
	// Alignment 2 = bottom center. Outline 3, shadow 1.
	fmt.Fprintf(&b, "Style: Default,%s,42,&H00FFFFFF,&H000000FF,&H00000000,&H64000000,"+
		"0,0,0,0,100,100,0,0,1,3,1,2,20,20,35,1\n\n", fontName)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, seg := range segs {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			timecode.Format(seg.Start),
			timecode.Format(seg.End),
			shapeText(seg.Text, opts.RTL),
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CreateTrackFile writes the serialized track to a uniquely named .ass file
// in dir (or the system temp directory when dir is empty) and returns its
// path. Ownership of the file transfers to the caller; it is never deleted
// here.
func CreateTrackFile(dir string, segs []segments.Segment, opts Options) (string, error) {
	file, err := os.CreateTemp(dir, "subtitles-*.ass")
	if err != nil {
		return "", fmt.Errorf("create subtitle track: %w", err)
	}
	if err := WriteTrack(file, segs, opts); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("write subtitle track: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("close subtitle track: %w", err)
	}
	return file.Name(), nil
}

// shapeText prepares segment text for an event line: literal newlines become
// the ASS line-break token, and RTL text gets an unconditional direction
// override so punctuation does not flip to the wrong edge.
func shapeText(text string, rtl bool) string {
	shaped := strings.ReplaceAll(text, "\n", `\N`)
	if rtl {
		shaped = `{\rtl}` + shaped
	}
	return shaped
}
