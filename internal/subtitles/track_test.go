package subtitles_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"subburn/internal/segments"
	"subburn/internal/subtitles"
)

var sampleSegments = []segments.Segment{
	{Start: 0, End: 2.5, Text: "שלום"},
	{Start: 2.5, End: 5.0, Text: "עולם"},
}

func TestWriteTrackLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := subtitles.WriteTrack(&buf, sampleSegments, subtitles.Options{RTL: true}); err != nil {
		t.Fatalf("WriteTrack: %v", err)
	}
	doc := buf.String()

	for _, want := range []string{
		"[Script Info]\n",
		"PlayResX: 1280\n",
		"PlayResY: 720\n",
		"[V4+ Styles]\n",
		"Style: Default,NotoSansHebrew,42,&H00FFFFFF,",
		"[Events]\n",
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n",
		`Dialogue: 0,0:00:00.00,0:00:02.50,Default,,0,0,0,,{\rtl}שלום` + "\n",
		`Dialogue: 0,0:00:02.50,0:00:05.00,Default,,0,0,0,,{\rtl}עולם` + "\n",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}

	if got := strings.Count(doc, "Dialogue:"); got != 2 {
		t.Fatalf("document has %d dialogue lines, want 2", got)
	}
}

func TestWriteTrackEscapesNewlinesAndHonorsLTR(t *testing.T) {
	var buf bytes.Buffer
	segs := []segments.Segment{{Start: 0, End: 1, Text: "line one\nline two"}}
	if err := subtitles.WriteTrack(&buf, segs, subtitles.Options{RTL: false}); err != nil {
		t.Fatalf("WriteTrack: %v", err)
	}
	doc := buf.String()
	if !strings.Contains(doc, `line one\Nline two`) {
		t.Fatalf("newline not escaped:\n%s", doc)
	}
	if strings.Contains(doc, `{\rtl}`) {
		t.Fatalf("direction override emitted for LTR track:\n%s", doc)
	}
}

func TestWriteTrackPreservesInputOrder(t *testing.T) {
	var buf bytes.Buffer
	segs := []segments.Segment{
		{Start: 5, End: 6, Text: "second in file"},
		{Start: 0, End: 1, Text: "first in file"},
	}
	if err := subtitles.WriteTrack(&buf, segs, subtitles.Options{}); err != nil {
		t.Fatalf("WriteTrack: %v", err)
	}
	doc := buf.String()
	if strings.Index(doc, "second in file") > strings.Index(doc, "first in file") {
		t.Fatalf("serializer reordered segments:\n%s", doc)
	}
}

func TestWriteTrackDeterminism(t *testing.T) {
	var a, b bytes.Buffer
	opts := subtitles.Options{FontName: "TestFont", RTL: true}
	if err := subtitles.WriteTrack(&a, sampleSegments, opts); err != nil {
		t.Fatalf("WriteTrack: %v", err)
	}
	if err := subtitles.WriteTrack(&b, sampleSegments, opts); err != nil {
		t.Fatalf("WriteTrack: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("two serialization runs differ")
	}
}

func TestCreateTrackFile(t *testing.T) {
	dir := t.TempDir()
	path, err := subtitles.CreateTrackFile(dir, sampleSegments, subtitles.Options{RTL: true})
	if err != nil {
		t.Fatalf("CreateTrackFile: %v", err)
	}
	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, ".ass") {
		t.Fatalf("unexpected track path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read track: %v", err)
	}
	var buf bytes.Buffer
	if err := subtitles.WriteTrack(&buf, sampleSegments, subtitles.Options{RTL: true}); err != nil {
		t.Fatalf("WriteTrack: %v", err)
	}
	if !bytes.Equal(data, buf.Bytes()) {
		t.Fatal("file contents differ from direct serialization")
	}
}
