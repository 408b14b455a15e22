package segments_test

import (
	"errors"
	"testing"

	"subburn/internal/segments"
)

func f(v float64) *float64 { return &v }

func TestNormalizeFiltering(t *testing.T) {
	spans := []segments.RawSpan{
		{Start: f(1), End: f(2), Text: "a"},
		{Start: f(3), End: f(2), Text: "b"},    // end before start
		{Start: f(4), End: f(5), Text: "   "},  // whitespace-only text
		{Start: nil, End: f(6), Text: "c"},     // missing start
		{Start: f(6), End: nil, Text: "d"},     // missing end
		{Start: f(7), End: f(7), Text: "e"},    // zero-length span
		{Start: f(-1), End: f(1), Text: "f"},   // negative start
		{Start: f(8), End: f(9), Text: " ok "}, // trimmed
	}
	got := segments.Normalize(spans)
	want := []segments.Segment{
		{Start: 1, End: 2, Text: "a"},
		{Start: 8, End: 9, Text: "ok"},
	}
	if len(got) != len(want) {
		t.Fatalf("Normalize kept %d segments, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNormalizePreservesUnorderedSpans(t *testing.T) {
	spans := []segments.RawSpan{
		{Start: f(5), End: f(6), Text: "later"},
		{Start: f(1), End: f(2), Text: "earlier"},
		{Start: f(1.5), End: f(2.5), Text: "overlapping"},
	}
	got := segments.Normalize(spans)
	if len(got) != 3 {
		t.Fatalf("Normalize dropped overlapping or unordered spans: %+v", got)
	}
	if got[0].Text != "later" || got[1].Text != "earlier" {
		t.Fatalf("Normalize reordered spans: %+v", got)
	}
}

func TestTotalDuration(t *testing.T) {
	if got := segments.TotalDuration(nil); got != 0 {
		t.Fatalf("TotalDuration(nil) = %v, want 0", got)
	}
	segs := []segments.Segment{
		{Start: 0, End: 2.5, Text: "a"},
		{Start: 2.5, End: 310, Text: "b"},
		{Start: 5, End: 9, Text: "c"},
	}
	if got := segments.TotalDuration(segs); got != 310 {
		t.Fatalf("TotalDuration = %v, want 310", got)
	}
}

func TestCheckDuration(t *testing.T) {
	segs := []segments.Segment{{Start: 0, End: 310, Text: "a"}}
	err := segments.CheckDuration(segs, 300)
	if !errors.Is(err, segments.ErrTooLong) {
		t.Fatalf("CheckDuration = %v, want ErrTooLong", err)
	}
	if err := segments.CheckDuration(segs, 310); err != nil {
		t.Fatalf("CheckDuration at exact bound = %v, want nil", err)
	}
	if err := segments.CheckDuration(segs, 0); err != nil {
		t.Fatalf("CheckDuration with disabled bound = %v, want nil", err)
	}
}

func TestApplyTexts(t *testing.T) {
	segs := []segments.Segment{
		{Start: 0, End: 1, Text: "hello"},
		{Start: 1, End: 2, Text: "world"},
	}
	if err := segments.ApplyTexts(segs, []string{"שלום", "עולם"}); err != nil {
		t.Fatalf("ApplyTexts: %v", err)
	}
	if segs[0].Text != "שלום" || segs[1].Text != "עולם" {
		t.Fatalf("ApplyTexts did not replace texts: %+v", segs)
	}
	if err := segments.ApplyTexts(segs, []string{"one"}); err == nil {
		t.Fatal("ApplyTexts accepted mismatched lengths")
	}
}
