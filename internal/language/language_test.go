package language_test

import (
	"testing"

	"subburn/internal/language"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		code    string
		wantRTL bool
	}{
		{"iw", true}, // legacy Hebrew code used by the translate endpoint
		{"he", true},
		{"ar", true},
		{"fa", true},
		{"en", false},
		{"es", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			target, err := language.ParseTarget(tt.code)
			if err != nil {
				t.Fatalf("ParseTarget(%q): %v", tt.code, err)
			}
			if target.RTL != tt.wantRTL {
				t.Fatalf("ParseTarget(%q).RTL = %v, want %v", tt.code, target.RTL, tt.wantRTL)
			}
			if target.Code != tt.code {
				t.Fatalf("ParseTarget(%q).Code = %q, want configured code preserved", tt.code, target.Code)
			}
		})
	}
}

func TestParseTargetRejectsGarbage(t *testing.T) {
	for _, code := range []string{"", "   ", "not-a-language-tag!"} {
		if _, err := language.ParseTarget(code); err == nil {
			t.Fatalf("ParseTarget(%q) succeeded, want error", code)
		}
	}
}
