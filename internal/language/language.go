// Package language resolves the configured translation target into the code
// expected by the translation provider and the text direction needed by the
// subtitle serializer.
package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Target describes the translation target language.
type Target struct {
	// Tag is the canonical BCP 47 tag.
	Tag language.Tag
	// Code is the identifier sent to the translation provider. Legacy forms
	// from the config ("iw" for Hebrew) are preserved because the Google
	// endpoint still expects them.
	Code string
	// RTL reports whether the language is written right to left.
	RTL bool
}

// Scripts written right to left. Direction comes from the tag's likely
// script, so "he", "iw", "ar" and "fa" all resolve correctly.
var rtlScripts = map[string]struct{}{
	"Adlm": {},
	"Arab": {},
	"Aran": {},
	"Hebr": {},
	"Mand": {},
	"Nkoo": {},
	"Rohg": {},
	"Samr": {},
	"Syrc": {},
	"Thaa": {},
	"Yezi": {},
}

// ParseTarget validates and resolves a target language code from config.
func ParseTarget(code string) (Target, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Target{}, fmt.Errorf("target language required")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Target{}, fmt.Errorf("parse target language %q: %w", code, err)
	}
	script, _ := tag.Script()
	_, rtl := rtlScripts[script.String()]
	return Target{Tag: tag, Code: code, RTL: rtl}, nil
}
