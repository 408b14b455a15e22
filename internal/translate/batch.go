// Package translate implements order-preserving batch translation with a
// per-item fallback when the provider does not keep the join delimiter
// intact.
package translate

import (
	"context"
	"fmt"
	"strings"
)

// Translator is the provider contract: translate one text into the target
// language configured on the provider.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Delimiter separates batched texts inside a single provider round trip. The
// token sits on its own line so translation engines treat it as a standalone
// sentence and echo it back verbatim. When they do not, the alignment check
// catches the damage and the batch falls back to per-item calls.
const Delimiter = "\n<<<SPLIT>>> \n"

// Batch translates texts through a Translator while guaranteeing the output
// has the same length and order as the input.
type Batch struct {
	provider Translator
}

// NewBatch wraps a provider in batch semantics.
func NewBatch(provider Translator) *Batch {
	return &Batch{provider: provider}
}

// TranslateAll translates the texts in order. The fast path joins everything
// into one provider call; if splitting the response yields a different count
// than the input, the batch result is discarded and each text is translated
// individually. An empty input returns an empty output without touching the
// provider.
func (b *Batch) TranslateAll(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}

	joined := strings.Join(texts, Delimiter)
	translated, err := b.provider.Translate(ctx, joined)
	if err == nil {
		parts := strings.Split(translated, Delimiter)
		if len(parts) == len(texts) {
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts, nil
		}
	}

	return b.translateEach(ctx, texts)
}

func (b *Batch) translateEach(ctx context.Context, texts []string) ([]string, error) {
	result := make([]string, len(texts))
	for i, text := range texts {
		translated, err := b.provider.Translate(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("translate item %d: %w", i, err)
		}
		result[i] = strings.TrimSpace(translated)
	}
	return result, nil
}
