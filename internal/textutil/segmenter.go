// internal/textutil/segmenter.go
package textutil

import (
	"strings"

	"github.com/AI-Template-SDK/senso-metrics/internal/models"
)

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// SplitSentences splits a response into sentences on terminal punctuation.
// Empty and whitespace-only fragments are dropped; positions are 0-indexed
// over the kept sentences. Pure function: identical input always yields
// identical output.
func SplitSentences(text string) []models.Sentence {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []models.Sentence
	var current strings.Builder

	flush := func() {
		trimmed := strings.TrimSpace(current.String())
		current.Reset()
		if trimmed == "" {
			return
		}
		sentences = append(sentences, models.Sentence{
			Text:      trimmed,
			Position:  len(sentences),
			WordCount: CountWords(trimmed),
		})
	}

	for _, r := range text {
		if isTerminator(r) {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return sentences
}

// CountWords counts whitespace-delimited tokens. Empty input counts zero.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
