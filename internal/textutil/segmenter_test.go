package textutil_test

import (
	"testing"

	"github.com/AI-Template-SDK/senso-metrics/internal/textutil"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input yields no sentences",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace only yields no sentences",
			input:    "   \n\t  ",
			expected: nil,
		},
		{
			name:     "single sentence",
			input:    "Acme Corp leads the market.",
			expected: []string{"Acme Corp leads the market"},
		},
		{
			name:     "trailing text without terminator kept",
			input:    "First sentence. Second without period",
			expected: []string{"First sentence", "Second without period"},
		},
		{
			name:  "mixed terminators",
			input: "Is it good? It is great! Everyone agrees.",
			expected: []string{
				"Is it good",
				"It is great",
				"Everyone agrees",
			},
		},
		{
			name:     "consecutive terminators produce no empty sentences",
			input:    "Wait... what?! Really?",
			expected: []string{"Wait", "what", "Really"},
		},
		{
			name:     "newlines trimmed from sentences",
			input:    "Line one.\nLine two.\n",
			expected: []string{"Line one", "Line two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentences := textutil.SplitSentences(tt.input)
			if len(sentences) != len(tt.expected) {
				t.Fatalf("expected %d sentences, got %d: %+v", len(tt.expected), len(sentences), sentences)
			}
			for i, sentence := range sentences {
				if sentence.Text != tt.expected[i] {
					t.Errorf("sentence %d: expected %q, got %q", i, tt.expected[i], sentence.Text)
				}
				if sentence.Position != i {
					t.Errorf("sentence %d: expected position %d, got %d", i, i, sentence.Position)
				}
			}
		})
	}
}

func TestSplitSentencesWordCounts(t *testing.T) {
	sentences := textutil.SplitSentences("One two three. Four five.")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
	if sentences[0].WordCount != 3 {
		t.Errorf("expected first word count 3, got %d", sentences[0].WordCount)
	}
	if sentences[1].WordCount != 2 {
		t.Errorf("expected second word count 2, got %d", sentences[1].WordCount)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "empty string",
			input:    "",
			expected: 0,
		},
		{
			name:     "whitespace only",
			input:    "  \t\n ",
			expected: 0,
		},
		{
			name:     "simple sentence",
			input:    "Acme Corp leads the market.",
			expected: 5,
		},
		{
			name:     "collapsed whitespace",
			input:    "one   two\t\tthree\nfour",
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textutil.CountWords(tt.input); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
