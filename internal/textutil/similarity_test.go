package textutil_test

import (
	"math"
	"strings"
	"testing"

	"github.com/AI-Template-SDK/senso-metrics/internal/textutil"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 0,
		},
		{
			name:     "one empty returns other length",
			a:        "",
			b:        "acme",
			expected: 4,
		},
		{
			name:     "identical strings",
			a:        "acme",
			b:        "acme",
			expected: 0,
		},
		{
			name:     "case insensitive",
			a:        "ACME",
			b:        "acme",
			expected: 0,
		},
		{
			name:     "single substitution",
			a:        "acme",
			b:        "acne",
			expected: 1,
		},
		{
			name:     "single insertion",
			a:        "acme",
			b:        "acmee",
			expected: 1,
		},
		{
			name:     "ratio shortcut returns longer length",
			a:        "ab",
			b:        "abcdefgh",
			expected: 8,
		},
		{
			name:     "over length cap returns length difference",
			a:        strings.Repeat("a", 60),
			b:        strings.Repeat("a", 55),
			expected: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textutil.Distance(tt.a, tt.b); got != tt.expected {
				t.Errorf("Distance(%q, %q): expected %d, got %d", tt.a, tt.b, tt.expected, got)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"acme", "acmee"},
		{"quick books", "qwick boks"},
		{"", "brand"},
	}
	for _, pair := range pairs {
		if textutil.Distance(pair[0], pair[1]) != textutil.Distance(pair[1], pair[0]) {
			t.Errorf("Distance not symmetric for %q, %q", pair[0], pair[1])
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "both empty are identical",
			a:        "",
			b:        "",
			expected: 1,
		},
		{
			name:     "identical strings",
			a:        "acme",
			b:        "acme",
			expected: 1,
		},
		{
			name:     "one edit over five chars",
			a:        "acme",
			b:        "acmee",
			expected: 0.8,
		},
		{
			name:     "disjoint short strings",
			a:        "ab",
			b:        "xy",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textutil.Similarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Similarity(%q, %q): expected %v, got %v", tt.a, tt.b, tt.expected, got)
			}
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"acme corp", "acne corp"},
		{strings.Repeat("x", 80), strings.Repeat("y", 80)},
		{"short", strings.Repeat("long", 30)},
	}
	for _, pair := range pairs {
		got := textutil.Similarity(pair[0], pair[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v out of [0,1]", pair[0], pair[1], got)
		}
	}
}
