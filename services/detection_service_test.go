package services_test

import (
	"math"
	"testing"

	"github.com/AI-Template-SDK/senso-metrics/internal/config"
	"github.com/AI-Template-SDK/senso-metrics/internal/models"
	"github.com/AI-Template-SDK/senso-metrics/services"
)

func newDetection(t *testing.T) services.DetectionService {
	t.Helper()
	return services.NewDetectionService(config.Load())
}

func TestDetectCascade(t *testing.T) {
	tests := []struct {
		name       string
		sentence   string
		brand      string
		detected   bool
		confidence float64
		method     models.DetectionMethod
	}{
		{
			name:       "exact whole-word match",
			sentence:   "Acme Corp is the best choice for small teams",
			brand:      "Acme Corp",
			detected:   true,
			confidence: 1.0,
			method:     models.MethodExact,
		},
		{
			name:       "exact match is case insensitive",
			sentence:   "everyone recommends ACME CORP these days",
			brand:      "Acme Corp",
			detected:   true,
			confidence: 1.0,
			method:     models.MethodExact,
		},
		{
			name:       "initials abbreviation",
			sentence:   "IBM offers a robust cloud platform",
			brand:      "International Business Machines",
			detected:   true,
			confidence: 0.9,
			method:     models.MethodAbbreviation,
		},
		{
			name:       "partial multi-word with close span",
			sentence:   "The cloud suite offers analytics and pro support",
			brand:      "Cloud Analytics Pro",
			detected:   true,
			confidence: 0.85,
			method:     models.MethodPartial,
		},
		{
			name:       "partial multi-word with wide span",
			sentence:   "Cloud products dominate today because every vendor ships something and the analytics market keeps growing while pro users wait",
			brand:      "Cloud Analytics Pro",
			detected:   true,
			confidence: 0.7,
			method:     models.MethodPartialDistant,
		},
		{
			name:       "fuzzy single token",
			sentence:   "Acmee is a great product",
			brand:      "Acme",
			detected:   true,
			confidence: 0.72,
			method:     models.MethodFuzzy,
		},
		{
			name:       "fuzzy adjacent token pair",
			sentence:   "Qwick Boks accounting saves time",
			brand:      "Quick Books",
			detected:   true,
			confidence: (1 - 2.0/11.0) * 0.9,
			method:     models.MethodFuzzyPhrase,
		},
		{
			name:       "function word swap variation",
			sentence:   "Get started with Tools of You today",
			brand:      "Tools for You",
			detected:   true,
			confidence: 0.8,
			method:     models.MethodVariation,
		},
		{
			name:     "no mention",
			sentence: "Nothing relevant appears in this sentence",
			brand:    "Acme Corp",
			detected: false,
		},
		{
			name:     "substring inside a longer word is not exact",
			sentence: "The acmeist movement was poetic",
			brand:    "Acme",
			detected: false,
		},
		{
			name:     "empty sentence",
			sentence: "",
			brand:    "Acme Corp",
			detected: false,
		},
		{
			name:     "empty brand",
			sentence: "Acme Corp is great",
			brand:    "",
			detected: false,
		},
	}

	svc := newDetection(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Detect(tt.sentence, tt.brand)
			if result.Detected != tt.detected {
				t.Fatalf("expected detected=%v, got %v (method %q)", tt.detected, result.Detected, result.Method)
			}
			if !tt.detected {
				if result.Confidence != 0 || result.Method != "" {
					t.Errorf("undetected result carries confidence %v method %q", result.Confidence, result.Method)
				}
				return
			}
			if result.Method != tt.method {
				t.Errorf("expected method %q, got %q", tt.method, result.Method)
			}
			if math.Abs(result.Confidence-tt.confidence) > 1e-9 {
				t.Errorf("expected confidence %v, got %v", tt.confidence, result.Confidence)
			}
		})
	}
}

func TestDetectExactWinsOverOtherStrategies(t *testing.T) {
	svc := newDetection(t)

	// The sentence would also satisfy the abbreviation and partial strategies,
	// but the exact phrase is present so confidence must be 1.0.
	result := svc.Detect("International Business Machines, or IBM, leads the market", "International Business Machines")
	if !result.Detected {
		t.Fatal("expected detection")
	}
	if result.Method != models.MethodExact || result.Confidence != 1.0 {
		t.Errorf("expected exact/1.0, got %q/%v", result.Method, result.Confidence)
	}
}

func TestDetectRegexUnsafeBrand(t *testing.T) {
	svc := newDetection(t)

	result := svc.Detect("We chose Acme (EU) last year", "Acme (EU)")
	if !result.Detected || result.Method != models.MethodExact {
		t.Errorf("expected exact match for parenthesized brand, got %+v", result)
	}
}

func TestDetectFuzzyCostGuards(t *testing.T) {
	svc := newDetection(t)

	longBrand := "An Extremely Long Brand Name Well Over The Cap"
	if result := svc.Detect("An Extremli Long Brand", longBrand); result.Method == models.MethodFuzzy {
		t.Errorf("fuzzy must not run for brands over the length cap, got %+v", result)
	}

	// A near-miss past the first five tokens is out of fuzzy range.
	result := svc.Detect("one two three four five Acmee shipped", "Acme")
	if result.Detected {
		t.Errorf("expected no detection beyond the leading-token window, got %+v", result)
	}
}

func TestDetectDeterministic(t *testing.T) {
	svc := newDetection(t)

	first := svc.Detect("Acmee is a great product", "Acme")
	for i := 0; i < 10; i++ {
		again := svc.Detect("Acmee is a great product", "Acme")
		if again != first {
			t.Fatalf("detection diverged on repeat call: %+v vs %+v", first, again)
		}
	}
}

func TestNameVariations(t *testing.T) {
	svc := newDetection(t)

	tests := []struct {
		name     string
		brand    string
		contains []string
	}{
		{
			name:     "initials for multi-word brand",
			brand:    "International Business Machines",
			contains: []string{"ibm"},
		},
		{
			name:     "concatenation for two-word brand",
			brand:    "Quick Books",
			contains: []string{"qb", "quickbooks"},
		},
		{
			name:     "function word swap",
			brand:    "Tools for You",
			contains: []string{"tools of you"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variations := svc.NameVariations(tt.brand)
			got := make(map[string]bool, len(variations))
			for _, v := range variations {
				got[v] = true
			}
			for _, want := range tt.contains {
				if !got[want] {
					t.Errorf("expected variations of %q to contain %q, got %v", tt.brand, want, variations)
				}
			}
		})
	}

	if variations := svc.NameVariations("  "); variations != nil {
		t.Errorf("expected nil for blank brand, got %v", variations)
	}
}
