// internal/config/config.go
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// DetectionConfig holds the brand-detection calibration constants. The
// defaults are empirically chosen product-tuning values, not derived numbers;
// keep them overridable rather than recomputing them.
type DetectionConfig struct {
	FuzzyThreshold      float64 // minimum similarity for a fuzzy match
	FuzzyMaxBrandLen    int     // fuzzy matching skipped for longer brand names
	FuzzyMaxSentenceLen int     // fuzzy matching skipped for longer sentences
	FuzzyMaxTokens      int     // single tokens scanned per sentence
	FuzzyMaxPairs       int     // adjacent token pairs scanned per sentence
	PartialSpanTokens   int     // token span beyond which partial confidence drops
	VariationMinLen     int     // variation matching only for longer brand names
}

// SentimentConfig holds the keyword tables for coarse polarity scoring.
type SentimentConfig struct {
	PositiveKeywords []string
	NegativeKeywords []string
}

type Config struct {
	Environment   string
	Workers       int // extraction fan-out; defaults to available CPU cores
	Detection     DetectionConfig
	Sentiment     SentimentConfig
	SocialDomains []string // known social platforms for citation classification
}

var defaultPositiveKeywords = []string{
	"best", "excellent", "great", "leading", "top", "recommended", "trusted",
	"reliable", "innovative", "outstanding", "popular", "powerful", "seamless",
	"robust", "affordable", "favorite", "superior", "impressive", "love", "easy",
}

var defaultNegativeKeywords = []string{
	"worst", "poor", "bad", "unreliable", "expensive", "difficult", "slow",
	"limited", "problem", "issue", "complaint", "lawsuit", "outage", "scandal",
	"weak", "clunky", "confusing", "overpriced", "frustrating", "avoid",
}

var defaultSocialDomains = []string{
	"facebook.com", "twitter.com", "x.com", "linkedin.com", "instagram.com",
	"youtube.com", "reddit.com", "tiktok.com", "pinterest.com", "medium.com",
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Workers:     getEnvInt("METRICS_WORKERS", runtime.NumCPU()),
		Detection: DetectionConfig{
			FuzzyThreshold:      getEnvFloat("METRICS_FUZZY_THRESHOLD", 0.7),
			FuzzyMaxBrandLen:    getEnvInt("METRICS_FUZZY_MAX_BRAND_LEN", 30),
			FuzzyMaxSentenceLen: getEnvInt("METRICS_FUZZY_MAX_SENTENCE_LEN", 200),
			FuzzyMaxTokens:      getEnvInt("METRICS_FUZZY_MAX_TOKENS", 5),
			FuzzyMaxPairs:       getEnvInt("METRICS_FUZZY_MAX_PAIRS", 3),
			PartialSpanTokens:   getEnvInt("METRICS_PARTIAL_SPAN_TOKENS", 10),
			VariationMinLen:     getEnvInt("METRICS_VARIATION_MIN_LEN", 10),
		},
		Sentiment: SentimentConfig{
			PositiveKeywords: getEnvList("METRICS_POSITIVE_KEYWORDS", defaultPositiveKeywords),
			NegativeKeywords: getEnvList("METRICS_NEGATIVE_KEYWORDS", defaultNegativeKeywords),
		},
		SocialDomains: getEnvList("METRICS_SOCIAL_DOMAINS", defaultSocialDomains),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
