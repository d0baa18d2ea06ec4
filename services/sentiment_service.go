// services/sentiment_service.go
package services

import (
	"math"
	"strings"

	"github.com/AI-Template-SDK/senso-metrics/internal/config"
	"github.com/AI-Template-SDK/senso-metrics/internal/models"
)

type sentimentService struct {
	cfg *config.Config
}

func NewSentimentService(cfg *config.Config) SentimentService {
	return &sentimentService{cfg: cfg}
}

// Score classifies each sentence already attributed to the brand as
// positive, negative, or neutral by keyword counting, and reduces the tally
// to a score in [-100, 100]. A brand with no attributed sentences scores all
// zeros.
func (s *sentimentService) Score(record *models.BrandMentionRecord, response string) models.SentimentResult {
	if record == nil || len(record.Sentences) == 0 {
		return models.SentimentResult{}
	}

	var result models.SentimentResult
	for _, sentence := range record.Sentences {
		positive := countKeywords(sentence.Text, s.cfg.Sentiment.PositiveKeywords)
		negative := countKeywords(sentence.Text, s.cfg.Sentiment.NegativeKeywords)

		switch {
		case positive > negative:
			result.PositiveMentions++
		case negative > positive:
			result.NegativeMentions++
		default:
			result.NeutralMentions++
		}
	}

	total := float64(len(record.Sentences))
	score := float64(result.PositiveMentions-result.NegativeMentions) / total * 100
	result.SentimentScore = math.Round(score*100) / 100

	return result
}

// countKeywords counts whole-token keyword occurrences in a sentence.
func countKeywords(sentence string, keywords []string) int {
	tokens := normalizeTokens(sentence)
	count := 0
	for _, token := range tokens {
		for _, keyword := range keywords {
			if token == strings.ToLower(keyword) {
				count++
				break
			}
		}
	}
	return count
}
