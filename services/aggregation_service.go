// services/aggregation_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/AI-Template-SDK/senso-metrics/internal/config"
	"github.com/AI-Template-SDK/senso-metrics/internal/models"
)

type aggregationService struct {
	cfg *config.Config
}

func NewAggregationService(cfg *config.Config) AggregationService {
	return &aggregationService{cfg: cfg}
}

// brandAccumulator collects one brand's raw tallies across the scoped
// extractions before metrics are derived.
type brandAccumulator struct {
	mentionedResponses int
	totalMentions      int
	firstPositionSum   int
	depthSum           float64
	citationCount      int
	positive           int
	negative           int
	neutral            int
	brandSentences     int
	distribution       models.PositionDistribution
}

// Aggregate reduces the scoped extractions into ranked per-brand metrics.
// Rank assignment needs the complete view of all brands, so this runs as a
// single-threaded reduction; independent scopes may be aggregated
// concurrently by the caller. The previous-window aggregate supplies the
// rank-change baseline; a missing baseline yields no rank change, not zero.
func (s *aggregationService) Aggregate(ctx context.Context, extractions []*models.ExtractionResult, scope models.Scope, dateRange models.DateRange, previous []*models.AggregatedBrandMetrics) ([]*models.AggregatedBrandMetrics, error) {
	switch scope.Type {
	case models.ScopeOverall, models.ScopePlatform, models.ScopeTopic, models.ScopePersona, models.ScopePrompt:
	default:
		return nil, fmt.Errorf("unknown scope type: %q", scope.Type)
	}

	scoped := filterScope(extractions, scope, dateRange)
	fmt.Printf("[Aggregate] Scope %s/%s: %d of %d extractions in window\n",
		scope.Type, scope.Value, len(scoped), len(extractions))

	// First-seen brand order is the stable tie-break for every ranking.
	var order []string
	accumulators := make(map[string]*brandAccumulator)
	for _, extraction := range scoped {
		for _, record := range extraction.BrandMetrics {
			if _, ok := accumulators[record.BrandName]; !ok {
				accumulators[record.BrandName] = &brandAccumulator{}
				order = append(order, record.BrandName)
			}
		}
	}

	totalResponses := len(scoped)
	totalCitations := 0
	totalMentions := 0

	for _, extraction := range scoped {
		type placed struct {
			name     string
			position int
		}
		var mentioned []placed

		for _, record := range extraction.BrandMetrics {
			acc := accumulators[record.BrandName]
			acc.totalMentions += record.MentionCount
			acc.citationCount += record.CitationCount
			acc.positive += record.Sentiment.PositiveMentions
			acc.negative += record.Sentiment.NegativeMentions
			acc.neutral += record.Sentiment.NeutralMentions
			acc.brandSentences += len(record.Sentences)
			totalMentions += record.MentionCount
			totalCitations += record.CitationCount

			if record.Mentioned && record.FirstPosition != nil {
				acc.mentionedResponses++
				acc.firstPositionSum += *record.FirstPosition
				acc.depthSum += record.DepthOfMention
				mentioned = append(mentioned, placed{name: record.BrandName, position: *record.FirstPosition})
			}
		}

		sort.SliceStable(mentioned, func(i, j int) bool {
			return mentioned[i].position < mentioned[j].position
		})
		for i, entry := range mentioned {
			acc := accumulators[entry.name]
			switch i {
			case 0:
				acc.distribution.First++
			case 1:
				acc.distribution.Second++
			default:
				acc.distribution.ThirdPlus++
			}
		}
	}

	n := len(order)
	visibility := make([]float64, n)
	citationShare := make([]float64, n)
	avgPosition := make([]float64, n)
	depth := make([]float64, n)
	sentiment := make([]float64, n)
	shareOfVoice := make([]float64, n)

	for i, name := range order {
		acc := accumulators[name]
		visibility[i] = round2(ratio(float64(acc.mentionedResponses), float64(totalResponses)) * 100)
		citationShare[i] = round2(ratio(float64(acc.citationCount), float64(totalCitations)) * 100)
		avgPosition[i] = round2(ratio(float64(acc.firstPositionSum), float64(acc.mentionedResponses)))
		depth[i] = round4(ratio(acc.depthSum, float64(acc.mentionedResponses)))
		sentiment[i] = round2(ratio(float64(acc.positive-acc.negative), float64(acc.brandSentences)) * 100)
		shareOfVoice[i] = round2(ratio(float64(acc.totalMentions), float64(totalMentions)) * 100)
	}

	visibilityRanks := assignRanks(visibility, false)
	citationRanks := assignRanks(citationShare, false)
	positionRanks := assignRanks(avgPosition, true)
	depthRanks := assignRanks(depth, false)
	sentimentRanks := assignRanks(sentiment, false)
	sovRanks := assignRanks(shareOfVoice, false)

	baseline := make(map[string]*models.AggregatedBrandMetrics, len(previous))
	for _, prev := range previous {
		baseline[prev.BrandName] = prev
	}

	results := make([]*models.AggregatedBrandMetrics, 0, n)
	for i, name := range order {
		acc := accumulators[name]
		prev := baseline[name]

		metrics := &models.AggregatedBrandMetrics{
			BrandName:          name,
			Scope:              scope,
			DateRange:          dateRange,
			ResponseCount:      totalResponses,
			MentionedResponses: acc.mentionedResponses,
			TotalMentions:      acc.totalMentions,
			Visibility:         rankedMetric(visibility[i], visibilityRanks[i], prevRank(prev, metricVisibility)),
			CitationShare:      rankedMetric(citationShare[i], citationRanks[i], prevRank(prev, metricCitationShare)),
			AveragePosition:    rankedMetric(avgPosition[i], positionRanks[i], prevRank(prev, metricAveragePosition)),
			DepthOfMention:     rankedMetric(depth[i], depthRanks[i], prevRank(prev, metricDepth)),
			SentimentScore:     rankedMetric(sentiment[i], sentimentRanks[i], prevRank(prev, metricSentiment)),
			ShareOfVoice:       rankedMetric(shareOfVoice[i], sovRanks[i], prevRank(prev, metricShareOfVoice)),
			SentimentBreakdown: models.SentimentBreakdown{
				Positive: acc.positive,
				Negative: acc.negative,
				Neutral:  acc.neutral,
			},
			PositionDistribution: acc.distribution,
		}
		results = append(results, metrics)
	}

	return results, nil
}

// GenerateInsights produces human-readable summary lines from one
// aggregation's output.
func (s *aggregationService) GenerateInsights(metrics []*models.AggregatedBrandMetrics) []string {
	if len(metrics) == 0 {
		return []string{"No brand metrics available for this scope"}
	}

	var insights []string
	insights = append(insights, fmt.Sprintf("Analyzed %d responses across %d brands",
		metrics[0].ResponseCount, len(metrics)))

	for _, m := range metrics {
		if m.Visibility.Rank == 1 {
			insights = append(insights, fmt.Sprintf("%s leads visibility at %.1f%% of responses",
				m.BrandName, m.Visibility.Value))
			break
		}
	}

	var bestMover *models.AggregatedBrandMetrics
	for _, m := range metrics {
		if m.Visibility.RankChange == nil || *m.Visibility.RankChange >= 0 {
			continue
		}
		if bestMover == nil || *m.Visibility.RankChange < *bestMover.Visibility.RankChange {
			bestMover = m
		}
	}
	if bestMover != nil {
		insights = append(insights, fmt.Sprintf("%s climbed %d visibility rank(s) since the previous period",
			bestMover.BrandName, -*bestMover.Visibility.RankChange))
	}

	for _, m := range metrics {
		if m.CitationShare.Rank == 1 && m.CitationShare.Value > 0 {
			insights = append(insights, fmt.Sprintf("%s holds the largest citation share at %.1f%%",
				m.BrandName, m.CitationShare.Value))
			break
		}
	}

	return insights
}

type metricKind int

const (
	metricVisibility metricKind = iota
	metricCitationShare
	metricAveragePosition
	metricDepth
	metricSentiment
	metricShareOfVoice
)

func prevRank(prev *models.AggregatedBrandMetrics, kind metricKind) *int {
	if prev == nil {
		return nil
	}
	var rank int
	switch kind {
	case metricVisibility:
		rank = prev.Visibility.Rank
	case metricCitationShare:
		rank = prev.CitationShare.Rank
	case metricAveragePosition:
		rank = prev.AveragePosition.Rank
	case metricDepth:
		rank = prev.DepthOfMention.Rank
	case metricSentiment:
		rank = prev.SentimentScore.Rank
	case metricShareOfVoice:
		rank = prev.ShareOfVoice.Rank
	}
	return &rank
}

// rankedMetric pairs a value with its rank; rank change is current minus
// previous rank, nil without a baseline.
func rankedMetric(value float64, rank int, previousRank *int) models.RankedMetric {
	metric := models.RankedMetric{Value: value, Rank: rank}
	if previousRank != nil {
		change := rank - *previousRank
		metric.RankChange = &change
	}
	return metric
}

// assignRanks produces a dense 1..N permutation for one metric. Descending
// is better except for average position; ties keep first-seen input order.
// An average position of zero means "never mentioned" and always ranks last.
func assignRanks(values []float64, ascending bool) []int {
	indices := make([]int, len(values))
	for i := range indices {
		indices[i] = i
	}

	sort.SliceStable(indices, func(a, b int) bool {
		va, vb := values[indices[a]], values[indices[b]]
		if ascending {
			if va == 0 {
				va = math.MaxFloat64
			}
			if vb == 0 {
				vb = math.MaxFloat64
			}
			return va < vb
		}
		return va > vb
	})

	ranks := make([]int, len(values))
	for position, index := range indices {
		ranks[index] = position + 1
	}
	return ranks
}

func filterScope(extractions []*models.ExtractionResult, scope models.Scope, dateRange models.DateRange) []*models.ExtractionResult {
	var scoped []*models.ExtractionResult
	for _, extraction := range extractions {
		if !scopeMatches(extraction, scope) {
			continue
		}
		if !dateRange.From.IsZero() && extraction.ResponseDate.Before(dateRange.From) {
			continue
		}
		if !dateRange.To.IsZero() && !extraction.ResponseDate.Before(dateRange.To) {
			continue
		}
		scoped = append(scoped, extraction)
	}
	return scoped
}

func scopeMatches(extraction *models.ExtractionResult, scope models.Scope) bool {
	switch scope.Type {
	case models.ScopePlatform:
		return extraction.Platform == scope.Value
	case models.ScopeTopic:
		return extraction.Topic == scope.Value
	case models.ScopePersona:
		return extraction.Persona == scope.Value
	case models.ScopePrompt:
		return extraction.PromptID == scope.Value
	default:
		return true
	}
}

// ratio guards division by zero, returning 0 instead of NaN or Inf.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
