// services/interfaces.go
package services

import (
	"context"
	"time"

	"github.com/AI-Template-SDK/senso-metrics/internal/models"
	"github.com/google/uuid"
)

// DetectionService decides whether and how confidently a brand is mentioned
// in a sentence. Strategies run in fixed priority order; the first that fires
// wins.
type DetectionService interface {
	Detect(sentence, brandName string) models.BrandDetectionResult
	// NameVariations returns the abbreviation and variation candidates the
	// detector would accept for a brand, mainly for caller-side debugging.
	NameVariations(brandName string) []string
}

// CitationService extracts and classifies hyperlink citations from a
// response.
type CitationService interface {
	ExtractCitations(response string, tables models.CitationTables) []models.Citation
	FilterRelevant(citations []models.Citation) []models.Citation
	// CountBrandCitations counts hyperlinks attributable to the brand by
	// anchor text or URL, independent of domain classification.
	CountBrandCitations(response, brandName string) int
}

// SentimentService assigns coarse polarity to the sentences already
// attributed to a brand.
type SentimentService interface {
	Score(record *models.BrandMentionRecord, response string) models.SentimentResult
}

// ExtractionInput is everything the caller supplies to analyze one response.
// ResponseID, the scope dimensions, and ResponseDate come from the
// surrounding system; extraction itself generates nothing non-deterministic.
type ExtractionInput struct {
	ResponseID   uuid.UUID             `json:"response_id"`
	Response     string                `json:"response"`
	BrandNames   []string              `json:"brand_names"`
	Tables       models.CitationTables `json:"tables"`
	Platform     string                `json:"platform,omitempty"`
	Topic        string                `json:"topic,omitempty"`
	Persona      string                `json:"persona,omitempty"`
	PromptID     string                `json:"prompt_id,omitempty"`
	ResponseDate time.Time             `json:"response_date"`
}

// BatchExtractionSummary reports the outcome of a batch extraction run.
type BatchExtractionSummary struct {
	Results          []*models.ExtractionResult `json:"results"`
	TotalProcessed   int                        `json:"total_processed"`
	DegradedInputs   int                        `json:"degraded_inputs"`
	ProcessingErrors []string                   `json:"processing_errors"`
	Timestamp        time.Time                  `json:"timestamp"`
}

// ExtractService turns one raw response plus a brand list into a structured
// extraction result, and fans batches out across a bounded worker pool.
type ExtractService interface {
	Extract(ctx context.Context, input ExtractionInput) *models.ExtractionResult
	ExtractBatch(ctx context.Context, inputs []ExtractionInput) (*BatchExtractionSummary, error)
}

// AggregationService rolls a batch of extraction results for one scope and
// date window into ranked brand metrics. The previous-window aggregate is
// supplied by the caller; the persistence collaborator knows how to compute
// the prior date range.
type AggregationService interface {
	Aggregate(ctx context.Context, extractions []*models.ExtractionResult, scope models.Scope, dateRange models.DateRange, previous []*models.AggregatedBrandMetrics) ([]*models.AggregatedBrandMetrics, error)
	GenerateInsights(metrics []*models.AggregatedBrandMetrics) []string
}
