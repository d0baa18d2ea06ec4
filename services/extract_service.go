// services/extract_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AI-Template-SDK/senso-metrics/internal/config"
	"github.com/AI-Template-SDK/senso-metrics/internal/models"
	"github.com/AI-Template-SDK/senso-metrics/internal/textutil"
	"github.com/AI-Template-SDK/senso-metrics/internal/worker"
)

// placeholderBrand substitutes for an empty brand list so a malformed call
// degrades to a zeroed record instead of aborting a batch job.
const placeholderBrand = "Unknown Brand"

type extractService struct {
	cfg       *config.Config
	detection DetectionService
	citations CitationService
	sentiment SentimentService
}

func NewExtractService(cfg *config.Config) ExtractService {
	return &extractService{
		cfg:       cfg,
		detection: NewDetectionService(cfg),
		citations: NewCitationService(cfg),
		sentiment: NewSentimentService(cfg),
	}
}

// Extract segments the response once, runs the detection cascade for every
// (sentence, brand) pair, and folds citation and sentiment scoring into one
// result. Pure function of its input: no identifiers or timestamps are
// generated, so repeated calls are byte-identical.
func (s *extractService) Extract(ctx context.Context, input ExtractionInput) *models.ExtractionResult {
	brandNames := input.BrandNames
	if len(brandNames) == 0 {
		brandNames = []string{placeholderBrand}
	}

	sentences := textutil.SplitSentences(input.Response)
	totalWords := textutil.CountWords(input.Response)

	records := make([]*models.BrandMentionRecord, 0, len(brandNames))
	for _, brandName := range brandNames {
		records = append(records, &models.BrandMentionRecord{BrandName: brandName})
	}

	for _, sentence := range sentences {
		for _, record := range records {
			detection := s.detection.Detect(sentence.Text, record.BrandName)
			if !detection.Detected {
				continue
			}

			record.Mentioned = true
			record.MentionCount++
			record.TotalWordCount += sentence.WordCount
			if record.FirstPosition == nil {
				position := sentence.Position + 1
				record.FirstPosition = &position
			}
			record.Sentences = append(record.Sentences, models.MentionSentence{
				Sentence:   sentence,
				Confidence: detection.Confidence,
				Method:     detection.Method,
			})
		}
	}

	citations := s.citations.FilterRelevant(s.citations.ExtractCitations(input.Response, input.Tables))

	for _, record := range records {
		record.DepthOfMention = depthOfMention(record.Sentences, len(sentences), totalWords)
		record.CitationCount = s.citations.CountBrandCitations(input.Response, record.BrandName)
		record.Sentiment = s.sentiment.Score(record, input.Response)
	}

	return &models.ExtractionResult{
		ResponseID:   input.ResponseID,
		Platform:     input.Platform,
		Topic:        input.Topic,
		Persona:      input.Persona,
		PromptID:     input.PromptID,
		ResponseDate: input.ResponseDate,
		Response: models.ResponseStats{
			Text:           input.Response,
			TotalSentences: len(sentences),
			TotalWords:     totalWords,
		},
		BrandMetrics: records,
		Citations:    citations,
	}
}

// ExtractBatch fans extraction out across a bounded worker pool sized to
// available CPU cores; this is CPU-bound string work with no shared state
// between responses.
func (s *extractService) ExtractBatch(ctx context.Context, inputs []ExtractionInput) (*BatchExtractionSummary, error) {
	fmt.Printf("[ExtractBatch] Processing %d responses with %d workers\n", len(inputs), s.cfg.Workers)

	jobs := make([]worker.Job, len(inputs))
	for i, input := range inputs {
		jobs[i] = extractionJob{svc: s, input: input}
	}

	pool := worker.NewPool(s.cfg.Workers)
	results := pool.Execute(ctx, jobs)

	summary := &BatchExtractionSummary{Timestamp: time.Now().UTC()}
	for i, result := range results {
		if result == nil {
			summary.ProcessingErrors = append(summary.ProcessingErrors,
				fmt.Sprintf("response %s: extraction cancelled", inputs[i].ResponseID))
			continue
		}
		jobResult := result.(extractionJobResult)
		summary.Results = append(summary.Results, jobResult.result)
		summary.TotalProcessed++
		if inputs[i].Response == "" || len(inputs[i].BrandNames) == 0 {
			summary.DegradedInputs++
		}
	}

	if err := ctx.Err(); err != nil {
		fmt.Printf("[ExtractBatch] Batch interrupted after %d of %d responses: %v\n",
			summary.TotalProcessed, len(inputs), err)
		return summary, fmt.Errorf("batch extraction interrupted: %w", err)
	}

	fmt.Printf("[ExtractBatch] Completed %d responses (%d degraded inputs)\n",
		summary.TotalProcessed, summary.DegradedInputs)
	return summary, nil
}

// depthOfMention computes the position-decayed share of the response's words
// attributable to the brand:
//
//	sum(wordCount * exp(-position/totalSentences)) / totalWords * 100
//
// with position 1-indexed, so earlier mentions weigh more. Zero for
// degenerate responses.
func depthOfMention(sentences []models.MentionSentence, totalSentences, totalWords int) float64 {
	if len(sentences) == 0 || totalSentences == 0 || totalWords == 0 {
		return 0
	}

	weighted := 0.0
	for _, sentence := range sentences {
		position := float64(sentence.Position + 1)
		weighted += float64(sentence.WordCount) * math.Exp(-position/float64(totalSentences))
	}

	depth := weighted / float64(totalWords) * 100
	return math.Round(depth*10000) / 10000
}

type extractionJob struct {
	svc   *extractService
	input ExtractionInput
}

func (j extractionJob) Execute(ctx context.Context) worker.Result {
	return extractionJobResult{result: j.svc.Extract(ctx, j.input)}
}

type extractionJobResult struct {
	result *models.ExtractionResult
}

func (r extractionJobResult) Err() error { return nil }
