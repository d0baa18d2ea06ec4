// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// DetectionMethod identifies which strategy produced a brand detection.
type DetectionMethod string

const (
	MethodExact          DetectionMethod = "exact"
	MethodAbbreviation   DetectionMethod = "abbreviation"
	MethodPartial        DetectionMethod = "partial"
	MethodPartialDistant DetectionMethod = "partial-distant"
	MethodFuzzy          DetectionMethod = "fuzzy"
	MethodFuzzyPhrase    DetectionMethod = "fuzzy-phrase"
	MethodVariation      DetectionMethod = "variation"
)

// Sentence is a single sentence produced by the segmenter. Position is
// 0-indexed within the response.
type Sentence struct {
	Text      string `json:"text"`
	Position  int    `json:"position"`
	WordCount int    `json:"word_count"`
}

// BrandDetectionResult is the outcome of running the detection cascade
// against one (sentence, brand) pair.
type BrandDetectionResult struct {
	Detected   bool            `json:"detected"`
	Confidence float64         `json:"confidence"`
	Method     DetectionMethod `json:"method,omitempty"`
}

// MentionSentence is a sentence attributed to a brand, annotated with the
// detection that attributed it.
type MentionSentence struct {
	Sentence
	Confidence float64         `json:"confidence"`
	Method     DetectionMethod `json:"method"`
}

// SentimentResult holds the per-brand sentiment breakdown for one response.
// SentimentScore is in [-100, 100].
type SentimentResult struct {
	SentimentScore   float64 `json:"sentiment_score"`
	PositiveMentions int     `json:"positive_mentions"`
	NegativeMentions int     `json:"negative_mentions"`
	NeutralMentions  int     `json:"neutral_mentions"`
}

// BrandMentionRecord accumulates everything extracted for one brand from one
// response. FirstPosition is the 1-indexed sentence index of the first
// mention and is set iff Mentioned is true.
type BrandMentionRecord struct {
	BrandName      string            `json:"brand_name"`
	Mentioned      bool              `json:"mentioned"`
	FirstPosition  *int              `json:"first_position,omitempty"`
	MentionCount   int               `json:"mention_count"`
	Sentences      []MentionSentence `json:"sentences"`
	TotalWordCount int               `json:"total_word_count"`
	DepthOfMention float64           `json:"depth_of_mention"`
	CitationCount  int               `json:"citation_count"`
	Sentiment      SentimentResult   `json:"sentiment"`
}

// CitationType classifies a hyperlink by domain ownership.
type CitationType string

const (
	CitationBrand      CitationType = "brand"
	CitationCompetitor CitationType = "competitor"
	CitationSocial     CitationType = "social"
	CitationEarned     CitationType = "earned"
)

// Citation is one classified hyperlink extracted from a response.
type Citation struct {
	URL        string       `json:"url"`
	Domain     string       `json:"domain"`
	AnchorText string       `json:"anchor_text"`
	Type       CitationType `json:"type"`
}

// CitationTables holds the domain membership tables supplied by the caller.
// Classification priority is brand > competitor > social > earned.
type CitationTables struct {
	BrandDomains      []string `json:"brand_domains"`
	CompetitorDomains []string `json:"competitor_domains"`
	SocialDomains     []string `json:"social_domains"`
}

// ResponseStats summarizes the analyzed response text.
type ResponseStats struct {
	Text           string `json:"text"`
	TotalSentences int    `json:"total_sentences"`
	TotalWords     int    `json:"total_words"`
}

// ExtractionResult is the full extraction output for one (response,
// brand-set) pair. It carries no generated identifiers or timestamps so that
// repeated extraction of the same input is byte-identical; ResponseID and the
// scope dimensions are supplied by the caller.
type ExtractionResult struct {
	ResponseID   uuid.UUID             `json:"response_id"`
	Platform     string                `json:"platform,omitempty"`
	Topic        string                `json:"topic,omitempty"`
	Persona      string                `json:"persona,omitempty"`
	PromptID     string                `json:"prompt_id,omitempty"`
	ResponseDate time.Time             `json:"response_date"`
	Response     ResponseStats         `json:"response"`
	BrandMetrics []*BrandMentionRecord `json:"brand_metrics"`
	Citations    []Citation            `json:"citations"`
}

// ScopeType is the aggregation dimension.
type ScopeType string

const (
	ScopeOverall  ScopeType = "overall"
	ScopePlatform ScopeType = "platform"
	ScopeTopic    ScopeType = "topic"
	ScopePersona  ScopeType = "persona"
	ScopePrompt   ScopeType = "prompt"
)

// Scope selects which extractions participate in an aggregation. Value is
// ignored for ScopeOverall.
type Scope struct {
	Type  ScopeType `json:"type"`
	Value string    `json:"value,omitempty"`
}

// DateRange is a [From, To) window over response dates.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// RankedMetric pairs a metric value with its rank among all brands in the
// aggregation (1 = best). RankChange is current rank minus the rank in the
// immediately preceding equivalent window; nil when no baseline exists.
type RankedMetric struct {
	Value      float64 `json:"value"`
	Rank       int     `json:"rank"`
	RankChange *int    `json:"rank_change,omitempty"`
}

// PositionDistribution counts how often a brand was the 1st, 2nd, or
// 3rd-or-later brand mentioned within a response.
type PositionDistribution struct {
	First     int `json:"first"`
	Second    int `json:"second"`
	ThirdPlus int `json:"third_plus"`
}

// SentimentBreakdown is the aggregated sentence-level sentiment tally.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// AggregatedBrandMetrics is the ranked cross-response rollup for one brand
// within one scope and date window.
type AggregatedBrandMetrics struct {
	BrandName            string               `json:"brand_name"`
	Scope                Scope                `json:"scope"`
	DateRange            DateRange            `json:"date_range"`
	ResponseCount        int                  `json:"response_count"`
	MentionedResponses   int                  `json:"mentioned_responses"`
	TotalMentions        int                  `json:"total_mentions"`
	Visibility           RankedMetric         `json:"visibility"`
	CitationShare        RankedMetric         `json:"citation_share"`
	AveragePosition      RankedMetric         `json:"average_position"`
	DepthOfMention       RankedMetric         `json:"depth_of_mention"`
	SentimentScore       RankedMetric         `json:"sentiment_score"`
	ShareOfVoice         RankedMetric         `json:"share_of_voice"`
	SentimentBreakdown   SentimentBreakdown   `json:"sentiment_breakdown"`
	PositionDistribution PositionDistribution `json:"position_distribution"`
}
