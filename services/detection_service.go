// services/detection_service.go
package services

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/AI-Template-SDK/senso-metrics/internal/config"
	"github.com/AI-Template-SDK/senso-metrics/internal/models"
	"github.com/AI-Template-SDK/senso-metrics/internal/textutil"
	gocache "github.com/patrickmn/go-cache"
)

// commonWords are function words and stopwords ignored when reducing a brand
// name to its significant words.
var commonWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "of": true,
	"for": true, "in": true, "on": true, "at": true, "to": true, "with": true,
	"by": true, "your": true, "our": true, "you": true, "it": true, "its": true,
}

// legalSuffixes are corporate suffixes that carry no brand signal.
var legalSuffixes = map[string]bool{
	"inc": true, "llc": true, "ltd": true, "corp": true, "corporation": true,
	"company": true, "co": true, "group": true, "holdings": true,
	"limited": true, "gmbh": true, "plc": true,
}

// genericTerms are words too generic to stand alone as an abbreviation
// candidate; a whole-word hit on one of these would misattribute ordinary
// prose to the brand. Calibration table, tuned alongside the keyword lists.
var genericTerms = map[string]bool{
	"data": true, "smart": true, "cloud": true, "app": true, "apps": true,
	"tech": true, "web": true, "net": true, "pro": true, "plus": true,
	"go": true, "one": true, "first": true, "best": true, "new": true,
	"solutions": true, "services": true, "systems": true, "software": true,
	"digital": true, "global": true, "tools": true, "labs": true, "online": true,
}

// interchangeable maps function words that brands swap freely in free text.
var interchangeable = map[string]string{
	"for": "of", "of": "for",
	"a": "your", "your": "a",
}

var articles = map[string]bool{"the": true, "a": true, "an": true}

// brandPatterns is the per-brand compiled state cached between Detect calls.
// Purely a speedup: detection output never depends on cache state.
type brandPatterns struct {
	exactRe    *regexp.Regexp
	sigWords   []string
	abbrevs    []string
	abbrevRes  []*regexp.Regexp
	variants   []string
	variantRes []*regexp.Regexp
}

type detectionService struct {
	cfg   *config.Config
	cache *gocache.Cache
}

func NewDetectionService(cfg *config.Config) DetectionService {
	return &detectionService{
		cfg:   cfg,
		cache: gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// strategy is one detection approach; nil means "did not fire".
type strategy func(sentence, brandName string, patterns *brandPatterns) *models.BrandDetectionResult

// Detect runs the cascade in fixed priority order: exact, abbreviation,
// partial multi-word, fuzzy, variation. First non-nil result wins; there is
// no cumulative scoring.
func (s *detectionService) Detect(sentence, brandName string) models.BrandDetectionResult {
	if strings.TrimSpace(sentence) == "" || strings.TrimSpace(brandName) == "" {
		return models.BrandDetectionResult{}
	}

	patterns := s.patternsFor(brandName)
	strategies := []strategy{
		s.matchExact,
		s.matchAbbreviation,
		s.matchPartial,
		s.matchFuzzy,
		s.matchVariation,
	}

	for _, try := range strategies {
		if result := try(sentence, brandName, patterns); result != nil {
			return *result
		}
	}

	return models.BrandDetectionResult{}
}

// NameVariations exposes the abbreviation and variation candidates the
// cascade would accept for a brand.
func (s *detectionService) NameVariations(brandName string) []string {
	if strings.TrimSpace(brandName) == "" {
		return nil
	}
	patterns := s.patternsFor(brandName)

	seen := make(map[string]bool)
	var variations []string
	for _, candidate := range append(append([]string{}, patterns.abbrevs...), patterns.variants...) {
		if !seen[candidate] {
			seen[candidate] = true
			variations = append(variations, candidate)
		}
	}
	return variations
}

func (s *detectionService) patternsFor(brandName string) *brandPatterns {
	key := strings.ToLower(strings.TrimSpace(brandName))
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*brandPatterns)
	}

	sig := significantWords(key)
	abbrevs := abbreviationCandidates(sig)
	variants := variationCandidates(key)

	patterns := &brandPatterns{
		exactRe:  wholeWordPattern(key),
		sigWords: sig,
		abbrevs:  abbrevs,
		variants: variants,
	}
	for _, candidate := range abbrevs {
		patterns.abbrevRes = append(patterns.abbrevRes, wholeWordPattern(candidate))
	}
	for _, variant := range variants {
		patterns.variantRes = append(patterns.variantRes, wholeWordPattern(variant))
	}

	s.cache.Set(key, patterns, gocache.NoExpiration)
	return patterns
}

// matchExact: whole-word, case-insensitive match of the full brand name.
func (s *detectionService) matchExact(sentence, brandName string, patterns *brandPatterns) *models.BrandDetectionResult {
	if patterns.exactRe.MatchString(sentence) {
		return &models.BrandDetectionResult{Detected: true, Confidence: 1.0, Method: models.MethodExact}
	}
	return nil
}

// matchAbbreviation: any generated abbreviation candidate as a whole word.
func (s *detectionService) matchAbbreviation(sentence, brandName string, patterns *brandPatterns) *models.BrandDetectionResult {
	for _, re := range patterns.abbrevRes {
		if re.MatchString(sentence) {
			return &models.BrandDetectionResult{Detected: true, Confidence: 0.9, Method: models.MethodAbbreviation}
		}
	}
	return nil
}

// matchPartial: all significant words of a multi-word brand present as whole
// words. Confidence drops when the matched words are spread far apart.
func (s *detectionService) matchPartial(sentence, brandName string, patterns *brandPatterns) *models.BrandDetectionResult {
	if len(patterns.sigWords) < 2 {
		return nil
	}

	tokens := normalizeTokens(sentence)
	minIdx, maxIdx := -1, -1
	for _, word := range patterns.sigWords {
		idx := indexOfToken(tokens, word)
		if idx < 0 {
			return nil
		}
		if minIdx < 0 || idx < minIdx {
			minIdx = idx
		}
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	if maxIdx-minIdx > s.cfg.Detection.PartialSpanTokens {
		return &models.BrandDetectionResult{Detected: true, Confidence: 0.7, Method: models.MethodPartialDistant}
	}
	return &models.BrandDetectionResult{Detected: true, Confidence: 0.85, Method: models.MethodPartial}
}

// matchFuzzy: bounded similarity scan over the leading tokens and adjacent
// token pairs of the sentence. Skipped entirely for long brands or long
// sentences; fuzzy comparison is the expensive last-but-one resort.
func (s *detectionService) matchFuzzy(sentence, brandName string, patterns *brandPatterns) *models.BrandDetectionResult {
	det := s.cfg.Detection
	brand := strings.ToLower(strings.TrimSpace(brandName))
	if len(brand) > det.FuzzyMaxBrandLen || len(sentence) > det.FuzzyMaxSentenceLen {
		return nil
	}

	tokens := normalizeTokens(sentence)

	limit := det.FuzzyMaxTokens
	if len(tokens) < limit {
		limit = len(tokens)
	}
	for i := 0; i < limit; i++ {
		if sim := textutil.Similarity(tokens[i], brand); sim >= det.FuzzyThreshold {
			return &models.BrandDetectionResult{Detected: true, Confidence: sim * 0.9, Method: models.MethodFuzzy}
		}
	}

	pairLimit := det.FuzzyMaxPairs
	if len(tokens)-1 < pairLimit {
		pairLimit = len(tokens) - 1
	}
	for i := 0; i < pairLimit; i++ {
		phrase := tokens[i] + " " + tokens[i+1]
		if sim := textutil.Similarity(phrase, brand); sim >= det.FuzzyThreshold {
			return &models.BrandDetectionResult{Detected: true, Confidence: sim * 0.9, Method: models.MethodFuzzyPhrase}
		}
	}

	return nil
}

// matchVariation: function-word swaps and article stripping, whole-phrase
// matched. Only worthwhile for longer brand names.
func (s *detectionService) matchVariation(sentence, brandName string, patterns *brandPatterns) *models.BrandDetectionResult {
	if len(strings.TrimSpace(brandName)) <= s.cfg.Detection.VariationMinLen {
		return nil
	}
	for _, re := range patterns.variantRes {
		if re.MatchString(sentence) {
			return &models.BrandDetectionResult{Detected: true, Confidence: 0.8, Method: models.MethodVariation}
		}
	}
	return nil
}

// significantWords strips common words and legal suffixes from a lowercased
// brand name.
func significantWords(brand string) []string {
	var sig []string
	for _, word := range strings.Fields(brand) {
		word = trimToken(word)
		if word == "" || commonWords[word] || legalSuffixes[word] {
			continue
		}
		sig = append(sig, word)
	}
	return sig
}

// abbreviationCandidates generates the surface forms a brand commonly takes:
// initials, syllable prefixes, leading words and their combinations. All
// candidates are whole-word tested later; generic single words are excluded
// to avoid matching ordinary prose.
func abbreviationCandidates(sig []string) []string {
	seen := make(map[string]bool)
	var candidates []string
	add := func(candidate string) {
		if len(candidate) < 2 || commonWords[candidate] || genericTerms[candidate] || seen[candidate] {
			return
		}
		seen[candidate] = true
		candidates = append(candidates, candidate)
	}

	if len(sig) >= 2 {
		var initials strings.Builder
		for _, word := range sig {
			initials.WriteByte(word[0])
		}
		add(initials.String())
		add(sig[0][:1] + sig[1][:1])
	}

	for _, word := range sig {
		if len(word) >= 6 {
			add(syllablePrefix(word, 2))
		}
	}

	if len(sig) >= 1 {
		add(sig[0])
	}
	if len(sig) >= 2 {
		add(sig[0] + sig[1])
		add(sig[0] + sig[len(sig)-1][:1])
		for k := 2; k <= 4 && k <= len(sig[1]); k++ {
			combo := sig[0][:1] + sig[1][:k]
			if len(combo) >= 3 && len(combo) <= 5 {
				add(combo)
			}
		}
	}

	return candidates
}

// variationCandidates swaps interchangeable function words and strips
// articles from a lowercased brand name.
func variationCandidates(brand string) []string {
	words := strings.Fields(brand)
	seen := map[string]bool{brand: true}
	var variants []string
	add := func(tokens []string) {
		variant := strings.Join(tokens, " ")
		if variant == "" || seen[variant] {
			return
		}
		seen[variant] = true
		variants = append(variants, variant)
	}

	for i, word := range words {
		if swap, ok := interchangeable[word]; ok {
			swapped := make([]string, len(words))
			copy(swapped, words)
			swapped[i] = swap
			add(swapped)
		}
	}

	var stripped []string
	for _, word := range words {
		if !articles[word] {
			stripped = append(stripped, word)
		}
	}
	if len(stripped) < len(words) {
		add(stripped)
	}

	return variants
}

// syllablePrefix returns the prefix of a word covering at most maxSyllables
// vowel runs, the vowel-run heuristic for a pronounceable shortening.
func syllablePrefix(word string, maxSyllables int) string {
	var prefix strings.Builder
	runs := 0
	inVowel := false

	for _, r := range word {
		if isVowel(r) {
			if !inVowel {
				runs++
				if runs > maxSyllables {
					break
				}
				inVowel = true
			}
		} else {
			inVowel = false
		}
		prefix.WriteRune(r)
	}

	return prefix.String()
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// wholeWordPattern compiles a case-insensitive whole-word pattern for a name,
// escaping regex metacharacters. Word-boundary assertions are only attached
// next to word characters; a brand ending in ")" or "+" would otherwise never
// match.
func wholeWordPattern(name string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(name)
	pattern := "(?i)"
	if startsWithWordChar(name) {
		pattern += `\b`
	}
	pattern += escaped
	if endsWithWordChar(name) {
		pattern += `\b`
	}
	return regexp.MustCompile(pattern)
}

func startsWithWordChar(s string) bool {
	for _, r := range s {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}
	return false
}

func endsWithWordChar(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	r := runes[len(runes)-1]
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// normalizeTokens lowercases and splits a sentence, trimming punctuation from
// token edges.
func normalizeTokens(sentence string) []string {
	fields := strings.Fields(strings.ToLower(sentence))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if token := trimToken(field); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func trimToken(token string) string {
	return strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func indexOfToken(tokens []string, word string) int {
	for i, token := range tokens {
		if token == word {
			return i
		}
	}
	return -1
}
