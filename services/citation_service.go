// services/citation_service.go
package services

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/AI-Template-SDK/senso-metrics/internal/config"
	"github.com/AI-Template-SDK/senso-metrics/internal/models"
	"mvdan.cc/xurls/v2"
)

// markdownLinkRe matches [anchor](url) hyperlinks, the citation syntax model
// platforms emit.
var markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)

type citationService struct {
	cfg   *config.Config
	urlRe *regexp.Regexp
	valid map[models.CitationType]bool
}

func NewCitationService(cfg *config.Config) CitationService {
	return &citationService{
		cfg:   cfg,
		urlRe: xurls.Strict(),
		valid: map[models.CitationType]bool{
			models.CitationBrand:      true,
			models.CitationCompetitor: true,
			models.CitationSocial:     true,
			models.CitationEarned:     true,
		},
	}
}

// ExtractCitations finds markdown hyperlinks in a response and classifies
// each by domain membership: brand, then competitor, then social, with
// earned as the default.
func (s *citationService) ExtractCitations(response string, tables models.CitationTables) []models.Citation {
	matches := markdownLinkRe.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return nil
	}

	social := tables.SocialDomains
	if len(social) == 0 {
		social = s.cfg.SocialDomains
	}

	var citations []models.Citation
	for _, match := range matches {
		anchor, rawURL := match[1], match[2]
		domain := normalizeDomain(rawURL)
		if domain == "" {
			continue
		}

		citationType := models.CitationEarned
		switch {
		case matchesAnyDomain(domain, tables.BrandDomains):
			citationType = models.CitationBrand
		case matchesAnyDomain(domain, tables.CompetitorDomains):
			citationType = models.CitationCompetitor
		case matchesAnyDomain(domain, social):
			citationType = models.CitationSocial
		}

		citations = append(citations, models.Citation{
			URL:        rawURL,
			Domain:     domain,
			AnchorText: anchor,
			Type:       citationType,
		})
	}

	return citations
}

// FilterRelevant drops citations whose type is outside the known set, a
// defensive filter against malformed stored entries.
func (s *citationService) FilterRelevant(citations []models.Citation) []models.Citation {
	var relevant []models.Citation
	for _, citation := range citations {
		if s.valid[citation.Type] {
			relevant = append(relevant, citation)
		}
	}
	return relevant
}

// CountBrandCitations counts hyperlinks attributable to the brand: markdown
// links whose anchor or URL carries the brand name, plus bare URLs elsewhere
// in the response. Independent of the domain tables.
func (s *citationService) CountBrandCitations(response, brandName string) int {
	brand := strings.ToLower(strings.TrimSpace(brandName))
	if brand == "" || response == "" {
		return 0
	}
	compact := strings.ReplaceAll(brand, " ", "")

	count := 0
	for _, match := range markdownLinkRe.FindAllStringSubmatch(response, -1) {
		anchor := strings.ToLower(match[1])
		rawURL := strings.ToLower(match[2])
		if strings.Contains(anchor, brand) || strings.Contains(rawURL, compact) {
			count++
		}
	}

	// Bare URLs outside markdown links; strip the links first so their
	// targets are not counted twice.
	remainder := markdownLinkRe.ReplaceAllString(response, " ")
	for _, raw := range s.urlRe.FindAllString(remainder, -1) {
		if strings.Contains(strings.ToLower(raw), compact) {
			count++
		}
	}

	return count
}

// normalizeDomain reduces a URL to its bare lowercase host without a www
// prefix. Returns "" for unparseable input.
func normalizeDomain(rawURL string) string {
	trimmed := strings.TrimSpace(strings.ToLower(rawURL))
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	host := parsed.Hostname()
	return strings.TrimPrefix(host, "www.")
}

// matchesAnyDomain reports whether domain equals or is a subdomain of any
// table entry. Entries may be bare domains or full URLs.
func matchesAnyDomain(domain string, table []string) bool {
	for _, entry := range table {
		normalized := normalizeDomain(entry)
		if normalized == "" {
			continue
		}
		if domain == normalized || strings.HasSuffix(domain, "."+normalized) {
			return true
		}
	}
	return false
}
