package classifier

import (
	"context"
	"strings"

	"github.com/jonesrussell/formsight/internal/domain"
	"github.com/jonesrussell/formsight/internal/logger"
)

// URL signal scoring constants.
const (
	govDomainBonus  = 25
	intentTermScore = 5
	urlScanCutoff   = 70
	govDomainMarker = ".gov"
)

// urlIntentTerms is the ordered list of business-intent terms scanned in
// the URL. Order matters: the scan short-circuits once the running total
// reaches urlScanCutoff. With the current list the cutoff is unreachable
// (25 + 8*5 = 65); the check is kept so the observable behavior tracks
// the documented algorithm rather than a re-derived one.
var urlIntentTerms = []string{
	"business",
	"register",
	"registration",
	"license",
	"permit",
	"corporation",
	"llc",
	"entity",
}

// URLAnalyzer scores a URL string for registration-related intent.
// Pure string matching, no network access; it never fails, and a
// malformed or empty URL scores zero.
type URLAnalyzer struct {
	log logger.Logger
}

// NewURLAnalyzer creates a new URL signal analyzer.
func NewURLAnalyzer(log logger.Logger) *URLAnalyzer {
	return &URLAnalyzer{log: log}
}

// Score computes the URL signal in [0,100].
func (a *URLAnalyzer) Score(_ context.Context, rawURL string) (int, error) {
	if strings.TrimSpace(rawURL) == "" {
		return 0, nil
	}

	lowered := strings.ToLower(rawURL)
	score := 0

	if strings.Contains(lowered, govDomainMarker) {
		score += govDomainBonus
	}

	for _, term := range urlIntentTerms {
		if score >= urlScanCutoff {
			break
		}
		if strings.Contains(lowered, term) {
			score += intentTermScore
		}
	}

	a.log.Debug("url signal scored",
		logger.String("url", rawURL),
		logger.Int("score", score),
	)

	return domain.ClampSignalScore(score), nil
}
