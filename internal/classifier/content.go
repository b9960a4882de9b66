package classifier

import (
	"context"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/formsight/internal/domain"
	"github.com/jonesrussell/formsight/internal/logger"
)

// Content signal scoring constants.
const (
	entityTermScore         = 5
	registrationPhraseScore = 10
)

// entityVocabulary lists legal-entity terms worth entityTermScore each.
// Matching is plain substring containment on the lowercased text: each
// term counts at most once regardless of repetition, and near-miss
// phrasing ("limited-liability company") is deliberately missed. That is
// a documented limitation of the matching primitive, not a bug.
var entityVocabulary = []string{
	"llc",
	"limited liability company",
	"corporation",
	"incorporated",
	"partnership",
	"sole proprietorship",
	"doing business as",
}

// registrationPhrases lists registration-intent phrases worth
// registrationPhraseScore each.
var registrationPhrases = []string{
	"business registration",
	"register a business",
	"business license",
	"articles of organization",
	"articles of incorporation",
	"business formation",
}

// ContentAnalyzer scores visible page text for entity and registration
// vocabulary. All patterns are matched in a single Aho-Corasick pass; the
// automaton is built once at construction.
type ContentAnalyzer struct {
	matcher     *ahocorasick.Matcher
	patternHits []int // score contribution per pattern index
	log         logger.Logger
}

// NewContentAnalyzer creates a new content signal analyzer.
func NewContentAnalyzer(log logger.Logger) *ContentAnalyzer {
	patterns := make([]string, 0, len(entityVocabulary)+len(registrationPhrases))
	weights := make([]int, 0, cap(patterns))

	for _, term := range entityVocabulary {
		patterns = append(patterns, term)
		weights = append(weights, entityTermScore)
	}
	for _, phrase := range registrationPhrases {
		patterns = append(patterns, phrase)
		weights = append(weights, registrationPhraseScore)
	}

	return &ContentAnalyzer{
		matcher:     ahocorasick.NewStringMatcher(patterns),
		patternHits: weights,
		log:         log,
	}
}

// Score computes the content signal in [0,100]. Each distinct pattern
// present in the lowercased text contributes once; the sum saturates at
// the signal cap.
func (a *ContentAnalyzer) Score(_ context.Context, visibleText string) (int, error) {
	if visibleText == "" {
		return 0, nil
	}

	lowered := strings.ToLower(visibleText)
	hits := a.matcher.Match([]byte(lowered))

	score := 0
	for _, idx := range hits {
		if idx < 0 || idx >= len(a.patternHits) {
			continue
		}
		score += a.patternHits[idx]
	}

	a.log.Debug("content signal scored",
		logger.Int("patterns_matched", len(hits)),
		logger.Int("score", score),
	)

	return domain.ClampSignalScore(score), nil
}
