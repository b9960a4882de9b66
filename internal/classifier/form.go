package classifier

import (
	"context"
	"strings"

	"github.com/jonesrussell/formsight/internal/domain"
	"github.com/jonesrussell/formsight/internal/logger"
)

// Form signal scoring constants.
const (
	formContainerBonus  = 20
	looseFieldsBonus    = 10
	looseFieldsMinCount = 3
	matchedFieldsBonus  = 20
	matchedFieldsTier1  = 3
	matchedFieldsTier2  = 5
)

// fieldPatterns is the attribute pattern set for registration-style
// fields. A field is "matched" when any one of its name, id, or
// placeholder contains any one pattern; the first hit wins, so a field
// contributes at most once no matter how many attributes or patterns it
// satisfies.
var fieldPatterns = []string{
	"business",
	"company",
	"entity",
	"name",
	"type",
	"owner",
	"address",
	"register",
}

// FormAnalyzer scores the page's form/input structure for
// registration-field patterns.
type FormAnalyzer struct {
	log logger.Logger
}

// NewFormAnalyzer creates a new form-structure signal analyzer.
func NewFormAnalyzer(log logger.Logger) *FormAnalyzer {
	return &FormAnalyzer{log: log}
}

// Score computes the form signal in [0,100]. A structural <form> wrapper
// earns formContainerBonus; loose pages with at least looseFieldsMinCount
// fields still count as form-like for a smaller bonus. Matched-field
// thresholds are additive: m >= 3 and m >= 5 each add matchedFieldsBonus.
func (a *FormAnalyzer) Score(_ context.Context, fields []domain.FieldDescriptor, hasFormContainer bool) (int, error) {
	score := 0

	switch {
	case hasFormContainer:
		score += formContainerBonus
	case len(fields) >= looseFieldsMinCount:
		score += looseFieldsBonus
	}

	matched := 0
	for _, field := range fields {
		if fieldMatches(field) {
			matched++
		}
	}

	if matched >= matchedFieldsTier1 {
		score += matchedFieldsBonus
	}
	if matched >= matchedFieldsTier2 {
		score += matchedFieldsBonus
	}

	a.log.Debug("form signal scored",
		logger.Int("fields", len(fields)),
		logger.Int("matched_fields", matched),
		logger.Bool("has_form_container", hasFormContainer),
		logger.Int("score", score),
	)

	return domain.ClampSignalScore(score), nil
}

// fieldMatches tests a field's attributes against the pattern set.
func fieldMatches(field domain.FieldDescriptor) bool {
	attrs := [3]string{
		strings.ToLower(field.Name),
		strings.ToLower(field.ID),
		strings.ToLower(field.Placeholder),
	}
	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		for _, pattern := range fieldPatterns {
			if strings.Contains(attr, pattern) {
				return true
			}
		}
	}
	return false
}
