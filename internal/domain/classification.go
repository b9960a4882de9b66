package domain

import "time"

// Signal score bounds. Every signal is an integer in [MinSignalScore,
// MaxSignalScore], monotonic non-decreasing as matching evidence
// accumulates, saturating rather than wrapping.
const (
	MinSignalScore = 0
	MaxSignalScore = 100
)

// SignalScores holds the three independent signal scores that feed the
// weighted verdict.
type SignalScores struct {
	URL     int `json:"url_score"`
	Content int `json:"content_score"`
	Form    int `json:"form_score"`
}

// ClassificationResult is the canonical result record for one page view.
// It is created fresh on every classification call, immutable once
// returned, and superseded (not merged) by the next call for the same
// page.
type ClassificationResult struct {
	PageID string `json:"page_id"`
	URL    string `json:"url"`

	IsBusinessRegistrationForm bool `json:"is_business_registration_form"`

	// ConfidenceScore is the weighted aggregate of the three signals,
	// clamped to [0,100]. Pages at or above the positive threshold are
	// classified as registration forms.
	ConfidenceScore int `json:"confidence_score"`

	// Jurisdiction is the inferred two-letter US state code, empty (and
	// omitted from JSON) when no jurisdiction could be resolved. The
	// inference is advisory; consumers must tolerate absence and wrong
	// guesses.
	Jurisdiction string `json:"jurisdiction,omitempty"`

	Signals SignalScores `json:"signals"`

	DetectorVersion  string    `json:"detector_version"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	ClassifiedAt     time.Time `json:"classified_at"`

	// Error marks a total analysis failure: every signal analyzer failed
	// and the zero-confidence negative verdict is a fallback, not a
	// measurement. Partial failures degrade individual signals instead.
	Error string `json:"error,omitempty"`
}

// ClampSignalScore saturates a running signal total to the valid range.
func ClampSignalScore(score int) int {
	if score < MinSignalScore {
		return MinSignalScore
	}
	if score > MaxSignalScore {
		return MaxSignalScore
	}
	return score
}
