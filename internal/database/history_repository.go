package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/formsight/internal/domain"
)

// Bounds on Recent page sizes. The cap guards the pre-allocation against
// client-controlled limits.
const (
	defaultRecentEntries = 50
	maxRecentEntries     = 100
)

// HistoryRepository handles database operations for classification
// history. The log is append-only: one row per classification call,
// including re-detections of the same page.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new classification history repository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// HistoryEntry is one recorded classification.
type HistoryEntry struct {
	ID               int64     `db:"id"                 json:"id"`
	PageID           string    `db:"page_id"            json:"page_id"`
	URL              string    `db:"url"                json:"url"`
	IsPositive       bool      `db:"is_positive"        json:"is_positive"`
	ConfidenceScore  int       `db:"confidence_score"   json:"confidence_score"`
	Jurisdiction     string    `db:"jurisdiction"       json:"jurisdiction,omitempty"`
	URLScore         int       `db:"url_score"          json:"url_score"`
	ContentScore     int       `db:"content_score"      json:"content_score"`
	FormScore        int       `db:"form_score"         json:"form_score"`
	DetectorVersion  string    `db:"detector_version"   json:"detector_version"`
	ProcessingTimeMs int64     `db:"processing_time_ms" json:"processing_time_ms"`
	ClassifiedAt     time.Time `db:"classified_at"      json:"classified_at"`
}

// Stats represents overall classification statistics.
type Stats struct {
	TotalClassified     int     `json:"total_classified"`
	PositiveCount       int     `json:"positive_count"`
	AvgConfidenceScore  float64 `json:"avg_confidence_score"`
	AvgProcessingTimeMs float64 `json:"avg_processing_time_ms"`
}

// JurisdictionStat represents counts for a single jurisdiction.
type JurisdictionStat struct {
	Jurisdiction string `db:"jurisdiction" json:"jurisdiction"`
	Count        int    `db:"count"        json:"count"`
}

// Create inserts a classification result into the history log.
func (r *HistoryRepository) Create(ctx context.Context, result *domain.ClassificationResult) error {
	query := `
		INSERT INTO classification_history (
			page_id, url, is_positive, confidence_score, jurisdiction,
			url_score, content_score, form_score, detector_version,
			processing_time_ms, classified_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		result.PageID,
		result.URL,
		result.IsBusinessRegistrationForm,
		result.ConfidenceScore,
		result.Jurisdiction,
		result.Signals.URL,
		result.Signals.Content,
		result.Signals.Form,
		result.DetectorVersion,
		result.ProcessingTimeMs,
		result.ClassifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}
	return nil
}

// Recent returns the most recent history entries, newest first. The limit
// is clamped to [1, maxRecentEntries].
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultRecentEntries
	}
	if limit > maxRecentEntries {
		limit = maxRecentEntries
	}

	entries := make([]HistoryEntry, 0, limit)
	query := `
		SELECT id, page_id, url, is_positive, confidence_score, jurisdiction,
		       url_score, content_score, form_score, detector_version,
		       processing_time_ms, classified_at
		FROM classification_history
		ORDER BY classified_at DESC, id DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

// GetStats returns overall classification statistics.
func (r *HistoryRepository) GetStats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(is_positive), 0) AS positive,
			COALESCE(AVG(confidence_score), 0) AS avg_confidence,
			COALESCE(AVG(processing_time_ms), 0) AS avg_processing
		FROM classification_history
	`

	var stats Stats
	row := r.db.QueryRowContext(ctx, query)
	if err := row.Scan(
		&stats.TotalClassified,
		&stats.PositiveCount,
		&stats.AvgConfidenceScore,
		&stats.AvgProcessingTimeMs,
	); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return &stats, nil
}

// JurisdictionCounts returns positive-classification counts grouped by
// resolved jurisdiction, most common first.
func (r *HistoryRepository) JurisdictionCounts(ctx context.Context) ([]JurisdictionStat, error) {
	query := `
		SELECT jurisdiction, COUNT(*) AS count
		FROM classification_history
		WHERE is_positive = 1 AND jurisdiction != ''
		GROUP BY jurisdiction
		ORDER BY count DESC, jurisdiction ASC
	`

	stats := make([]JurisdictionStat, 0)
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to compute jurisdiction stats: %w", err)
	}
	return stats, nil
}
