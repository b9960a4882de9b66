package database_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonesrussell/formsight/internal/database"
	"github.com/jonesrussell/formsight/internal/domain"
)

func newTestRepository(t *testing.T) *database.HistoryRepository {
	t.Helper()

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return database.NewHistoryRepository(db)
}

func sampleResult(pageID string, positive bool, confidence int, jurisdiction string) *domain.ClassificationResult {
	return &domain.ClassificationResult{
		PageID:                     pageID,
		URL:                        "https://mybusiness.dc.gov/",
		IsBusinessRegistrationForm: positive,
		ConfidenceScore:            confidence,
		Jurisdiction:               jurisdiction,
		Signals:                    domain.SignalScores{URL: 30, Content: 75, Form: 60},
		DetectorVersion:            "1.0.0",
		ProcessingTimeMs:           2,
		ClassifiedAt:               time.Now().UTC(),
	}
}

func TestHistoryRepository_CreateAndRecent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleResult("tab-1", true, 72, "DC")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, sampleResult("tab-2", false, 12, "")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	entries, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent() returned %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].PageID != "tab-2" {
		t.Errorf("Recent()[0].PageID = %q, want tab-2", entries[0].PageID)
	}
	if entries[1].ConfidenceScore != 72 || !entries[1].IsPositive {
		t.Errorf("Recent()[1] = %+v, want positive at 72", entries[1])
	}
}

func TestHistoryRepository_Recent_ClampsLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleResult("tab-1", true, 72, "DC")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A limit near MaxInt must not drive the pre-allocation into a panic.
	entries, err := repo.Recent(ctx, math.MaxInt)
	if err != nil {
		t.Fatalf("Recent(MaxInt) error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Recent(MaxInt) returned %d entries, want 1", len(entries))
	}
}

func TestHistoryRepository_GetStats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if stats, err := repo.GetStats(ctx); err != nil || stats.TotalClassified != 0 {
		t.Fatalf("GetStats() on empty log = %+v, %v", stats, err)
	}

	for _, r := range []*domain.ClassificationResult{
		sampleResult("tab-1", true, 80, "DC"),
		sampleResult("tab-2", true, 60, "CA"),
		sampleResult("tab-3", false, 10, ""),
	} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	stats, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.TotalClassified != 3 {
		t.Errorf("TotalClassified = %d, want 3", stats.TotalClassified)
	}
	if stats.PositiveCount != 2 {
		t.Errorf("PositiveCount = %d, want 2", stats.PositiveCount)
	}
	if stats.AvgConfidenceScore != 50 {
		t.Errorf("AvgConfidenceScore = %f, want 50", stats.AvgConfidenceScore)
	}
}

func TestHistoryRepository_JurisdictionCounts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, r := range []*domain.ClassificationResult{
		sampleResult("tab-1", true, 80, "DC"),
		sampleResult("tab-2", true, 70, "DC"),
		sampleResult("tab-3", true, 65, "CA"),
		sampleResult("tab-4", false, 30, "NY"), // negative, excluded
		sampleResult("tab-5", true, 61, ""),    // unresolved, excluded
	} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	counts, err := repo.JurisdictionCounts(ctx)
	if err != nil {
		t.Fatalf("JurisdictionCounts() error = %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("JurisdictionCounts() returned %d rows, want 2", len(counts))
	}
	if counts[0].Jurisdiction != "DC" || counts[0].Count != 2 {
		t.Errorf("top jurisdiction = %+v, want DC with 2", counts[0])
	}
	if counts[1].Jurisdiction != "CA" || counts[1].Count != 1 {
		t.Errorf("second jurisdiction = %+v, want CA with 1", counts[1])
	}
}
