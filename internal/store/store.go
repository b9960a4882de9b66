// Package store caches the latest classification result per page. The
// engine never writes here; the API layer publishes results after each
// classification, replacing (never merging) the previous record for the
// same page.
package store

import (
	"context"
	"errors"

	"github.com/jonesrussell/formsight/internal/domain"
)

// ErrNotFound is returned when no result exists for a page.
var ErrNotFound = errors.New("classification result not found")

// ResultStore holds the most recent completed classification per page.
// Implementations must guarantee atomic replace-on-write: a Get always
// observes either the latest completed result or absence, never a
// partially written one.
type ResultStore interface {
	// Put replaces the stored result for the result's page.
	Put(ctx context.Context, result *domain.ClassificationResult) error
	// Get returns the latest result for a page, or ErrNotFound.
	Get(ctx context.Context, pageID string) (*domain.ClassificationResult, error)
	// Delete removes the stored result for a page. Deleting an absent
	// page is not an error.
	Delete(ctx context.Context, pageID string) error
}
