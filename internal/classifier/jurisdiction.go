package classifier

import (
	"context"

	"github.com/jonesrussell/formsight/internal/data"
	"github.com/jonesrussell/formsight/internal/logger"
)

// JurisdictionResolver infers a two-letter US state code from a URL via
// the ordered fragment table in the data package. The inference is a
// heuristic, not authoritative: it may return no match or a wrong guess,
// and downstream consumers must treat it as advisory.
type JurisdictionResolver struct {
	log logger.Logger
}

// NewJurisdictionResolver creates a new jurisdiction resolver.
func NewJurisdictionResolver(log logger.Logger) *JurisdictionResolver {
	return &JurisdictionResolver{log: log}
}

// Resolve returns the inferred state code and true, or "" and false when
// nothing in the URL matches the fragment table.
func (r *JurisdictionResolver) Resolve(_ context.Context, rawURL string) (string, bool) {
	code, ok := data.ResolveState(rawURL)
	if ok {
		r.log.Debug("jurisdiction resolved",
			logger.String("url", rawURL),
			logger.String("code", code),
		)
	}
	return code, ok
}
