package api

import "github.com/jonesrussell/formsight/internal/domain"

// ClassifyRequest carries a single snapshot to classify.
type ClassifyRequest struct {
	Snapshot *domain.PageSnapshot `json:"snapshot" binding:"required"`
}

// ClassifyURLRequest asks the service to capture and classify a live page.
type ClassifyURLRequest struct {
	URL    string `json:"url" binding:"required,url"`
	PageID string `json:"page_id"`
}

// BatchClassifyRequest carries multiple snapshots to classify in order.
type BatchClassifyRequest struct {
	Snapshots []*domain.PageSnapshot `json:"snapshots" binding:"required,min=1"`
}

// ClassifyResponse wraps a single classification result.
type ClassifyResponse struct {
	Result *domain.ClassificationResult `json:"result"`
}

// BatchClassifyResponse wraps batch results with summary counts.
type BatchClassifyResponse struct {
	Results  []*domain.ClassificationResult `json:"results"`
	Total    int                            `json:"total"`
	Positive int                            `json:"positive"`
}
