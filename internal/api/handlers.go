package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonesrussell/formsight/internal/classifier"
	"github.com/jonesrussell/formsight/internal/database"
	"github.com/jonesrussell/formsight/internal/domain"
	"github.com/jonesrussell/formsight/internal/knowledge"
	"github.com/jonesrussell/formsight/internal/logger"
	"github.com/jonesrussell/formsight/internal/snapshot"
	"github.com/jonesrussell/formsight/internal/store"
	"github.com/jonesrussell/formsight/internal/telemetry"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 100
)

// HistoryRecorder persists and queries the classification audit log.
// *database.HistoryRepository satisfies it.
type HistoryRecorder interface {
	Create(ctx context.Context, result *domain.ClassificationResult) error
	Recent(ctx context.Context, limit int) ([]database.HistoryEntry, error)
	GetStats(ctx context.Context) (*database.Stats, error)
	JurisdictionCounts(ctx context.Context) ([]database.JurisdictionStat, error)
}

// Collector captures live pages for URL-based classification.
// *snapshot.Collector satisfies it. It may be nil when the browser
// integration is disabled.
type Collector interface {
	Capture(ctx context.Context, pageURL, pageID string) (*domain.PageSnapshot, error)
}

var _ Collector = (*snapshot.Collector)(nil)

// Handler handles HTTP requests for the formsight API.
type Handler struct {
	engine    *classifier.Classifier
	results   store.ResultStore
	history   HistoryRecorder
	knowledge *knowledge.Base
	collector Collector
	logger    logger.Logger
	telemetry *telemetry.Provider
	service   string
	version   string
	maxBatch  int
}

// HandlerConfig wires the handler's collaborators.
type HandlerConfig struct {
	Engine    *classifier.Classifier
	Results   store.ResultStore
	History   HistoryRecorder
	Knowledge *knowledge.Base
	Collector Collector
	Logger    logger.Logger
	Telemetry *telemetry.Provider
	Service   string
	Version   string
	MaxBatch  int
}

// NewHandler creates a new API handler.
func NewHandler(cfg HandlerConfig) *Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	maxBatch := cfg.MaxBatch
	if maxBatch <= 0 {
		maxBatch = 50
	}
	return &Handler{
		engine:    cfg.Engine,
		results:   cfg.Results,
		history:   cfg.History,
		knowledge: cfg.Knowledge,
		collector: cfg.Collector,
		logger:    log,
		telemetry: cfg.Telemetry,
		service:   cfg.Service,
		version:   cfg.Version,
		maxBatch:  maxBatch,
	}
}

// Classify handles POST /api/v1/classify
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid classification request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := req.Snapshot
	if snap.PageID == "" {
		snap.PageID = uuid.NewString()
	}

	h.logger.Info("classifying snapshot",
		logger.String("page_id", snap.PageID),
		logger.String("url", snap.URL),
	)

	result := h.engine.Classify(c.Request.Context(), snap)
	h.publish(c, result)

	c.JSON(http.StatusOK, ClassifyResponse{Result: result})
}

// ClassifyBatch handles POST /api/v1/classify/batch
func (h *Handler) ClassifyBatch(c *gin.Context) {
	var req BatchClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch classification request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Snapshots) > h.maxBatch {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "batch exceeds maximum size of " + strconv.Itoa(h.maxBatch),
		})
		return
	}

	for i, snap := range req.Snapshots {
		if snap == nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "snapshots[" + strconv.Itoa(i) + "] is null",
			})
			return
		}
		if snap.PageID == "" {
			snap.PageID = uuid.NewString()
		}
	}

	h.logger.Info("classifying batch", logger.Int("batch_size", len(req.Snapshots)))

	results := h.engine.ClassifyBatch(c.Request.Context(), req.Snapshots)

	positive := 0
	for _, result := range results {
		h.publish(c, result)
		if result.IsBusinessRegistrationForm {
			positive++
		}
	}

	c.JSON(http.StatusOK, BatchClassifyResponse{
		Results:  results,
		Total:    len(results),
		Positive: positive,
	})
}

// ClassifyURL handles POST /api/v1/classify/url
func (h *Handler) ClassifyURL(c *gin.Context) {
	if h.collector == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "live page capture is disabled on this instance",
		})
		return
	}

	var req ClassifyURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid URL classification request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pageID := req.PageID
	if pageID == "" {
		pageID = uuid.NewString()
	}

	h.logger.Info("capturing page for classification",
		logger.String("page_id", pageID),
		logger.String("url", req.URL),
	)

	snap, err := h.collector.Capture(c.Request.Context(), req.URL, pageID)
	if err != nil {
		h.logger.Error("page capture failed",
			logger.String("url", req.URL),
			logger.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to capture page"})
		return
	}

	result := h.engine.Classify(c.Request.Context(), snap)
	h.publish(c, result)

	c.JSON(http.StatusOK, ClassifyResponse{Result: result})
}

// GetResult handles GET /api/v1/classify/:page_id
func (h *Handler) GetResult(c *gin.Context) {
	pageID := c.Param("page_id")

	result, err := h.results.Get(c.Request.Context(), pageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no result for page_id " + pageID})
			return
		}
		h.logger.Error("result lookup failed",
			logger.String("page_id", pageID),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load result"})
		return
	}

	c.JSON(http.StatusOK, ClassifyResponse{Result: result})
}

// DeleteResult handles DELETE /api/v1/classify/:page_id
func (h *Handler) DeleteResult(c *gin.Context) {
	pageID := c.Param("page_id")

	if err := h.results.Delete(c.Request.Context(), pageID); err != nil {
		h.logger.Error("result delete failed",
			logger.String("page_id", pageID),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete result"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStats handles GET /api/v1/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.history.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get stats", logger.Error(err))
		// Return empty stats instead of an error to avoid breaking dashboards.
		c.JSON(http.StatusOK, database.Stats{})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetJurisdictionStats handles GET /api/v1/stats/jurisdictions
func (h *Handler) GetJurisdictionStats(c *gin.Context) {
	stats, err := h.history.JurisdictionCounts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get jurisdiction stats", logger.Error(err))
		c.JSON(http.StatusOK, gin.H{"jurisdictions": []database.JurisdictionStat{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jurisdictions": stats})
}

// GetRecent handles GET /api/v1/stats/recent
func (h *Handler) GetRecent(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if parsed > maxRecentLimit {
			parsed = maxRecentLimit
		}
		limit = parsed
	}

	entries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to get recent classifications", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// EntityTypes handles GET /api/v1/knowledge/entity-types
func (h *Handler) EntityTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entity_types": h.knowledge.EntityTypes()})
}

// States handles GET /api/v1/knowledge/states
func (h *Handler) States(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": h.knowledge.States()})
}

// StateForms handles GET /api/v1/knowledge/states/:code/forms
func (h *Handler) StateForms(c *gin.Context) {
	code := c.Param("code")

	forms, ok := h.knowledge.FormsByState(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no forms on record for state " + code})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state": code,
		"forms": forms,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.service,
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	checks := gin.H{
		"engine":  "ok",
		"results": "ok",
		"history": "ok",
	}
	if h.collector == nil {
		checks["collector"] = "disabled"
	} else {
		checks["collector"] = "ok"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": checks,
	})
}

// publish stores the result and appends it to the audit log. History write
// failures are logged, not surfaced: the classification itself succeeded.
func (h *Handler) publish(c *gin.Context, result *domain.ClassificationResult) {
	ctx := c.Request.Context()

	if err := h.results.Put(ctx, result); err != nil {
		h.logger.Error("failed to store result",
			logger.String("page_id", result.PageID),
			logger.Error(err))
	}
	if err := h.history.Create(ctx, result); err != nil {
		if h.telemetry != nil {
			h.telemetry.Metrics.HistoryWriteFailures.Inc()
		}
		h.logger.Warn("failed to record history entry",
			logger.String("page_id", result.PageID),
			logger.Error(err))
	}
}
