// Package classifier implements the page-classification engine: three
// independent signal analyzers (URL, content, form structure), a weighted
// aggregation with a positive threshold, and a jurisdiction heuristic.
package classifier

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonesrussell/formsight/internal/domain"
	"github.com/jonesrussell/formsight/internal/logger"
	"github.com/jonesrussell/formsight/internal/telemetry"
)

// Aggregation constants. The confidence invariant is
// round(0.4*url + 0.4*content + 0.2*form), clamped to [0,100]; pages at
// or above PositiveThreshold classify as registration forms (>=, not >).
const (
	urlSignalWeight     = 0.4
	contentSignalWeight = 0.4
	formSignalWeight    = 0.2
	PositiveThreshold   = 60
)

// totalFailureMarker is recorded on the result when every analyzer failed.
const totalFailureMarker = "all signal analyzers failed"

// URLScorer scores a URL string for registration intent.
type URLScorer interface {
	Score(ctx context.Context, url string) (int, error)
}

// ContentScorer scores visible page text for registration vocabulary.
type ContentScorer interface {
	Score(ctx context.Context, visibleText string) (int, error)
}

// FormScorer scores the page's form/input structure.
type FormScorer interface {
	Score(ctx context.Context, fields []domain.FieldDescriptor, hasFormContainer bool) (int, error)
}

// Resolver infers a jurisdiction code from a URL.
type Resolver interface {
	Resolve(ctx context.Context, url string) (string, bool)
}

// Classifier orchestrates the signal analyzers and the jurisdiction
// resolver. It is purely a function of its input snapshot: no state
// persists across calls, so concurrent invocations need no locking and
// "re-detect" is simply another Classify call on a fresh snapshot.
type Classifier struct {
	url          URLScorer
	content      ContentScorer
	form         FormScorer
	jurisdiction Resolver
	telemetry    *telemetry.Provider
	log          logger.Logger
	version      string
}

// Config holds configuration for the classifier. The analyzer fields are
// optional overrides; nil fields get the default implementations.
type Config struct {
	Version      string
	URL          URLScorer
	Content      ContentScorer
	Form         FormScorer
	Jurisdiction Resolver
}

// NewClassifier creates a classifier with all analyzers wired. The
// telemetry provider may be nil.
func NewClassifier(log logger.Logger, tp *telemetry.Provider, cfg Config) *Classifier {
	c := &Classifier{
		url:          cfg.URL,
		content:      cfg.Content,
		form:         cfg.Form,
		jurisdiction: cfg.Jurisdiction,
		telemetry:    tp,
		log:          log,
		version:      cfg.Version,
	}
	if c.url == nil {
		c.url = NewURLAnalyzer(log)
	}
	if c.content == nil {
		c.content = NewContentAnalyzer(log)
	}
	if c.form == nil {
		c.form = NewFormAnalyzer(log)
	}
	if c.jurisdiction == nil {
		c.jurisdiction = NewJurisdictionResolver(log)
	}
	return c
}

// Classify runs the three analyzers and the resolver against a snapshot
// and returns the result record. It is side-effect-free and never raises
// to its caller: a failing analyzer degrades that signal to 0, and only
// when every analyzer fails does the result carry the error marker with a
// zero-confidence negative verdict. Publishing the result (store, badge,
// UI) is the caller's responsibility.
func (c *Classifier) Classify(ctx context.Context, snap *domain.PageSnapshot) *domain.ClassificationResult {
	startTime := time.Now()

	// SpanFromContext yields a no-op span when telemetry is disabled.
	span := trace.SpanFromContext(ctx)
	if c.telemetry != nil {
		ctx, span = c.telemetry.Tracer.Start(ctx, "classifier.Classify")
		defer span.End()
	}

	result := &domain.ClassificationResult{
		DetectorVersion: c.version,
		ClassifiedAt:    time.Now(),
	}
	if snap == nil {
		result.Error = totalFailureMarker
		result.ProcessingTimeMs = time.Since(startTime).Milliseconds()
		c.log.Error("classification called with nil snapshot")
		return result
	}

	result.PageID = snap.PageID
	result.URL = snap.URL

	failures := 0

	urlScore, err := c.url.Score(ctx, snap.URL)
	if err != nil {
		c.log.Warn("url signal failed, degrading to zero",
			logger.String("page_id", snap.PageID),
			logger.Error(err),
		)
		urlScore = 0
		failures++
		c.countSignalFailure("url")
	}

	contentScore, err := c.content.Score(ctx, snap.VisibleText)
	if err != nil {
		c.log.Warn("content signal failed, degrading to zero",
			logger.String("page_id", snap.PageID),
			logger.Error(err),
		)
		contentScore = 0
		failures++
		c.countSignalFailure("content")
	}

	formScore, err := c.form.Score(ctx, snap.Fields, snap.HasFormContainer)
	if err != nil {
		c.log.Warn("form signal failed, degrading to zero",
			logger.String("page_id", snap.PageID),
			logger.Error(err),
		)
		formScore = 0
		failures++
		c.countSignalFailure("form")
	}

	if failures == 3 {
		result.Error = totalFailureMarker
		result.ProcessingTimeMs = time.Since(startTime).Milliseconds()
		c.log.Error("all signal analyzers failed",
			logger.String("page_id", snap.PageID),
			logger.String("url", snap.URL),
		)
		return result
	}

	result.Signals = domain.SignalScores{
		URL:     urlScore,
		Content: contentScore,
		Form:    formScore,
	}
	result.ConfidenceScore = weightedConfidence(urlScore, contentScore, formScore)
	result.IsBusinessRegistrationForm = result.ConfidenceScore >= PositiveThreshold

	if code, ok := c.jurisdiction.Resolve(ctx, snap.URL); ok {
		result.Jurisdiction = code
	}

	result.ProcessingTimeMs = time.Since(startTime).Milliseconds()

	span.SetAttributes(
		attribute.Int("confidence_score", result.ConfidenceScore),
		attribute.Bool("positive", result.IsBusinessRegistrationForm),
	)
	c.recordMetrics(result, time.Since(startTime))

	c.log.Info("classification complete",
		logger.String("page_id", snap.PageID),
		logger.String("url", snap.URL),
		logger.Bool("positive", result.IsBusinessRegistrationForm),
		logger.Int("confidence_score", result.ConfidenceScore),
		logger.String("jurisdiction", result.Jurisdiction),
		logger.Int64("processing_time_ms", result.ProcessingTimeMs),
	)

	return result
}

// ClassifyBatch classifies multiple snapshots. Items are independent;
// results are positionally aligned with the input.
func (c *Classifier) ClassifyBatch(ctx context.Context, snaps []*domain.PageSnapshot) []*domain.ClassificationResult {
	if c.telemetry != nil {
		c.telemetry.Metrics.BatchSize.Observe(float64(len(snaps)))
	}
	results := make([]*domain.ClassificationResult, len(snaps))
	for i, snap := range snaps {
		results[i] = c.Classify(ctx, snap)
	}
	return results
}

// Version returns the detector version stamped on results.
func (c *Classifier) Version() string {
	return c.version
}

// weightedConfidence applies the fixed signal weights and clamps.
func weightedConfidence(urlScore, contentScore, formScore int) int {
	raw := urlSignalWeight*float64(urlScore) +
		contentSignalWeight*float64(contentScore) +
		formSignalWeight*float64(formScore)
	return domain.ClampSignalScore(int(math.Round(raw)))
}

func (c *Classifier) countSignalFailure(signal string) {
	if c.telemetry == nil {
		return
	}
	c.telemetry.Metrics.SignalFailures.WithLabelValues(signal).Inc()
}

func (c *Classifier) recordMetrics(result *domain.ClassificationResult, elapsed time.Duration) {
	if c.telemetry == nil {
		return
	}
	m := c.telemetry.Metrics
	verdict := "negative"
	if result.IsBusinessRegistrationForm {
		verdict = "positive"
	}
	m.ClassificationsTotal.WithLabelValues(verdict).Inc()
	m.ClassificationDuration.Observe(elapsed.Seconds())
	m.SignalScore.WithLabelValues("url").Observe(float64(result.Signals.URL))
	m.SignalScore.WithLabelValues("content").Observe(float64(result.Signals.Content))
	m.SignalScore.WithLabelValues("form").Observe(float64(result.Signals.Form))
}
