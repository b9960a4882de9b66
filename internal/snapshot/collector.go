// Package snapshot captures live pages through a headless Chrome instance
// and converts them into PageSnapshot values the classifier can score.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/time/rate"

	"github.com/jonesrussell/formsight/internal/domain"
	"github.com/jonesrussell/formsight/internal/logger"
	"github.com/jonesrussell/formsight/internal/telemetry"
)

const (
	defaultNavigateTimeout = 30 * time.Second
	defaultCapturesPerSec  = 2
	defaultCaptureBurst    = 4
)

// captureScript runs inside the page and returns the snapshot payload as a
// JSON string. Only visible text and form field metadata leave the browser.
const captureScript = `() => {
	const fields = [];
	for (const el of document.querySelectorAll('input, select, textarea, [contenteditable="true"]')) {
		let tag = el.tagName.toLowerCase();
		if (tag !== 'input' && tag !== 'select' && tag !== 'textarea') {
			tag = 'contenteditable';
		}
		fields.push({
			name: el.getAttribute('name') || '',
			id: el.getAttribute('id') || '',
			placeholder: el.getAttribute('placeholder') || '',
			tag: tag,
		});
	}
	return JSON.stringify({
		text: document.body ? document.body.innerText : '',
		has_form: document.querySelector('form') !== null,
		fields: fields,
	});
}`

// Config configures the collector.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// NavigateTimeout bounds navigation plus page load. Default: 30s.
	NavigateTimeout time.Duration

	// CapturesPerSecond throttles captures across all callers. Default: 2.
	CapturesPerSecond float64

	// CaptureBurst is the limiter burst size. Default: 4.
	CaptureBurst int
}

func (c *Config) defaults() {
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = defaultNavigateTimeout
	}
	if c.CapturesPerSecond <= 0 {
		c.CapturesPerSecond = defaultCapturesPerSec
	}
	if c.CaptureBurst <= 0 {
		c.CaptureBurst = defaultCaptureBurst
	}
}

// Collector drives a shared Chrome instance to capture page snapshots.
type Collector struct {
	cfg       Config
	log       logger.Logger
	telemetry *telemetry.Provider
	limiter   *rate.Limiter

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewCollector creates a Collector. Chrome is launched lazily on the first
// capture so a misconfigured browser does not block service startup.
func NewCollector(cfg Config, log logger.Logger, tp *telemetry.Provider) *Collector {
	cfg.defaults()
	if log == nil {
		log = logger.NewNop()
	}
	return &Collector{
		cfg:       cfg,
		log:       log,
		telemetry: tp,
		limiter:   rate.NewLimiter(rate.Limit(cfg.CapturesPerSecond), cfg.CaptureBurst),
	}
}

// Capture navigates to pageURL and extracts a snapshot. The returned
// snapshot carries pageID unchanged.
func (c *Collector) Capture(ctx context.Context, pageURL, pageID string) (*domain.PageSnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("snapshot: rate limit: %w", err)
	}

	start := time.Now()
	snap, err := c.capture(ctx, pageURL, pageID)
	c.recordCapture(time.Since(start), err)
	return snap, err
}

func (c *Collector) capture(ctx context.Context, pageURL, pageID string) (*domain.PageSnapshot, error) {
	b, err := c.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("snapshot: create tab: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, c.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("snapshot: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		c.log.Warn("wait load timeout, capturing current state",
			logger.String("url", pageURL),
			logger.Error(err))
	}

	res, err := page.Context(navCtx).Eval(captureScript)
	if err != nil {
		return nil, fmt.Errorf("snapshot: extract page state: %w", err)
	}

	snap, err := parseCapturePayload([]byte(res.Value.Str()))
	if err != nil {
		return nil, err
	}

	snap.PageID = pageID
	snap.URL = pageURL
	snap.CapturedAt = time.Now().UTC()
	return snap, nil
}

func (c *Collector) ensureBrowser() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, fmt.Errorf("snapshot: collector is closed")
	}
	if c.browser != nil {
		return c.browser, nil
	}

	wsURL := c.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Headless(true)
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("snapshot: launch chrome: %w", err)
		}
		wsURL = u
		c.lnch = l
		c.log.Info("launched local chrome", logger.String("control_url", wsURL))
	} else {
		c.log.Info("connecting to remote chrome", logger.String("control_url", wsURL))
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("snapshot: connect chrome: %w", err)
	}

	c.browser = b
	return b, nil
}

// Close shuts down Chrome. Subsequent captures fail.
func (c *Collector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.browser != nil {
		if err := c.browser.Close(); err != nil {
			return fmt.Errorf("snapshot: close browser: %w", err)
		}
		c.browser = nil
	}
	if c.lnch != nil {
		c.lnch.Cleanup()
		c.lnch = nil
	}
	return nil
}

func (c *Collector) recordCapture(elapsed time.Duration, err error) {
	if c.telemetry == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.telemetry.Metrics.SnapshotCaptures.WithLabelValues(outcome).Inc()
	c.telemetry.Metrics.SnapshotCaptureDuration.Observe(elapsed.Seconds())
}
