package store

import (
	"context"
	"errors"

	"github.com/jonesrussell/formsight/internal/domain"
	"github.com/jonesrussell/formsight/internal/telemetry"
)

// InstrumentedStore wraps a ResultStore and counts operations by outcome.
// A miss on Get is not counted as an error.
type InstrumentedStore struct {
	inner   ResultStore
	metrics *telemetry.Metrics
}

// NewInstrumentedStore decorates a store with operation metrics.
func NewInstrumentedStore(inner ResultStore, m *telemetry.Metrics) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, metrics: m}
}

func (s *InstrumentedStore) Put(ctx context.Context, result *domain.ClassificationResult) error {
	err := s.inner.Put(ctx, result)
	s.count("put", err)
	return err
}

func (s *InstrumentedStore) Get(ctx context.Context, pageID string) (*domain.ClassificationResult, error) {
	result, err := s.inner.Get(ctx, pageID)
	if errors.Is(err, ErrNotFound) {
		s.metrics.StoreOperations.WithLabelValues("get", "miss").Inc()
	} else {
		s.count("get", err)
	}
	return result, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, pageID string) error {
	err := s.inner.Delete(ctx, pageID)
	s.count("delete", err)
	return err
}

// Close forwards to the inner store when it holds a connection.
func (s *InstrumentedStore) Close() error {
	if closer, ok := s.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (s *InstrumentedStore) count(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.StoreOperations.WithLabelValues(op, outcome).Inc()
}
