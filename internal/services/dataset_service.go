package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cfemdash/internal/analytics"
	"cfemdash/internal/dataprocessing"
	"cfemdash/internal/exporter"
	"cfemdash/internal/session"
	"cfemdash/pkg/contracts/domain"
)

// QueryResult is one filtered view plus its KPI summary.
type QueryResult struct {
	Records []domain.MineRecord `json:"records"`
	Kpis    domain.KpiSet       `json:"kpis"`
}

// DatasetService orchestrates the upload pipeline, the session store and
// the analytics over the loaded table. It is the single entry point the
// transport layer talks to.
type DatasetService struct {
	pipeline *dataprocessing.Pipeline
	store    *session.Store
	csv      *exporter.CSVWriter
	logger   *slog.Logger
}

// NewDatasetService creates a dataset service using the default logger.
func NewDatasetService(store *session.Store) *DatasetService {
	return NewDatasetServiceWithLogger(store, slog.Default())
}

// NewDatasetServiceWithLogger creates a dataset service with a specific
// logger.
func NewDatasetServiceWithLogger(store *session.Store, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "dataset_service")

	return &DatasetService{
		pipeline: dataprocessing.NewPipeline(logger),
		store:    store,
		csv:      exporter.NewCSVWriter(logger),
		logger:   logger,
	}
}

// Load runs the full pipeline over an upload and replaces the session
// dataset. A schema failure leaves the previous dataset untouched.
func (s *DatasetService) Load(ctx context.Context, r io.Reader, filename string) (session.Summary, error) {
	ds, err := s.pipeline.Process(ctx, r, filename)
	if err != nil {
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("file", filename),
			slog.String("error", err.Error()))
		return session.Summary{}, err
	}

	summary := s.store.Set(ds, filename)
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("file", filename),
		slog.String("version", summary.Version),
		slog.Int("rows", summary.RowCount))
	return summary, nil
}

// Summary returns the loaded-dataset metadata.
func (s *DatasetService) Summary(ctx context.Context) (session.Summary, error) {
	summary, ok := s.store.Summary()
	if !ok {
		return session.Summary{}, ErrNoDataset
	}
	return summary, nil
}

// Query returns the filtered view for a spec together with its KPIs.
// A spec matching nothing is a valid empty result, not an error.
func (s *DatasetService) Query(ctx context.Context, spec domain.FilterSpec) (*QueryResult, error) {
	ds, ok := s.store.Snapshot()
	if !ok {
		return nil, ErrNoDataset
	}

	filtered := analytics.ApplyFilters(ds.Records, spec)
	result := &QueryResult{
		Records: filtered,
		Kpis:    analytics.ComputeKpis(filtered, 0),
	}

	s.logger.DebugContext(ctx, "query executed",
		slog.Int("total", ds.Len()),
		slog.Int("matched", len(filtered)))
	return result, nil
}

// Options computes the selectable filter universes of the loaded table.
func (s *DatasetService) Options(ctx context.Context) (domain.FilterOptions, error) {
	ds, ok := s.store.Snapshot()
	if !ok {
		return domain.FilterOptions{}, ErrNoDataset
	}
	return analytics.Options(ds.Records), nil
}

// Strategic computes the concentration and prospecting analyses over a
// filtered view.
func (s *DatasetService) Strategic(ctx context.Context, spec domain.FilterSpec) (*domain.StrategicView, error) {
	ds, ok := s.store.Snapshot()
	if !ok {
		return nil, ErrNoDataset
	}

	filtered := analytics.ApplyFilters(ds.Records, spec)
	return &domain.StrategicView{
		MinePareto:    analytics.MinePareto(filtered),
		GroupPareto:   analytics.GroupPareto(filtered),
		Opportunities: analytics.TopOpportunities(filtered, 0),
	}, nil
}

// Simulate projects revenue potential from capturing a fraction of the
// unmapped royalty base of a filtered view.
func (s *DatasetService) Simulate(ctx context.Context, spec domain.FilterSpec, captureFraction float64) (domain.Simulation, error) {
	ds, ok := s.store.Snapshot()
	if !ok {
		return domain.Simulation{}, ErrNoDataset
	}

	filtered := analytics.ApplyFilters(ds.Records, spec)
	return analytics.Simulate(filtered, captureFraction), nil
}

// Export streams a filtered view as CSV in the upload's own dialect.
func (s *DatasetService) Export(ctx context.Context, spec domain.FilterSpec, w io.Writer) error {
	ds, ok := s.store.Snapshot()
	if !ok {
		return ErrNoDataset
	}

	filtered := analytics.ApplyFilters(ds.Records, spec)
	if err := s.csv.Write(w, ds.Columns, filtered); err != nil {
		return fmt.Errorf("export filtered view: %w", err)
	}

	s.logger.InfoContext(ctx, "filtered view exported",
		slog.Int("rows", len(filtered)))
	return nil
}

// Reset destroys the session dataset.
func (s *DatasetService) Reset(ctx context.Context) {
	s.store.Reset()
	s.logger.InfoContext(ctx, "session reset")
}
