package http

import (
	"context"
	"io"

	"cfemdash/internal/session"
	"cfemdash/internal/services"
	"cfemdash/pkg/contracts/domain"
)

// DatasetServiceInterface is the service surface the handlers depend on.
// Narrowing to an interface keeps the handlers testable with a stub.
type DatasetServiceInterface interface {
	Load(ctx context.Context, r io.Reader, filename string) (session.Summary, error)
	Summary(ctx context.Context) (session.Summary, error)
	Query(ctx context.Context, spec domain.FilterSpec) (*services.QueryResult, error)
	Options(ctx context.Context) (domain.FilterOptions, error)
	Strategic(ctx context.Context, spec domain.FilterSpec) (*domain.StrategicView, error)
	Simulate(ctx context.Context, spec domain.FilterSpec, captureFraction float64) (domain.Simulation, error)
	Export(ctx context.Context, spec domain.FilterSpec, w io.Writer) error
	Reset(ctx context.Context)
}
