package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"cfemdash/pkg/contracts/domain"
)

// Pipeline runs the full upload transformation: read, normalize, derive.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a processing pipeline. A nil logger falls back to
// the default logger.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger: logger.With("component", "dataprocessing"),
	}
}

// Process turns an uploaded file into the canonical dataset. The reader
// format is chosen by filename extension: .xlsx goes through the workbook
// reader, everything else is parsed as ';'-delimited CSV. A schema failure
// returns a *SchemaError and commits nothing.
func (p *Pipeline) Process(ctx context.Context, r io.Reader, filename string) (*domain.Dataset, error) {
	var (
		table *RawTable
		err   error
	)

	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		table, err = LoadExcel(r)
	} else {
		table, err = LoadCSV(r, ';')
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}

	ds, err := Normalize(table)
	if err != nil {
		return nil, err
	}

	Derive(ds)

	p.logger.InfoContext(ctx, "dataset processed",
		slog.String("file", filename),
		slog.Int("rows", ds.Len()),
		slog.Int("columns", len(ds.Columns)),
		slog.Int("source_columns", len(table.Header)))

	return ds, nil
}
