package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cfemdash/internal/analytics"
	"cfemdash/internal/config"
	"cfemdash/internal/dataprocessing"
	"cfemdash/internal/exporter"
	"cfemdash/internal/infrastructure"
	"cfemdash/pkg/contracts/domain"
)

// report is the analytical output of one batch run. Display carries the
// dashboard's pt-BR renditions of the headline figures so the report is
// readable without post-processing.
type report struct {
	Source  string               `json:"source"`
	Rows    int                  `json:"rows"`
	Kpis    domain.KpiSet        `json:"kpis"`
	Display kpiDisplay           `json:"kpis_display"`
	View    domain.StrategicView `json:"strategic"`
	Targets []string             `json:"top_targets"`
	Capture *domain.Simulation   `json:"simulation,omitempty"`
}

type kpiDisplay struct {
	Mines           string `json:"mines"`
	TotalRoyalty    string `json:"total_royalty"`
	AverageTicket   string `json:"average_ticket"`
	MappedAnnualSum string `json:"mapped_annual_sum"`
}

func displayKpis(k domain.KpiSet) kpiDisplay {
	return kpiDisplay{
		Mines:           exporter.FormatNumberBR(float64(k.MineCount), 0),
		TotalRoyalty:    exporter.FormatCurrencyBR(k.TotalRoyalty),
		AverageTicket:   exporter.FormatCurrencyBR(k.AverageTicket),
		MappedAnnualSum: exporter.FormatCurrencyAbbreviatedBR(k.MappedAnnualSum),
	}
}

// displayTargets renders the opportunity ranking as one line per mine,
// tax ID masked the way the dashboard shows it.
func displayTargets(opps []domain.Opportunity) []string {
	lines := make([]string, 0, len(opps))
	for _, o := range opps {
		lines = append(lines, fmt.Sprintf("%s (%s): %s",
			o.CompanyName,
			exporter.FormatTaxIDBR(o.TaxID),
			exporter.FormatCurrencyBR(o.Royalty)))
	}
	return lines
}

func main() {
	inPath := flag.String("in", "", "input dataset (.csv or .xlsx)")
	outPath := flag.String("out", "cfem_clean.csv", "cleaned CSV output path")
	reportPath := flag.String("report", "", "optional KPI/strategic report JSON output path")
	capture := flag.Float64("capture", 0, "optional capture percentage (0-100] to simulate")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := infrastructure.MustInitializeLogger(config.LoggingConfig{
		Level:  *logLevel,
		Format: "text",
	})

	if err := run(context.Background(), logger, *inPath, *outPath, *reportPath, *capture); err != nil {
		logger.Error("Processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, inPath, outPath, reportPath string, capture float64) error {
	if inPath == "" {
		return fmt.Errorf("flag -in is required")
	}
	if capture < 0 || capture > 100 {
		return fmt.Errorf("flag -capture must be between 0 and 100")
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	pipeline := dataprocessing.NewPipeline(logger)
	dataset, err := pipeline.Process(ctx, in, filepath.Base(inPath))
	if err != nil {
		return fmt.Errorf("process %s: %w", inPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	writer := exporter.NewCSVWriter(logger)
	if err := writer.Write(out, dataset.Columns, dataset.Records); err != nil {
		return fmt.Errorf("write cleaned CSV: %w", err)
	}

	logger.Info("Cleaned dataset written",
		slog.String("path", outPath),
		slog.Int("rows", dataset.Len()))

	if reportPath == "" {
		return nil
	}

	rep := report{
		Source: filepath.Base(inPath),
		Rows:   dataset.Len(),
		Kpis:   analytics.ComputeKpis(dataset.Records, analytics.DefaultTopGroups),
		View: domain.StrategicView{
			MinePareto:    analytics.MinePareto(dataset.Records),
			GroupPareto:   analytics.GroupPareto(dataset.Records),
			Opportunities: analytics.TopOpportunities(dataset.Records, analytics.DefaultTopOpportunities),
		},
	}
	rep.Display = displayKpis(rep.Kpis)
	rep.Targets = displayTargets(rep.View.Opportunities)
	if capture > 0 {
		sim := analytics.Simulate(dataset.Records, capture/100)
		rep.Capture = &sim
	}

	raw, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(reportPath, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logger.Info("Report written", slog.String("path", reportPath))
	return nil
}
