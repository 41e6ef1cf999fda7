package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/suez-scraper/internal/export"
	"github.com/UnknownOlympus/suez-scraper/internal/extract"
	"github.com/UnknownOlympus/suez-scraper/internal/metrics"
	"github.com/UnknownOlympus/suez-scraper/internal/suez"
)

// Summary describes a completed run.
type Summary struct {
	Locations   int           // Number of extracted service locations
	Types       int           // Number of extracted service types
	Records     int           // Number of rows written to the CSV
	CollectTime time.Duration // Time spent fetching and extracting
	OutputPath  string        // Path of the written CSV
}

// ScraperService runs the fetch, extract and export steps once per Run call.
type ScraperService struct {
	log        *slog.Logger     // Logger for logging service activities
	fetcher    suez.Fetcher     // Source of the location map document
	metrics    *metrics.Metrics // Metrics for tracking the run
	outputPath string           // CSV destination
	now        func() time.Time // Clock, replaceable in tests
}

// NewScraperService creates a new instance of ScraperService.
func NewScraperService(
	log *slog.Logger,
	fetcher suez.Fetcher,
	metrics *metrics.Metrics,
	outputPath string,
) *ScraperService {
	return &ScraperService{
		log:        log,
		fetcher:    fetcher,
		metrics:    metrics,
		outputPath: outputPath,
		now:        time.Now,
	}
}

// Run fetches the map, extracts locations and types, merges them and writes the CSV.
// The first failing step aborts the run; nothing is written unless every earlier step succeeded.
func (ss *ScraperService) Run(ctx context.Context) (Summary, error) {
	summary, err := ss.run(ctx)
	if err != nil {
		ss.metrics.Runs.WithLabelValues("failure").Inc()
		return summary, err
	}

	ss.metrics.Runs.WithLabelValues("success").Inc()
	ss.metrics.LastSuccess.SetToCurrentTime()

	return summary, nil
}

func (ss *ScraperService) run(ctx context.Context) (Summary, error) {
	summary := Summary{OutputPath: ss.outputPath}
	start := ss.now()

	ss.log.InfoContext(ctx, "Extracting Suez service locations...")

	fetchStart := time.Now()
	doc, err := ss.fetcher.FetchMap(ctx)
	ss.metrics.FetchSeconds.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		return summary, fmt.Errorf("failed to fetch location map: %w", err)
	}

	locations, err := extract.Locations(doc)
	if err != nil {
		return summary, fmt.Errorf("failed to extract service locations: %w", err)
	}
	summary.Locations = len(locations)
	ss.metrics.RecordsExtracted.WithLabelValues("locations").Add(float64(len(locations)))
	ss.log.InfoContext(ctx, "Total service locations available", "count", len(locations))

	ss.log.InfoContext(ctx, "Extracting Suez service types...")

	types, err := extract.Types(doc)
	if err != nil {
		return summary, fmt.Errorf("failed to extract service types: %w", err)
	}
	summary.Types = len(types)
	ss.metrics.RecordsExtracted.WithLabelValues("types").Add(float64(len(types)))
	ss.log.InfoContext(ctx, "Total service types available", "count", len(types))

	summary.CollectTime = ss.now().Sub(start)
	ss.log.InfoContext(ctx, "All service types and service locations collected",
		"elapsed", summary.CollectTime.String())

	ss.log.InfoContext(ctx, "Joining service locations and service types, loading data to CSV...",
		"path", ss.outputPath)

	records := export.Merge(locations, types, ss.now())
	if err = export.WriteCSV(ss.outputPath, records); err != nil {
		return summary, fmt.Errorf("failed to export services: %w", err)
	}
	summary.Records = len(records)
	ss.metrics.RecordsExported.Add(float64(len(records)))

	ss.log.InfoContext(ctx, "Data exported to CSV", "path", ss.outputPath, "rows", len(records))

	return summary, nil
}
