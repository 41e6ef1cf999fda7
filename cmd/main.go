package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/suez-scraper/internal/config"
	"github.com/UnknownOlympus/suez-scraper/internal/metrics"
	"github.com/UnknownOlympus/suez-scraper/internal/service"
	"github.com/UnknownOlympus/suez-scraper/internal/suez"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const scraperTitle = "SUEZ SERVICES SCRAPER"

// main is the entry point of the application.
func main() {
	// Interrupts cancel the in-flight request.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	fmt.Print("\n\n")
	fmt.Println(figure.NewFigure(scraperTitle, "small", true).String())

	client := suez.NewClient(cfg.SourceURL, cfg.HTTPTimeout, logger)
	scraper := service.NewScraperService(logger, client, appMetrics, cfg.OutputPath)

	summary, err := scraper.Run(ctx)
	pushMetrics(ctx, logger, cfg.PushgatewayURL, reg)
	if err != nil {
		stop()
		log.Fatalf("Scraper run failed: %v", err)
	}

	fmt.Printf("Total Service Locations Available: %d\n", summary.Locations)
	fmt.Printf("Total Service Types Available: %d\n", summary.Types)
	fmt.Printf("Time spent on collecting: %s\n", summary.CollectTime)
	fmt.Printf("Data Exported to CSV: %s (%d rows)\n", summary.OutputPath, summary.Records)
	fmt.Println("Process Completed !!!")
}

// pushMetrics sends the run's metrics to the Pushgateway when one is configured.
// A failed push does not fail the run.
func pushMetrics(ctx context.Context, log *slog.Logger, url string, reg *prometheus.Registry) {
	if url == "" {
		return
	}

	if err := metrics.Push(url, reg); err != nil {
		log.WarnContext(ctx, "Metrics push failed", "url", url, "error", err)
		return
	}

	log.DebugContext(ctx, "Metrics pushed", "url", url)
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
