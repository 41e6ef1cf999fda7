package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// JobName is the Pushgateway job label used for scraper runs.
const JobName = "suez_scraper"

type Metrics struct {
	FetchSeconds     prometheus.Histogram
	RecordsExtracted *prometheus.CounterVec
	RecordsExported  prometheus.Counter
	Runs             *prometheus.CounterVec
	LastSuccess      prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		FetchSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "suez_fetch_duration_seconds",
			Help:    "Duration of the request to the location map endpoint.",
			Buckets: prometheus.DefBuckets,
		}),
		RecordsExtracted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "suez_records_extracted_total",
			Help: "Total number of records extracted from the map document.",
		}, []string{"collection"}),
		RecordsExported: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "suez_records_exported_total",
			Help: "Total number of merged rows written to CSV.",
		}),
		Runs: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "suez_runs_total",
			Help: "Total number of scraper runs by outcome.",
		}, []string{"status"}),
		LastSuccess: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "suez_last_success_timestamp_seconds",
			Help: "Unix time of the last successful export.",
		}),
	}
}

// Push sends everything gathered by gatherer to the Pushgateway at url.
func Push(url string, gatherer prometheus.Gatherer) error {
	if err := push.New(url, JobName).Gatherer(gatherer).Push(); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}

	return nil
}
