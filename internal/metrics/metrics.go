package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SweepsTotal counts finished sweeps by content kind and outcome
	SweepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dsnparr_sweeps_total",
		Help: "Region sweeps finished, by content kind and outcome.",
	}, []string{"kind", "outcome"})

	// RegionsChecked counts regions processed by status
	RegionsChecked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dsnparr_regions_checked_total",
		Help: "Regions processed during sweeps, by resulting status.",
	}, []string{"status"})

	// APIRequestDuration observes content API latency per endpoint
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dsnparr_content_api_request_duration_seconds",
		Help:    "Latency of content API requests, including retries.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "result"})

	// Deliveries counts report pushes by result (sent, unchanged, failed)
	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dsnparr_report_deliveries_total",
		Help: "Report deliveries attempted during sweeps, by result.",
	}, []string{"result"})

	// CatalogRegions tracks the size of each variant's region catalog
	CatalogRegions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dsnparr_catalog_regions",
		Help: "Number of regions in the current catalog, by site variant.",
	}, []string{"variant"})
)
