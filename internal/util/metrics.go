package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsNormalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reseed_products_normalized_total",
		Help: "Total number of raw records normalized into canonical products",
	})

	ProductsWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reseed_products_written_total",
		Help: "Total number of products committed to the store",
	})

	ProductsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reseed_products_failed_total",
		Help: "Total number of products excluded from the write set",
	}, []string{"reason"})

	BatchesCommittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reseed_batches_committed_total",
		Help: "Total number of write batches committed",
	})

	BatchesFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reseed_batches_failed_total",
		Help: "Total number of write batches that failed to commit",
	})

	DocumentsClearedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reseed_documents_cleared_total",
		Help: "Total number of documents deleted during the clearing stage",
	}, []string{"collection"})

	VendorsUnresolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reseed_vendors_unresolved_total",
		Help: "Total number of source files skipped due to an unresolved vendor",
	})

	ResolverCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reseed_resolver_cache_hits_total",
		Help: "Total number of reference lookups served from the per-run cache",
	})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reseed_run_duration_seconds",
		Help:    "Duration of full reseed runs",
		Buckets: prometheus.DefBuckets,
	})

	BatchCommitLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reseed_batch_commit_latency_seconds",
		Help:    "Latency of individual batch commits",
		Buckets: prometheus.DefBuckets,
	})
)
