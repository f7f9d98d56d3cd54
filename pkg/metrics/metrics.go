package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "datastore", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "datastore", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	DocumentsInserted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "datastore", Name: "documents_inserted_total", Help: "Number of documents inserted."},
	)
	DocumentsListed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "datastore",
			Name:      "documents_listed",
			Help:      "Number of documents returned per list call.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "datastore", Name: "store_errors_total", Help: "Failed store operations by operation."},
		[]string{"op"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(DocumentsInserted)
	reg.MustRegister(DocumentsListed)
	reg.MustRegister(StoreErrors)
}
