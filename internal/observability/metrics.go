// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SearchMirrorFailures counts failed best-effort writes to the search index.
	SearchMirrorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_search_mirror_failures_total",
		Help: "Total number of failed search index mirror operations",
	}, []string{"operation"})

	// SearchMirrorDrops counts mirror tasks dropped because the queue was full.
	SearchMirrorDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_search_mirror_drops_total",
		Help: "Total number of search index mirror tasks dropped due to backpressure",
	})

	// AuthRejections counts requests rejected by the authentication gate.
	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_auth_rejections_total",
		Help: "Total number of requests rejected by the authentication gate",
	}, []string{"strategy"})
)
