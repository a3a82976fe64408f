package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion metrics.
var (
	ConversionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "p2h_conversions_total",
		Help: "Total IPA to Hangul conversions",
	})

	UnknownSymbolsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "p2h_unknown_symbols_total",
		Help: "Phonetic symbols skipped because no rule matched them",
	})

	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "p2h_lookups_total",
		Help: "Pronunciation lookups by source and result",
	}, []string{"source", "result"})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "p2h_cache_lookups_total",
		Help: "Pronunciation cache lookups by result",
	}, []string{"result"})
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "p2h_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "p2h_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "p2h_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})
)

// Remote pronunciation source metrics.
var (
	DictAPICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "p2h_dict_api_calls_total",
		Help: "Online dictionary API calls by endpoint and result",
	}, []string{"endpoint", "result"})

	DictAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "p2h_dict_api_duration_seconds",
		Help:    "Online dictionary API call duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "p2h_llm_request_duration_seconds",
		Help:    "LLM pronunciation request duration in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"provider"})
)

// Database pool metrics (gauges updated periodically).
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "p2h_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "p2h_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "p2h_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})

	DBPoolMaxConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "p2h_db_pool_max_conns",
		Help: "Max connections configured for the pool",
	})
)
