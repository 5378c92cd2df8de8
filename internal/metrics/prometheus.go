package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baraka_chat_requests_total",
			Help: "Chat turns answered, by reply source",
		},
		[]string{"source"},
	)

	ChatDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baraka_chat_duration_seconds",
			Help:    "Chat turn processing duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"source"},
	)

	RoutingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baraka_routing_total",
			Help: "Complaint routing decisions, by method",
		},
		[]string{"method", "department"},
	)

	ReplySimilarity = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "baraka_reply_similarity",
			Help:    "Similarity score of the winning FAQ match",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	LLMFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baraka_llm_fallback_total",
			Help: "Remote fallback invocations, by outcome",
		},
		[]string{"status"},
	)

	Translations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baraka_translation_total",
			Help: "Translation calls, by direction",
		},
		[]string{"direction"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baraka_cache_hits_total",
			Help: "Reply cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baraka_cache_misses_total",
			Help: "Reply cache misses",
		},
		[]string{"cache_type"},
	)

	ComplaintsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baraka_complaints_total",
			Help: "Complaint tickets created, by routed department",
		},
		[]string{"department"},
	)
)

func Init() {
	prometheus.MustRegister(ChatRequests)
	prometheus.MustRegister(ChatDuration)
	prometheus.MustRegister(RoutingDecisions)
	prometheus.MustRegister(ReplySimilarity)
	prometheus.MustRegister(LLMFallbacks)
	prometheus.MustRegister(Translations)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(ComplaintsCreated)
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
