package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe to use through a nil pointer; every call is then dropped.
type Metrics struct {
	registry *prometheus.Registry

	onboardings  *prometheus.CounterVec
	updates      *prometheus.CounterVec
	tagsCreated  *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		onboardings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mentorlink_onboarding_submissions_total",
			Help: "Onboarding submissions by role and outcome.",
		}, []string{"role", "outcome"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mentorlink_profile_updates_total",
			Help: "Profile edits by outcome.",
		}, []string{"outcome"}),
		tagsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mentorlink_tags_created_total",
			Help: "Dictionary tags created, by kind.",
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mentorlink_profile_cache_lookups_total",
			Help: "Profile cache lookups by result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mentorlink_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mentorlink_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.onboardings, m.updates, m.tagsCreated, m.cacheLookups, m.requests, m.duration,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Onboarding(role, outcome string) {
	if m == nil {
		return
	}
	m.onboardings.WithLabelValues(role, outcome).Inc()
}

func (m *Metrics) ProfileUpdate(outcome string) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TagsCreated(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.tagsCreated.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
