package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// notice-api HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ntc_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ntc_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ntc_active_requests",
		Help: "Current in-flight requests",
	})

	// workflow metrics
	NoticesSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ntc_notices_submitted_total",
		Help: "Member-submitted notices",
	})

	NoticesRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ntc_notices_recorded_total",
		Help: "Admin-recorded notices",
	})

	ReviewTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ntc_review_total",
		Help: "Review transitions by action",
	}, []string{"action"})

	AuditWriteFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ntc_audit_write_fail_total",
		Help: "Audit ledger writes that failed and were swallowed",
	})

	// webhook dispatcher metrics
	WebhookDispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ntc_webhook_dispatch_total",
		Help: "Webhook dispatch attempts",
	}, []string{"event", "outcome"})

	WebhookDispatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ntc_webhook_dispatch_duration_seconds",
		Help:    "Webhook POST duration",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	// identity cache metrics
	IdentityCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ntc_identity_cache_hits_total",
		Help: "Identity cache hits",
	})

	IdentityCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ntc_identity_cache_misses_total",
		Help: "Identity cache misses",
	})
)

func RegisterAll(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, ActiveRequests,
		NoticesSubmittedTotal, NoticesRecordedTotal, ReviewTotal, AuditWriteFailTotal,
		WebhookDispatchTotal, WebhookDispatchDuration,
		IdentityCacheHits, IdentityCacheMisses,
	)
}
