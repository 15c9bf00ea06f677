package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "building_energy"

// Metrics holds the Prometheus collectors of the API.
type Metrics struct {
	CacheLookups      *prometheus.CounterVec // labels: result={hit,miss,error}
	AnalysesComputed  prometheus.Counter
	AnalysisDuration  prometheus.Histogram
	DesignMutations   *prometheus.CounterVec // labels: op={create,update,delete,delete_all}
	ReportsGenerated  *prometheus.CounterVec // labels: outcome={success,error}
	LLMRequests       *prometheus.CounterVec // labels: outcome={success,error,skipped}
	EventsPublished   *prometheus.CounterVec // labels: outcome={success,error}
	ReportsPruned     prometheus.Counter
	HTTPRequestsTotal *prometheus.CounterVec // labels: method, route, status
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_cache_lookups_total",
			Help:      "Analysis cache lookups by result.",
		}, []string{"result"}),
		AnalysesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_computed_total",
			Help:      "Design/city analyses computed rather than served from cache.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_request_duration_seconds",
			Help:      "Duration of a multi-building analysis request.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		DesignMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "design_mutations_total",
			Help:      "Building design writes by operation.",
		}, []string{"op"}),
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "PDF reports generated by outcome.",
		}, []string{"outcome"}),
		LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Narrative requests to the LLM by outcome.",
		}, []string{"outcome"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "design_events_published_total",
			Help:      "Design change events written to Kafka by outcome.",
		}, []string{"outcome"}),
		ReportsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_pruned_total",
			Help:      "Reports removed by the retention job.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.CacheLookups,
		m.AnalysesComputed,
		m.AnalysisDuration,
		m.DesignMutations,
		m.ReportsGenerated,
		m.LLMRequests,
		m.EventsPublished,
		m.ReportsPruned,
		m.HTTPRequestsTotal,
	)

	return m
}

// NewMetricsForTesting registers against a private registry to avoid
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
