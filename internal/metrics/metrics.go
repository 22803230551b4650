// Package metrics holds the Prometheus collectors shared by the HTTP layer,
// the services and the LLM client. Collectors register with the default
// registry, which /metrics serves through promhttp.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "job_tracker"

var (
	// HTTPRequests counts handled requests.
	// Labels: method, route (chi route pattern), status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	// HTTPDuration measures request latency.
	// Labels: method, route
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "route"})

	// LLMCalls counts model requests.
	// Labels: purpose (assistant, invoice_extract, invoice_review, duplicate_meta), outcome (ok, error, rate_limited)
	LLMCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "llm",
		Name:      "calls_total",
		Help:      "Total language model calls by purpose and outcome",
	}, []string{"purpose", "outcome"})

	// LLMDuration measures model round-trip latency.
	// Labels: purpose
	LLMDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "llm",
		Name:      "call_duration_seconds",
		Help:      "Language model call latency in seconds",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"purpose"})

	// AssistantToolCalls counts tool executions by the LLM assistant.
	// Labels: tool, outcome (ok, denied, error, unknown)
	AssistantToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "assistant",
		Name:      "tool_calls_total",
		Help:      "Total assistant tool executions by tool and outcome",
	}, []string{"tool", "outcome"})

	// InvoiceUpserts counts supplier invoice writes.
	// Labels: source (import, sync), outcome (new, updated, error)
	InvoiceUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "invoices",
		Name:      "upserts_total",
		Help:      "Supplier invoice upserts by source and outcome",
	}, []string{"source", "outcome"})

	// SnapshotsWritten counts versions saved to the job version log.
	SnapshotsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "snapshots_total",
		Help:      "Job snapshots written to the version log",
	})

	// DuplicateChecks counts duplicate detector outcomes.
	// Labels: match_type (exact, near, none)
	DuplicateChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "documents",
		Name:      "duplicate_checks_total",
		Help:      "Duplicate checks by match type",
	}, []string{"match_type"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
