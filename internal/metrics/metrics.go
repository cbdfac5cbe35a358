// Package metrics exposes prometheus instruments for upstream calls, the
// opportunity cache and the risk lookup cascade.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service's collectors with a private prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	NormalizedTotal  prometheus.Counter
	CacheLookups     *prometheus.CounterVec
	ResolverAttempts *prometheus.CounterVec
}

// NewRegistry creates a Registry with every collector registered.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	upstreamRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_upstream_requests_total",
		Help: "Requests issued to SAP CRM by operation and outcome.",
	}, []string{"operation", "outcome"})
	upstreamLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crm_upstream_request_seconds",
		Help:    "Latency of SAP CRM requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	normalized := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crm_opportunities_normalized_total",
		Help: "Opportunity records produced by the normalizer.",
	})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "opportunity_cache_lookups_total",
		Help: "Opportunity cache lookups by result.",
	}, []string{"result"})
	resolverAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_resolver_attempts_total",
		Help: "Risk lookup strategy attempts by strategy and outcome (hit, empty, error).",
	}, []string{"strategy", "outcome"})

	r.MustRegister(
		upstreamRequests, upstreamLatency, normalized, cacheLookups, resolverAttempts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		reg:              r,
		UpstreamRequests: upstreamRequests,
		UpstreamLatency:  upstreamLatency,
		NormalizedTotal:  normalized,
		CacheLookups:     cacheLookups,
		ResolverAttempts: resolverAttempts,
	}
}

// Handler serves the registry in the prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for in-process inspection.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
