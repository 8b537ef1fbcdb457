// Package metrics holds the business collectors of the sales dashboard.
// HTTP collectors live in the http middleware package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_added_total",
			Help: "Total number of leads added to the lead list",
		},
		[]string{"source"},
	)

	aiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI completion requests",
		},
		[]string{"type", "outcome"},
	)

	prospectSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prospect_searches_total",
			Help: "Total number of prospecting searches",
		},
		[]string{"outcome"},
	)

	candidatesExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidates_extracted_total",
			Help: "Total number of lead candidates extracted by the model",
		},
	)

	searchCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_total",
			Help: "Search cache lookups by result",
		},
		[]string{"result"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

func RecordLeadAdded(source string) {
	leadsAdded.WithLabelValues(source).Inc()
}

func RecordAIRequest(kind, outcome string) {
	aiRequests.WithLabelValues(kind, outcome).Inc()
}

func RecordProspectSearch(outcome string) {
	prospectSearches.WithLabelValues(outcome).Inc()
}

func RecordCandidatesExtracted(n int) {
	candidatesExtracted.Add(float64(n))
}

func RecordSearchCache(result string) {
	searchCache.WithLabelValues(result).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
