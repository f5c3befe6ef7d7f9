package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studylist_client",
			Name:      "requests_total",
			Help:      "API calls that completed with a 2xx response.",
		},
		[]string{"op"},
	)

	requestsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studylist_client",
			Name:      "request_failures_total",
			Help:      "API calls that failed in transport or returned an error status.",
		},
		[]string{"op"},
	)

	provisionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studylist_client",
			Name:      "auto_provisions_total",
			Help:      "Accounts created by the fetch-miss provisioning path.",
		},
	)
)
