// Package metrics provides Prometheus metrics for the storefront.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GateDecisions counts route guard outcomes.
	GateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "gate_decisions_total",
			Help:      "Route guard decisions by route and outcome",
		},
		[]string{"route", "decision"},
	)

	// CartActions counts dispatched cart actions.
	CartActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "cart_actions_total",
			Help:      "Cart actions dispatched",
		},
		[]string{"action"},
	)

	// CartPersistFailures counts cart writes that did not reach storage.
	CartPersistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "cart_persist_failures_total",
			Help:      "Cart storage writes that failed",
		},
		[]string{"action"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	BrowsingContexts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "storefront",
			Name:      "browsing_contexts",
			Help:      "Browsing contexts held in memory",
		},
	)
)
