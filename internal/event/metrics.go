// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package event

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status constants for event metrics.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusNotFound = "not_found"
)

// Route labels for action metrics.
const (
	RouteAnimation = "animation"
	RouteCommand   = "command"
)

// Registrations counts attached listeners by level.
// Use RegisterMetrics to register this with a Prometheus registry.
var Registrations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stagecraft_event_registrations_total",
		Help: "Total number of event listeners attached",
	},
	[]string{"level"},
)

// Dispatches counts programmatic dispatches.
// Use RegisterMetrics to register this with a Prometheus registry.
var Dispatches = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stagecraft_event_dispatches_total",
		Help: "Total number of programmatic event dispatches",
	},
	[]string{"level", "status"},
)

// Actions counts handled actions by route.
// Use RegisterMetrics to register this with a Prometheus registry.
var Actions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stagecraft_event_actions_total",
		Help: "Total number of actions routed to a handler",
	},
	[]string{"route", "status"},
)

// ActionDuration observes how long handlers take per route.
// Use RegisterMetrics to register this with a Prometheus registry.
var ActionDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "stagecraft_event_action_duration_seconds",
		Help:    "Action handler duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route"},
)

// RegisterMetrics registers event package metrics with the given registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Registrations)
	reg.MustRegister(Dispatches)
	reg.MustRegister(Actions)
	reg.MustRegister(ActionDuration)
}

func recordRegistration(level Level) {
	Registrations.WithLabelValues(level.String()).Inc()
}

func recordDispatch(level, status string) {
	Dispatches.WithLabelValues(level, status).Inc()
}

func recordAction(route, status string, d time.Duration) {
	Actions.WithLabelValues(route, status).Inc()
	ActionDuration.WithLabelValues(route).Observe(d.Seconds())
}
