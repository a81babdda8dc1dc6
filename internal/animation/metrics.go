// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package animation

import "github.com/prometheus/client_golang/prometheus"

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Tweens counts scheduled animations by name and status.
var Tweens = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stagecraft_animation_tweens_total",
		Help: "Total number of animation actions handled",
	},
	[]string{"animation", "status"},
)

// RegisterMetrics registers animation metrics with the given registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Tweens)
}

func recordTween(name, status string) {
	Tweens.WithLabelValues(name, status).Inc()
}
