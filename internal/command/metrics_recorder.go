// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package command

import "time"

// metricsRecorder tracks command execution metrics for a single dispatch.
type metricsRecorder struct {
	startTime time.Time
	name      string
	source    string
	status    string
}

func newMetricsRecorder(name string) *metricsRecorder {
	return &metricsRecorder{startTime: time.Now(), name: name, status: StatusSuccess}
}

// record writes the collected metrics if a command name is available.
// Unknown commands are not timed.
func (m *metricsRecorder) record() {
	if m.name == "" {
		return
	}
	RecordCommandExecution(m.name, m.source, m.status)
	if m.status != StatusNotFound {
		RecordCommandDuration(m.name, m.source, time.Since(m.startTime))
	}
}
