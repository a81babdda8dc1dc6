// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package command

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// Record describes one successfully executed command.
type Record struct {
	Command string
	Source  string
	Value   any
	Fields  map[string]any
	Time    time.Time
}

// Log is an in-memory journal of executed commands.
type Log struct {
	mu      sync.Mutex
	records []Record
}

// NewLog creates an empty journal.
func NewLog() *Log {
	return &Log{}
}

// Append adds a record.
func (l *Log) Append(r Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
}

// Records returns a copy of the journal in execution order.
func (l *Log) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.records)
}

// Len returns the number of records.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// NewRecord builds a journal record for exec.
func NewRecord(exec *Execution, source string) Record {
	return Record{
		Command: exec.Name,
		Source:  source,
		Value:   exec.Action.Value,
		Fields:  maps.Clone(exec.Action.Fields),
		Time:    time.Now(),
	}
}
