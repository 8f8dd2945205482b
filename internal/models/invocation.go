// Package models holds persisted record types.
package models

import "time"

// InvocationRecord is one completed tool invocation, kept for operator
// history. It is bookkeeping only and never part of the wire contract.
type InvocationRecord struct {
	ID         string `badgerhold:"key"`
	Tool       string
	Version    string
	Success    bool
	DurationMs float64
	FinishedAt time.Time
	Error      string
}
