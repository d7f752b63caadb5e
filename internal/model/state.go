package model

import "time"

// State is the root of the instructor state tree. One State is persisted as a
// single record under the configured storage key; sessions are identified by
// id, not by position.
type State struct {
	Sessions        []Session `json:"sessions"`
	ActiveSessionID string    `json:"activeSessionId,omitempty"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// DefaultState returns the empty state a manager starts from when the store
// holds nothing usable.
func DefaultState() State {
	return State{Sessions: []Session{}}
}
