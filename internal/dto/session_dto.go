package dto

import (
	"encoding/json"
	"time"
)

// CreateSessionRequest creates a new, empty session which becomes active.
type CreateSessionRequest struct {
	Name       string `json:"name" binding:"required"`
	AccessCode string `json:"accessCode"`
}

type RenameSessionRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateAccessCodeRequest accepts any string; empty clears the code.
type UpdateAccessCodeRequest struct {
	AccessCode string `json:"accessCode"`
}

// SetActiveSessionRequest selects the active session. A null/absent
// SessionID clears the active session.
type SetActiveSessionRequest struct {
	SessionID *string `json:"sessionId"`
}

// ImportSessionRequest wraps an exported payload. Payload is kept raw so the
// manager can apply its own shape detection and validation.
type ImportSessionRequest struct {
	Payload         json.RawMessage `json:"payload" binding:"required"`
	ReplaceExisting bool            `json:"replaceExisting"`
	TargetSessionID string          `json:"targetSessionId"`
}

// SessionImport is the session shape accepted by import: the id and
// createdAt are preserved when present, everything else is re-validated.
type SessionImport struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	AccessCode string          `json:"accessCode"`
	CreatedAt  *time.Time      `json:"createdAt"`
	Questions  []QuestionDraft `json:"questions"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
