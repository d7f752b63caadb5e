package service

import (
	"encoding/json"
	"time"

	"github.com/lshigami/Polliwog/internal/apperr"
	"github.com/lshigami/Polliwog/internal/dto"
	"github.com/lshigami/Polliwog/internal/model"
	"github.com/rs/zerolog/log"
)

// exportVersion is the envelope version written by ExportSession and accepted
// by ImportSession.
const exportVersion = 1

type exportEnvelope struct {
	Version int           `json:"version"`
	Session model.Session `json:"session"`
}

// storedSession/storedState mirror the persistence format loosely enough to
// survive malformed historical data; upgrade re-validates everything.
type storedSession struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	AccessCode        string              `json:"accessCode"`
	CreatedAt         *time.Time          `json:"createdAt"`
	UpdatedAt         *time.Time          `json:"updatedAt"`
	CurrentQuestionID string              `json:"currentQuestionId"`
	IsPolling         bool                `json:"isPolling"`
	Questions         []dto.QuestionDraft `json:"questions"`
}

type storedState struct {
	Sessions        []storedSession `json:"sessions"`
	ActiveSessionID string          `json:"activeSessionId"`
	LastUpdated     *time.Time      `json:"lastUpdated"`
}

// upgradeState re-validates persisted state into the current model. A
// question that fails validation is dropped with a warning; one bad record
// never prevents the rest of a session from loading.
func upgradeState(stored storedState) model.State {
	state := model.DefaultState()
	state.ActiveSessionID = stored.ActiveSessionID
	if stored.LastUpdated != nil {
		state.LastUpdated = *stored.LastUpdated
	} else {
		state.LastUpdated = time.Now()
	}

	for _, rawSession := range stored.Sessions {
		session := upgradeSession(rawSession)
		state.Sessions = append(state.Sessions, session)
	}
	return state
}

func upgradeSession(raw storedSession) model.Session {
	now := time.Now()

	questions := []model.Question{}
	for _, draft := range raw.Questions {
		question, err := sanitizeQuestion(draft, len(questions))
		if err != nil {
			log.Warn().Err(err).Str("sessionId", raw.ID).Msg("Skipping invalid question during upgrade")
			continue
		}
		questions = append(questions, question)
	}

	id := raw.ID
	if id == "" {
		id = newID("session")
	}
	name := normalizeString(raw.Name)
	if name == "" {
		name = "Untitled Session"
	}
	createdAt := now
	if raw.CreatedAt != nil && !raw.CreatedAt.IsZero() {
		createdAt = *raw.CreatedAt
	}

	session := model.Session{
		ID:                id,
		Name:              name,
		AccessCode:        normalizeString(raw.AccessCode),
		CreatedAt:         createdAt,
		UpdatedAt:         now,
		CurrentQuestionID: raw.CurrentQuestionID,
		IsPolling:         raw.IsPolling,
		Questions:         questions,
	}

	// dropping a question may have orphaned the current-question reference
	if session.CurrentQuestionID != "" && session.QuestionIndex(session.CurrentQuestionID) == -1 {
		session.CurrentQuestionID = ""
		session.IsPolling = false
	}
	if session.CurrentQuestionID == "" {
		session.IsPolling = false
	}
	return session
}

// ExportSession serializes one session as a pretty-printed
// {version: 1, session} document.
func (m *sessionManager) ExportSession(sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.getSessionCopy(sessionID)
	if session == nil {
		return "", apperr.NewNotFound("session", sessionID)
	}

	raw, err := json.MarshalIndent(exportEnvelope{Version: exportVersion, Session: *session}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ImportOptions controls where imported questions land. With a
// TargetSessionID the questions are appended to (or replace) that session's
// list; without one a new session is created and made active.
type ImportOptions struct {
	ReplaceExisting bool
	TargetSessionID string
}

// ImportSession accepts either a single exported {version, session} document
// or a {sessions: [...]} batch. Imported questions are never trusted: every
// one is re-validated and renumbered from zero, and invalid ones are dropped
// with a warning rather than failing the whole import.
func (m *sessionManager) ImportSession(payload []byte, opts ImportOptions) ([]model.Session, error) {
	var probe struct {
		Session  json.RawMessage   `json:"session"`
		Sessions []json.RawMessage `json:"sessions"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, apperr.NewValidation("Invalid JSON payload")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(probe.Session) > 0 && string(probe.Session) != "null" {
		imported, err := m.importSessionRaw(probe.Session, opts)
		if err != nil {
			return nil, err
		}
		return []model.Session{*imported}, nil
	}

	if probe.Sessions != nil {
		results := make([]model.Session, 0, len(probe.Sessions))
		for _, rawSession := range probe.Sessions {
			imported, err := m.importSessionRaw(rawSession, opts)
			if err != nil {
				return nil, err
			}
			results = append(results, *imported)
		}
		return results, nil
	}

	return nil, apperr.NewValidation("Unsupported import format")
}

func (m *sessionManager) importSessionRaw(raw json.RawMessage, opts ImportOptions) (*model.Session, error) {
	var data dto.SessionImport
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, apperr.NewValidation("Unsupported import format")
	}
	return m.importSessionObject(data, opts)
}

func (m *sessionManager) importSessionObject(data dto.SessionImport, opts ImportOptions) (*model.Session, error) {
	sanitized := []model.Question{}
	for _, draft := range data.Questions {
		question, err := sanitizeQuestion(draft, len(sanitized))
		if err != nil {
			log.Warn().Err(err).Str("sessionName", data.Name).Msg("Skipping invalid question during import")
			continue
		}
		sanitized = append(sanitized, question)
	}

	if opts.TargetSessionID != "" {
		err := m.updateSession(opts.TargetSessionID, func(session *model.Session) error {
			if opts.ReplaceExisting {
				session.Questions = sanitized
			} else {
				session.Questions = append(session.Questions, sanitized...)
			}
			session.RenumberQuestions()
			if session.CurrentQuestionID != "" && session.QuestionIndex(session.CurrentQuestionID) == -1 {
				session.CurrentQuestionID = ""
				session.IsPolling = false
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return m.getSessionCopy(opts.TargetSessionID), nil
	}

	now := time.Now()
	id := data.ID
	if id == "" || m.sessionIndex(id) != -1 {
		id = newID("session")
	}
	name := normalizeString(data.Name)
	if name == "" {
		name = "Imported Session"
	}
	createdAt := now
	if data.CreatedAt != nil && !data.CreatedAt.IsZero() {
		createdAt = *data.CreatedAt
	}

	session := model.Session{
		ID:         id,
		Name:       name,
		AccessCode: normalizeString(data.AccessCode),
		CreatedAt:  createdAt,
		UpdatedAt:  now,
		Questions:  sanitized,
	}

	m.state.Sessions = append(m.state.Sessions, session)
	m.state.ActiveSessionID = session.ID
	if err := m.persist(); err != nil {
		return nil, err
	}
	return m.getSessionCopy(session.ID), nil
}
