package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Polliwog/config"
	"github.com/lshigami/Polliwog/internal/apperr"
	"github.com/lshigami/Polliwog/internal/dto"
	"github.com/lshigami/Polliwog/internal/model"
	"github.com/lshigami/Polliwog/internal/storage"
	"github.com/rs/zerolog/log"
)

// SessionManager owns the persisted instructor state tree: every polling
// session, its ordered questions, and which session/question is live. Every
// mutating call validates first, mutates the in-memory tree, and writes the
// complete state back to the store before returning, so the store always
// reflects the most recent completed mutation. Accessors hand out deep
// copies; callers never hold references into the live tree.
type SessionManager interface {
	GetState() model.State
	GetSessions() []model.Session
	GetSessionByID(sessionID string) *model.Session
	GetActiveSession() *model.Session

	CreateSession(req dto.CreateSessionRequest) (*model.Session, error)
	RenameSession(sessionID, name string) (*model.Session, error)
	UpdateAccessCode(sessionID, accessCode string) (*model.Session, error)
	DeleteSession(sessionID string) (bool, error)
	SetActiveSession(sessionID *string) (*model.Session, error)

	AddQuestion(sessionID string, draft dto.QuestionDraft) (*model.Question, error)
	UpdateQuestion(sessionID, questionID string, updates dto.QuestionUpdate) (*model.Question, error)
	RemoveQuestion(sessionID, questionID string) (bool, error)
	ReorderQuestion(sessionID, questionID string, targetIndex int) (*model.Question, error)
	SetCurrentQuestion(sessionID string, questionID *string) (*model.Question, error)
	TogglePolling(sessionID string, isPolling bool) (*model.Session, error)
	GetQuestion(sessionID, questionID string) *model.Question
	GetNextQuestion(sessionID string) *model.Question
	GetPreviousQuestion(sessionID string) *model.Question

	ExportSession(sessionID string) (string, error)
	ImportSession(payload []byte, opts ImportOptions) ([]model.Session, error)
}

type sessionManager struct {
	store storage.Store
	key   string

	// mu serializes every load-mutate-persist body so two goroutines cannot
	// interleave between mutation and write-back.
	mu    sync.Mutex
	state model.State
}

// NewSessionManager loads state from the given store, falling back to an
// in-memory store when none is supplied. Corrupt or missing stored state is
// downgraded to the empty default rather than failing construction.
func NewSessionManager(store storage.Store, cfg *config.Config) SessionManager {
	if store == nil {
		log.Warn().Msg("No state store supplied, using in-memory store")
		store = storage.NewMemoryStore()
	}

	key := config.DefaultStorageKey
	if cfg != nil && cfg.Storage.Key != "" {
		key = cfg.Storage.Key
	}

	m := &sessionManager{store: store, key: key}
	m.state = m.loadState()
	return m
}

func (m *sessionManager) loadState() model.State {
	raw, ok, err := m.store.Get(m.key)
	if err != nil {
		log.Warn().Err(err).Str("key", m.key).Msg("Failed to read stored state, resetting")
		return model.DefaultState()
	}
	if !ok || raw == "" {
		return model.DefaultState()
	}

	var stored storedState
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warn().Err(err).Str("key", m.key).Msg("Stored state is unreadable, resetting")
		return model.DefaultState()
	}
	return upgradeState(stored)
}

// persist stamps lastUpdated and writes the full state tree back to the
// store. Callers hold mu.
func (m *sessionManager) persist() error {
	m.state.LastUpdated = time.Now()
	raw, err := json.Marshal(m.state)
	if err != nil {
		return fmt.Errorf("serialize state: %w", err)
	}
	if err := m.store.Set(m.key, string(raw)); err != nil {
		log.Error().Err(err).Str("key", m.key).Msg("Failed to persist state")
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

func (m *sessionManager) sessionIndex(sessionID string) int {
	for i := range m.state.Sessions {
		if m.state.Sessions[i].ID == sessionID {
			return i
		}
	}
	return -1
}

// updateSession runs mutate against the live session, stamps updatedAt and
// persists. mutate must validate before touching the session so a failed call
// leaves state unchanged.
func (m *sessionManager) updateSession(sessionID string, mutate func(session *model.Session) error) error {
	index := m.sessionIndex(sessionID)
	if index == -1 {
		return apperr.NewNotFound("session", sessionID)
	}

	session := &m.state.Sessions[index]
	if err := mutate(session); err != nil {
		return err
	}
	session.UpdatedAt = time.Now()
	return m.persist()
}

func cloneSession(src *model.Session) *model.Session {
	out := &model.Session{}
	if err := copier.CopyWithOption(out, src, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Str("sessionId", src.ID).Msg("Failed to deep copy session")
	}
	if out.Questions == nil {
		out.Questions = []model.Question{}
	}
	return out
}

func cloneQuestion(src *model.Question) *model.Question {
	out := &model.Question{}
	if err := copier.CopyWithOption(out, src, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Str("questionId", src.ID).Msg("Failed to deep copy question")
	}
	return out
}

func (m *sessionManager) GetState() model.State {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := model.State{
		ActiveSessionID: m.state.ActiveSessionID,
		LastUpdated:     m.state.LastUpdated,
		Sessions:        make([]model.Session, 0, len(m.state.Sessions)),
	}
	for i := range m.state.Sessions {
		out.Sessions = append(out.Sessions, *cloneSession(&m.state.Sessions[i]))
	}
	return out
}

func (m *sessionManager) GetSessions() []model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := make([]model.Session, 0, len(m.state.Sessions))
	for i := range m.state.Sessions {
		sessions = append(sessions, *cloneSession(&m.state.Sessions[i]))
	}
	return sessions
}

func (m *sessionManager) GetSessionByID(sessionID string) *model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getSessionCopy(sessionID)
}

// getSessionCopy is the lock-free variant for callers already holding mu.
func (m *sessionManager) getSessionCopy(sessionID string) *model.Session {
	index := m.sessionIndex(sessionID)
	if index == -1 {
		return nil
	}
	return cloneSession(&m.state.Sessions[index])
}

func (m *sessionManager) GetActiveSession() *model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.ActiveSessionID == "" {
		return nil
	}
	return m.getSessionCopy(m.state.ActiveSessionID)
}

func (m *sessionManager) CreateSession(req dto.CreateSessionRequest) (*model.Session, error) {
	name := normalizeString(req.Name)
	if name == "" {
		return nil, apperr.NewValidation("Session name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	session := model.Session{
		ID:         newID("session"),
		Name:       name,
		AccessCode: normalizeString(req.AccessCode),
		CreatedAt:  now,
		UpdatedAt:  now,
		Questions:  []model.Question{},
	}

	m.state.Sessions = append(m.state.Sessions, session)
	m.state.ActiveSessionID = session.ID
	if err := m.persist(); err != nil {
		return nil, err
	}
	return m.getSessionCopy(session.ID), nil
}

func (m *sessionManager) RenameSession(sessionID, name string) (*model.Session, error) {
	normalized := normalizeString(name)
	if normalized == "" {
		return nil, apperr.NewValidation("Session name cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.updateSession(sessionID, func(session *model.Session) error {
		session.Name = normalized
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.getSessionCopy(sessionID), nil
}

func (m *sessionManager) UpdateAccessCode(sessionID, accessCode string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.updateSession(sessionID, func(session *model.Session) error {
		session.AccessCode = normalizeString(accessCode)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.getSessionCopy(sessionID), nil
}

// DeleteSession removes a session. Deleting the active session promotes the
// first remaining session, or leaves no active session. Unknown ids are a
// no-op, not an error.
func (m *sessionManager) DeleteSession(sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	index := m.sessionIndex(sessionID)
	if index == -1 {
		return false, nil
	}

	m.state.Sessions = append(m.state.Sessions[:index], m.state.Sessions[index+1:]...)
	if m.state.ActiveSessionID == sessionID {
		m.state.ActiveSessionID = ""
		if len(m.state.Sessions) > 0 {
			m.state.ActiveSessionID = m.state.Sessions[0].ID
		}
	}
	if err := m.persist(); err != nil {
		return false, err
	}
	return true, nil
}

func (m *sessionManager) SetActiveSession(sessionID *string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionID == nil {
		m.state.ActiveSessionID = ""
		if err := m.persist(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if m.sessionIndex(*sessionID) == -1 {
		return nil, apperr.NewNotFound("session", *sessionID)
	}

	m.state.ActiveSessionID = *sessionID
	if err := m.persist(); err != nil {
		return nil, err
	}
	return m.getSessionCopy(*sessionID), nil
}

func (m *sessionManager) AddQuestion(sessionID string, draft dto.QuestionDraft) (*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var createdID string
	err := m.updateSession(sessionID, func(session *model.Session) error {
		question, err := sanitizeQuestion(draft, len(session.Questions))
		if err != nil {
			return err
		}
		session.Questions = append(session.Questions, question)
		createdID = question.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.getQuestionCopy(sessionID, createdID), nil
}

// UpdateQuestion merges updates onto the stored question and re-validates the
// merged result in full before committing, so a partial edit can never leave
// the question violating its type rules.
func (m *sessionManager) UpdateQuestion(sessionID, questionID string, updates dto.QuestionUpdate) (*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.updateSession(sessionID, func(session *model.Session) error {
		index := session.QuestionIndex(questionID)
		if index == -1 {
			return apperr.NewNotFound("question", questionID)
		}

		draft := draftFromQuestion(session.Questions[index])
		if updates.Type != nil {
			draft.Type = *updates.Type
		}
		if updates.Prompt != nil {
			draft.Prompt = *updates.Prompt
		}
		if updates.Options != nil {
			draft.Options = *updates.Options
		}
		if updates.Explanation != nil {
			draft.Explanation = *updates.Explanation
		}
		if updates.Notes != nil {
			draft.Notes = *updates.Notes
		}
		if updates.Reference != nil {
			draft.Reference = *updates.Reference
		}
		if updates.Tags != nil {
			draft.Tags = *updates.Tags
		}
		if updates.Media != nil {
			draft.Media = *updates.Media
		}

		sanitized, err := sanitizeQuestion(draft, session.Questions[index].Order)
		if err != nil {
			return err
		}
		session.Questions[index] = sanitized
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.getQuestionCopy(sessionID, questionID), nil
}

// RemoveQuestion deletes a question and renumbers its siblings. Removing the
// current question also stops polling. Unknown question ids are a no-op.
func (m *sessionManager) RemoveQuestion(sessionID, questionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := false
	err := m.updateSession(sessionID, func(session *model.Session) error {
		index := session.QuestionIndex(questionID)
		if index == -1 {
			return nil
		}

		session.Questions = append(session.Questions[:index], session.Questions[index+1:]...)
		session.RenumberQuestions()
		if session.CurrentQuestionID == questionID {
			session.CurrentQuestionID = ""
			session.IsPolling = false
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// ReorderQuestion moves a question to targetIndex among its siblings and
// renumbers. Out-of-range targets clamp to the nearest end instead of
// erroring.
func (m *sessionManager) ReorderQuestion(sessionID, questionID string, targetIndex int) (*model.Question, error) {
	if targetIndex < 0 {
		targetIndex = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.updateSession(sessionID, func(session *model.Session) error {
		index := session.QuestionIndex(questionID)
		if index == -1 {
			return apperr.NewNotFound("question", questionID)
		}

		question := session.Questions[index]
		session.Questions = append(session.Questions[:index], session.Questions[index+1:]...)

		bounded := targetIndex
		if bounded > len(session.Questions) {
			bounded = len(session.Questions)
		}
		session.Questions = append(session.Questions[:bounded], append([]model.Question{question}, session.Questions[bounded:]...)...)
		session.RenumberQuestions()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.getQuestionCopy(sessionID, questionID), nil
}

// SetCurrentQuestion makes a question live; starting a question always begins
// polling. A nil questionID clears the current question and stops polling.
func (m *sessionManager) SetCurrentQuestion(sessionID string, questionID *string) (*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.updateSession(sessionID, func(session *model.Session) error {
		if questionID == nil {
			session.CurrentQuestionID = ""
			session.IsPolling = false
			return nil
		}

		if session.QuestionIndex(*questionID) == -1 {
			return apperr.NewNotFound("question", *questionID)
		}
		session.CurrentQuestionID = *questionID
		session.IsPolling = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if questionID == nil {
		return nil, nil
	}
	return m.getQuestionCopy(sessionID, *questionID), nil
}

// TogglePolling sets the polling flag. Turning polling off clears the
// current question; turning it on requires one, since a live poll without a
// question is not a representable state.
func (m *sessionManager) TogglePolling(sessionID string, isPolling bool) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.updateSession(sessionID, func(session *model.Session) error {
		if isPolling && session.CurrentQuestionID == "" {
			return apperr.NewValidation("Cannot start polling without a current question")
		}
		session.IsPolling = isPolling
		if !isPolling {
			session.CurrentQuestionID = ""
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.getSessionCopy(sessionID), nil
}

func (m *sessionManager) GetQuestion(sessionID, questionID string) *model.Question {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getQuestionCopy(sessionID, questionID)
}

func (m *sessionManager) getQuestionCopy(sessionID, questionID string) *model.Question {
	index := m.sessionIndex(sessionID)
	if index == -1 {
		return nil
	}
	question := m.state.Sessions[index].QuestionByID(questionID)
	if question == nil {
		return nil
	}
	return cloneQuestion(question)
}

// GetNextQuestion returns the question after the current one, clamped to the
// last question. With no current question it returns the first. Pure query.
func (m *sessionManager) GetNextQuestion(sessionID string) *model.Question {
	return m.stepQuestion(sessionID, 1)
}

// GetPreviousQuestion mirrors GetNextQuestion toward the front of the list.
func (m *sessionManager) GetPreviousQuestion(sessionID string) *model.Question {
	return m.stepQuestion(sessionID, -1)
}

func (m *sessionManager) stepQuestion(sessionID string, delta int) *model.Question {
	m.mu.Lock()
	defer m.mu.Unlock()

	index := m.sessionIndex(sessionID)
	if index == -1 {
		return nil
	}
	session := &m.state.Sessions[index]
	if len(session.Questions) == 0 {
		return nil
	}
	if session.CurrentQuestionID == "" {
		return cloneQuestion(&session.Questions[0])
	}

	target := session.QuestionIndex(session.CurrentQuestionID) + delta
	if target < 0 {
		target = 0
	}
	if target > len(session.Questions)-1 {
		target = len(session.Questions) - 1
	}
	return cloneQuestion(&session.Questions[target])
}
