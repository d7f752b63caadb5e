package model

import "time"

// Session is an instructor-authored collection of ordered questions plus its
// live-polling status. CurrentQuestionID, when set, always refers to a
// question in this session's own Questions slice, and IsPolling is only ever
// true while CurrentQuestionID is set.
type Session struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	AccessCode        string     `json:"accessCode,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	CurrentQuestionID string     `json:"currentQuestionId,omitempty"`
	IsPolling         bool       `json:"isPolling"`
	Questions         []Question `json:"questions"`
}

// QuestionByID returns a pointer into the session's live question slice, or
// nil when the id is unknown. Callers outside the owning manager must never
// see this pointer.
func (s *Session) QuestionByID(questionID string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == questionID {
			return &s.Questions[i]
		}
	}
	return nil
}

// QuestionIndex returns the position of a question within the session, or -1.
func (s *Session) QuestionIndex(questionID string) int {
	for i := range s.Questions {
		if s.Questions[i].ID == questionID {
			return i
		}
	}
	return -1
}

// RenumberQuestions rewrites every question's Order to its slice position,
// keeping the order fields dense and zero-based after inserts, removals and
// reorders.
func (s *Session) RenumberQuestions() {
	for i := range s.Questions {
		s.Questions[i].Order = i
	}
}
