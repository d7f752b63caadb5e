package model

import "time"

// Question type constants. The set is closed; anything else is rejected at
// validation time.
const (
	TypeMultipleChoice = "multiple-choice"
	TypeOpenResponse   = "open-response"
	TypeLikert         = "likert"
	TypeImage          = "image"
)

// QuestionTypes lists every supported question type.
var QuestionTypes = []string{TypeMultipleChoice, TypeOpenResponse, TypeLikert, TypeImage}

// IsSupportedQuestionType reports whether t is one of QuestionTypes.
func IsSupportedQuestionType(t string) bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ChoiceBased reports whether the type carries an option list.
func ChoiceBased(t string) bool {
	return t == TypeMultipleChoice || t == TypeLikert
}

// Question is one poll item within a session. For multiple-choice questions
// CorrectOptionID names the single option flagged correct; for every other
// type it is empty and Options is empty for open-response/image.
type Question struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	Prompt          string         `json:"prompt"`
	Options         []Option       `json:"options"`
	CorrectOptionID string         `json:"correctOptionId,omitempty"`
	Explanation     string         `json:"explanation,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Reference       string         `json:"reference,omitempty"`
	Tags            []string       `json:"tags"`
	Media           map[string]any `json:"media"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	Order           int            `json:"order"`
}
