package dto

import "time"

// OptionDraft is a caller-supplied option. ID and Order are optional; the
// sanitizer generates an id when absent and renumbers order by position.
type OptionDraft struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	Order     *int   `json:"order"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionDraft is the full question payload for AddQuestion and import.
// Validation happens in the service, not via binding tags, so every rejection
// carries the rule it violated.
type QuestionDraft struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Prompt      string         `json:"prompt"`
	Options     []OptionDraft  `json:"options"`
	Explanation string         `json:"explanation"`
	Notes       string         `json:"notes"`
	Reference   string         `json:"reference"`
	Tags        []string       `json:"tags"`
	Media       map[string]any `json:"media"`
	CreatedAt   *time.Time     `json:"createdAt"`
}

// QuestionUpdate is a partial edit. Nil fields keep the existing value; the
// merged result is re-validated in full before committing.
type QuestionUpdate struct {
	Type        *string         `json:"type"`
	Prompt      *string         `json:"prompt"`
	Options     *[]OptionDraft  `json:"options"`
	Explanation *string         `json:"explanation"`
	Notes       *string         `json:"notes"`
	Reference   *string         `json:"reference"`
	Tags        *[]string       `json:"tags"`
	Media       *map[string]any `json:"media"`
}

// ReorderQuestionRequest moves a question to TargetIndex among its siblings.
// Out-of-range targets clamp instead of erroring.
type ReorderQuestionRequest struct {
	TargetIndex *int `json:"targetIndex" binding:"required"`
}

// SetCurrentQuestionRequest starts polling the named question; a null/absent
// QuestionID clears the current question and stops polling.
type SetCurrentQuestionRequest struct {
	QuestionID *string `json:"questionId"`
}

type TogglePollingRequest struct {
	IsPolling *bool `json:"isPolling" binding:"required"`
}

// SuggestedExplanationResponse carries an AI-drafted explanation; the caller
// decides whether to apply it via a question update.
type SuggestedExplanationResponse struct {
	QuestionID  string `json:"questionId"`
	Explanation string `json:"explanation"`
}
