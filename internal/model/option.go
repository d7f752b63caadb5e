package model

// Option is one selectable choice of a multiple-choice or likert question.
// IsCorrect is only meaningful on multiple-choice questions.
type Option struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	Order     int    `json:"order"`
	IsCorrect bool   `json:"isCorrect"`
}
