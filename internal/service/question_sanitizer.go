package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Polliwog/internal/apperr"
	"github.com/lshigami/Polliwog/internal/dto"
	"github.com/lshigami/Polliwog/internal/model"
)

// newID produces a prefixed collision-resistant id. uuid.NewRandom reads
// crypto/rand; if that ever fails, fall back to timestamp+random.
func newID(prefix string) string {
	if id, err := uuid.NewRandom(); err == nil {
		return prefix + "_" + id.String()
	}
	return fmt.Sprintf("%s_%08x_%d", prefix, rand.Uint32(), time.Now().UnixMilli())
}

func normalizeString(value string) string {
	return strings.TrimSpace(value)
}

// sanitizeTags trims tags, drops empties and duplicates, and preserves
// first-occurrence order.
func sanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		trimmed := normalizeString(tag)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// buildOption normalizes one option draft. A provided id survives edits so
// correctOptionId stays stable; a provided order wins over the positional
// index.
func buildOption(draft dto.OptionDraft, index int) model.Option {
	label := normalizeString(draft.Label)
	value := normalizeString(draft.Value)
	if value == "" {
		value = label
	}

	id := draft.ID
	if id == "" {
		id = newID("option")
	}

	order := index
	if draft.Order != nil {
		order = *draft.Order
	}

	return model.Option{
		ID:        id,
		Label:     label,
		Value:     value,
		Order:     order,
		IsCorrect: draft.IsCorrect,
	}
}

// sanitizeQuestion validates a full question payload and normalizes it into a
// model.Question at the given order. Add, update, import and load-time
// upgrade all funnel through here, so a partial edit can never commit a
// question that violates the per-type rules.
func sanitizeQuestion(draft dto.QuestionDraft, order int) (model.Question, error) {
	questionType := strings.ToLower(normalizeString(draft.Type))
	if !model.IsSupportedQuestionType(questionType) {
		return model.Question{}, apperr.NewValidation("Unsupported question type: %s", draft.Type)
	}

	prompt := normalizeString(draft.Prompt)
	if prompt == "" {
		return model.Question{}, apperr.NewValidation("Question prompt is required")
	}

	options := []model.Option{}
	correctOptionID := ""

	if model.ChoiceBased(questionType) {
		if len(draft.Options) < 2 {
			return model.Question{}, apperr.NewValidation("Multiple choice and likert questions require at least two options")
		}
		for i, optionDraft := range draft.Options {
			options = append(options, buildOption(optionDraft, i))
		}

		if questionType == model.TypeMultipleChoice {
			for i := range options {
				if options[i].IsCorrect && correctOptionID == "" {
					correctOptionID = options[i].ID
					continue
				}
				// exactly one option stays flagged correct
				options[i].IsCorrect = false
			}
			if correctOptionID == "" {
				return model.Question{}, apperr.NewValidation("Multiple choice questions require a correct option")
			}
		}
	}

	id := draft.ID
	if id == "" {
		id = newID("question")
	}

	now := time.Now()
	createdAt := now
	if draft.CreatedAt != nil && !draft.CreatedAt.IsZero() {
		createdAt = *draft.CreatedAt
	}

	media := map[string]any{}
	for key, value := range draft.Media {
		media[key] = value
	}

	return model.Question{
		ID:              id,
		Type:            questionType,
		Prompt:          prompt,
		Options:         options,
		CorrectOptionID: correctOptionID,
		Explanation:     normalizeString(draft.Explanation),
		Notes:           normalizeString(draft.Notes),
		Reference:       normalizeString(draft.Reference),
		Tags:            sanitizeTags(draft.Tags),
		Media:           media,
		CreatedAt:       createdAt,
		UpdatedAt:       now,
		Order:           order,
	}, nil
}

// draftFromQuestion converts a stored question back into a draft so a partial
// update can be merged onto it and re-validated as a whole.
func draftFromQuestion(question model.Question) dto.QuestionDraft {
	options := make([]dto.OptionDraft, 0, len(question.Options))
	for _, option := range question.Options {
		order := option.Order
		options = append(options, dto.OptionDraft{
			ID:        option.ID,
			Label:     option.Label,
			Value:     option.Value,
			Order:     &order,
			IsCorrect: option.IsCorrect,
		})
	}

	createdAt := question.CreatedAt
	return dto.QuestionDraft{
		ID:          question.ID,
		Type:        question.Type,
		Prompt:      question.Prompt,
		Options:     options,
		Explanation: question.Explanation,
		Notes:       question.Notes,
		Reference:   question.Reference,
		Tags:        question.Tags,
		Media:       question.Media,
		CreatedAt:   &createdAt,
	}
}
