package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Polliwog/config"
	"github.com/lshigami/Polliwog/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrExplainerNotConfigured is returned when no Gemini API key is set.
var ErrExplainerNotConfigured = errors.New("explanation service is not configured")

// ExplanationService drafts the explanation field for an authored question.
// The suggestion is returned to the caller; applying it is a normal question
// update, so this service never touches session state.
type ExplanationService interface {
	SuggestExplanation(ctx context.Context, question *model.Question) (string, error)
}

type geminiExplanationService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewExplanationService(cfg *config.Config) (ExplanationService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. ExplanationService will be non-functional.")
		return &geminiExplanationService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiExplanationService{client: model, cfg: cfg}, nil
}

func (s *geminiExplanationService) SuggestExplanation(ctx context.Context, question *model.Question) (string, error) {
	if s.client == nil {
		return "", ErrExplainerNotConfigured
	}

	var prompt strings.Builder
	prompt.WriteString("You are helping a medical educator prepare a live polling question for exam review.\n")
	prompt.WriteString("Write a concise explanation (2-4 sentences) a student would read after answering. ")
	prompt.WriteString("State why the correct answer is correct and, where relevant, why the distractors are wrong. ")
	prompt.WriteString("Return only the explanation text, no preamble.\n\n")
	prompt.WriteString("Question:\n")
	prompt.WriteString(question.Prompt)
	prompt.WriteString("\n")

	if len(question.Options) > 0 {
		prompt.WriteString("\nOptions:\n")
		for _, opt := range question.Options {
			marker := "-"
			if question.Type == model.TypeMultipleChoice && opt.ID == question.CorrectOptionID {
				marker = "* (correct)"
			}
			prompt.WriteString(fmt.Sprintf("%s %s\n", marker, opt.Label))
		}
	}
	if question.Reference != "" {
		prompt.WriteString("\nReference: " + question.Reference + "\n")
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		log.Error().Err(err).Str("questionId", question.ID).Msg("Gemini API error during explanation suggestion")
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Str("questionId", question.ID).Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	text := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return strings.TrimSpace(text), nil
}
