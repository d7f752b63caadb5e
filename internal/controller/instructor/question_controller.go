package instructor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Polliwog/internal/dto"
	"github.com/lshigami/Polliwog/internal/model"
	"github.com/lshigami/Polliwog/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	manager   service.SessionManager
	explainer service.ExplanationService
}

func NewQuestionController(manager service.SessionManager, explainer service.ExplanationService) *QuestionController {
	return &QuestionController{manager: manager, explainer: explainer}
}

// AddQuestion godoc
// @Summary Add a question to a session
// @Description Validates the full payload and appends the question at the end of the session's list.
// @Tags Instructor - Questions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question body dto.QuestionDraft true "Question payload"
// @Success 201 {object} model.Question
// @Failure 400 {object} dto.ErrorResponse "Unsupported type, empty prompt, or invalid options"
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/questions [post]
func (c *QuestionController) AddQuestion(ctx *gin.Context) {
	var draft dto.QuestionDraft
	if err := ctx.ShouldBindJSON(&draft); err != nil {
		respondBindError(ctx, err)
		return
	}

	question, err := c.manager.AddQuestion(ctx.Param("session_id"), draft)
	if err != nil {
		log.Warn().Err(err).Str("sessionId", ctx.Param("session_id")).Msg("AddQuestion rejected")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// GetQuestion godoc
// @Summary Get one question
// @Tags Instructor - Questions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question_id path string true "Question ID"
// @Success 200 {object} model.Question
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	question := c.manager.GetQuestion(ctx.Param("session_id"), ctx.Param("question_id"))
	if question == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "question not found: " + ctx.Param("question_id")})
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Merges the given fields onto the stored question and re-validates the merged result in full.
// @Tags Instructor - Questions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question_id path string true "Question ID"
// @Param updates body dto.QuestionUpdate true "Fields to change"
// @Success 200 {object} model.Question
// @Failure 400 {object} dto.ErrorResponse "Merged result violates a rule"
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/questions/{question_id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var updates dto.QuestionUpdate
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		respondBindError(ctx, err)
		return
	}

	question, err := c.manager.UpdateQuestion(ctx.Param("session_id"), ctx.Param("question_id"), updates)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// RemoveQuestion godoc
// @Summary Remove a question
// @Description Renumbers remaining questions; removing the current question stops polling.
// @Tags Instructor - Questions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question_id path string true "Question ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} dto.ErrorResponse "Unknown session"
// @Router /instructor/sessions/{session_id}/questions/{question_id} [delete]
func (c *QuestionController) RemoveQuestion(ctx *gin.Context) {
	removed, err := c.manager.RemoveQuestion(ctx.Param("session_id"), ctx.Param("question_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ReorderQuestion godoc
// @Summary Move a question to a new position
// @Description Out-of-range targets clamp to the nearest end.
// @Tags Instructor - Questions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question_id path string true "Question ID"
// @Param position body dto.ReorderQuestionRequest true "Target index"
// @Success 200 {object} model.Question
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/questions/{question_id}/position [put]
func (c *QuestionController) ReorderQuestion(ctx *gin.Context) {
	var req dto.ReorderQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	question, err := c.manager.ReorderQuestion(ctx.Param("session_id"), ctx.Param("question_id"), *req.TargetIndex)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// SetCurrentQuestion godoc
// @Summary Start polling a question
// @Description Setting a question makes it live and starts polling; a null questionId clears both.
// @Tags Instructor - Questions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param selection body dto.SetCurrentQuestionRequest true "Question to present, or null to clear"
// @Success 200 {object} model.Question
// @Success 204 "Current question cleared"
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/current-question [put]
func (c *QuestionController) SetCurrentQuestion(ctx *gin.Context) {
	var req dto.SetCurrentQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	question, err := c.manager.SetCurrentQuestion(ctx.Param("session_id"), req.QuestionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if question == nil {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// TogglePolling godoc
// @Summary Turn polling on or off
// @Description Turning polling off clears the current question; turning it on requires one.
// @Tags Instructor - Questions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param polling body dto.TogglePollingRequest true "Desired polling state"
// @Success 200 {object} model.Session
// @Failure 400 {object} dto.ErrorResponse "Polling on with no current question"
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/polling [put]
func (c *QuestionController) TogglePolling(ctx *gin.Context) {
	var req dto.TogglePollingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	session, err := c.manager.TogglePolling(ctx.Param("session_id"), *req.IsPolling)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// NextQuestion godoc
// @Summary Peek at the question after the current one
// @Description Pure query; clamps at the last question and never advances state.
// @Tags Instructor - Questions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} model.Question
// @Success 204 "Session has no questions"
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/questions/next [get]
func (c *QuestionController) NextQuestion(ctx *gin.Context) {
	c.respondStep(ctx, ctx.Param("session_id"), c.manager.GetNextQuestion(ctx.Param("session_id")))
}

// PreviousQuestion godoc
// @Summary Peek at the question before the current one
// @Description Pure query; clamps at the first question and never advances state.
// @Tags Instructor - Questions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} model.Question
// @Success 204 "Session has no questions"
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/questions/previous [get]
func (c *QuestionController) PreviousQuestion(ctx *gin.Context) {
	c.respondStep(ctx, ctx.Param("session_id"), c.manager.GetPreviousQuestion(ctx.Param("session_id")))
}

func (c *QuestionController) respondStep(ctx *gin.Context, sessionID string, question *model.Question) {
	if question == nil {
		if c.manager.GetSessionByID(sessionID) == nil {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "session not found: " + sessionID})
			return
		}
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// SuggestExplanation godoc
// @Summary Draft an explanation for a question with Gemini
// @Description Returns a suggested explanation; applying it is a separate question update.
// @Tags Instructor - Questions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question_id path string true "Question ID"
// @Success 200 {object} dto.SuggestedExplanationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "Gemini is not configured"
// @Router /instructor/sessions/{session_id}/questions/{question_id}/explanation [post]
func (c *QuestionController) SuggestExplanation(ctx *gin.Context) {
	question := c.manager.GetQuestion(ctx.Param("session_id"), ctx.Param("question_id"))
	if question == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "question not found: " + ctx.Param("question_id")})
		return
	}

	explanation, err := c.explainer.SuggestExplanation(ctx.Request.Context(), question)
	if err != nil {
		log.Error().Err(err).Str("questionId", question.ID).Msg("SuggestExplanation failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuggestedExplanationResponse{QuestionID: question.ID, Explanation: explanation})
}
