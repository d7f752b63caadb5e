package instructor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Polliwog/internal/dto"
	"github.com/lshigami/Polliwog/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	manager service.SessionManager
}

func NewSessionController(manager service.SessionManager) *SessionController {
	return &SessionController{manager: manager}
}

// CreateSession godoc
// @Summary Create a polling session
// @Description Creates an empty session and makes it the active session.
// @Tags Instructor - Sessions
// @Accept json
// @Produce json
// @Param session body dto.CreateSessionRequest true "Session name and optional access code"
// @Success 201 {object} model.Session
// @Failure 400 {object} dto.ErrorResponse "Empty name"
// @Router /instructor/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	session, err := c.manager.CreateSession(req)
	if err != nil {
		log.Warn().Err(err).Msg("CreateSession rejected")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

// ListSessions godoc
// @Summary List all sessions
// @Tags Instructor - Sessions
// @Produce json
// @Success 200 {array} model.Session
// @Router /instructor/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.manager.GetSessions())
}

// GetState godoc
// @Summary Dump the full instructor state tree
// @Description Returns every session plus the active-session pointer and the last-updated timestamp.
// @Tags Instructor - Sessions
// @Produce json
// @Success 200 {object} model.State
// @Router /instructor/state [get]
func (c *SessionController) GetState(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.manager.GetState())
}

// GetSession godoc
// @Summary Get one session with its questions
// @Tags Instructor - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} model.Session
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	session := c.manager.GetSessionByID(ctx.Param("session_id"))
	if session == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "session not found: " + ctx.Param("session_id")})
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// GetActiveSession godoc
// @Summary Get the active session
// @Description Returns 204 when no session is active.
// @Tags Instructor - Sessions
// @Produce json
// @Success 200 {object} model.Session
// @Success 204 "No active session"
// @Router /instructor/sessions/active [get]
func (c *SessionController) GetActiveSession(ctx *gin.Context) {
	session := c.manager.GetActiveSession()
	if session == nil {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// SetActiveSession godoc
// @Summary Select the active session
// @Description A null sessionId clears the active session.
// @Tags Instructor - Sessions
// @Accept json
// @Produce json
// @Param selection body dto.SetActiveSessionRequest true "Session to activate, or null to clear"
// @Success 200 {object} model.Session
// @Success 204 "Active session cleared"
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/active [put]
func (c *SessionController) SetActiveSession(ctx *gin.Context) {
	var req dto.SetActiveSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	session, err := c.manager.SetActiveSession(req.SessionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if session == nil {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// RenameSession godoc
// @Summary Rename a session
// @Tags Instructor - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param name body dto.RenameSessionRequest true "New name"
// @Success 200 {object} model.Session
// @Failure 400 {object} dto.ErrorResponse "Empty name"
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/name [put]
func (c *SessionController) RenameSession(ctx *gin.Context) {
	var req dto.RenameSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	session, err := c.manager.RenameSession(ctx.Param("session_id"), req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// UpdateAccessCode godoc
// @Summary Set or clear a session's access code
// @Tags Instructor - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param code body dto.UpdateAccessCodeRequest true "Access code; empty clears it"
// @Success 200 {object} model.Session
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/access-code [put]
func (c *SessionController) UpdateAccessCode(ctx *gin.Context) {
	var req dto.UpdateAccessCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	session, err := c.manager.UpdateAccessCode(ctx.Param("session_id"), req.AccessCode)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete a session
// @Description Deleting the active session promotes the first remaining one.
// @Tags Instructor - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]bool
// @Router /instructor/sessions/{session_id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	deleted, err := c.manager.DeleteSession(ctx.Param("session_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ExportSession godoc
// @Summary Export a session as a versioned JSON document
// @Tags Instructor - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {string} string "Pretty-printed {version, session} JSON"
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sessions/{session_id}/export [get]
func (c *SessionController) ExportSession(ctx *gin.Context) {
	payload, err := c.manager.ExportSession(ctx.Param("session_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/json", []byte(payload))
}

// ImportSession godoc
// @Summary Import sessions from an exported document
// @Description Accepts a single {version, session} export or a {sessions: [...]} batch. Without a targetSessionId a new active session is created.
// @Tags Instructor - Sessions
// @Accept json
// @Produce json
// @Param import body dto.ImportSessionRequest true "Raw exported payload plus import options"
// @Success 200 {array} model.Session
// @Failure 400 {object} dto.ErrorResponse "Malformed or unsupported payload"
// @Failure 404 {object} dto.ErrorResponse "Unknown target session"
// @Router /instructor/sessions/import [post]
func (c *SessionController) ImportSession(ctx *gin.Context) {
	var req dto.ImportSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	sessions, err := c.manager.ImportSession(req.Payload, service.ImportOptions{
		ReplaceExisting: req.ReplaceExisting,
		TargetSessionID: req.TargetSessionID,
	})
	if err != nil {
		log.Warn().Err(err).Msg("ImportSession rejected")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}
