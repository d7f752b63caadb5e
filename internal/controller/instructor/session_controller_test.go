package instructor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Polliwog/internal/dto"
	"github.com/lshigami/Polliwog/internal/model"
	"github.com/lshigami/Polliwog/internal/service"
	"github.com/lshigami/Polliwog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExplainer struct {
	explanation string
	err         error
}

func (s *stubExplainer) SuggestExplanation(ctx context.Context, question *model.Question) (string, error) {
	return s.explanation, s.err
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := service.NewSessionManager(storage.NewMemoryStore(), nil)
	sessionCtrl := NewSessionController(manager)
	questionCtrl := NewQuestionController(manager, &stubExplainer{explanation: "Because the first option is right."})

	router := gin.New()
	router.GET("/api/v1/instructor/state", sessionCtrl.GetState)
	sessions := router.Group("/api/v1/instructor/sessions")
	sessions.POST("", sessionCtrl.CreateSession)
	sessions.GET("", sessionCtrl.ListSessions)
	sessions.GET("/active", sessionCtrl.GetActiveSession)
	sessions.PUT("/active", sessionCtrl.SetActiveSession)
	sessions.POST("/import", sessionCtrl.ImportSession)
	sessions.GET("/:session_id", sessionCtrl.GetSession)
	sessions.DELETE("/:session_id", sessionCtrl.DeleteSession)
	sessions.PUT("/:session_id/name", sessionCtrl.RenameSession)
	sessions.PUT("/:session_id/access-code", sessionCtrl.UpdateAccessCode)
	sessions.GET("/:session_id/export", sessionCtrl.ExportSession)
	sessions.POST("/:session_id/questions", questionCtrl.AddQuestion)
	sessions.GET("/:session_id/questions/next", questionCtrl.NextQuestion)
	sessions.GET("/:session_id/questions/previous", questionCtrl.PreviousQuestion)
	sessions.GET("/:session_id/questions/:question_id", questionCtrl.GetQuestion)
	sessions.PUT("/:session_id/questions/:question_id", questionCtrl.UpdateQuestion)
	sessions.DELETE("/:session_id/questions/:question_id", questionCtrl.RemoveQuestion)
	sessions.PUT("/:session_id/questions/:question_id/position", questionCtrl.ReorderQuestion)
	sessions.POST("/:session_id/questions/:question_id/explanation", questionCtrl.SuggestExplanation)
	sessions.PUT("/:session_id/current-question", questionCtrl.SetCurrentQuestion)
	sessions.PUT("/:session_id/polling", questionCtrl.TogglePolling)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func createSessionHTTP(t *testing.T, router *gin.Engine, name string) model.Session {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions", `{"name":"`+name+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session model.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	return session
}

func TestSessionEndpoints(t *testing.T) {
	t.Run("create returns 201 and the session becomes active", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Cardio Quiz")
		assert.Equal(t, "Cardio Quiz", session.Name)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/active", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var active model.Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
		assert.Equal(t, session.ID, active.ID)
	})

	t.Run("create without a name returns 400", func(t *testing.T) {
		router := newTestRouter(t)
		rec := doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get unknown session returns 404", func(t *testing.T) {
		router := newTestRouter(t)
		rec := doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/missing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("state dump includes the active session pointer", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Dumped")

		rec := doRequest(t, router, http.MethodGet, "/api/v1/instructor/state", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var state model.State
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
		assert.Equal(t, session.ID, state.ActiveSessionID)
		require.Len(t, state.Sessions, 1)
	})

	t.Run("rename and access code", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Before")

		rec := doRequest(t, router, http.MethodPut, "/api/v1/instructor/sessions/"+session.ID+"/name", `{"name":"After"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, router, http.MethodPut, "/api/v1/instructor/sessions/"+session.ID+"/access-code", `{"accessCode":"MED-42"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var updated model.Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "After", updated.Name)
		assert.Equal(t, "MED-42", updated.AccessCode)
	})

	t.Run("clearing the active session returns 204", func(t *testing.T) {
		router := newTestRouter(t)
		createSessionHTTP(t, router, "Soon inactive")

		rec := doRequest(t, router, http.MethodPut, "/api/v1/instructor/sessions/active", `{"sessionId":null}`)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/active", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("delete reports whether a session existed", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Doomed")

		rec := doRequest(t, router, http.MethodDelete, "/api/v1/instructor/sessions/"+session.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"deleted": true}`, rec.Body.String())

		rec = doRequest(t, router, http.MethodDelete, "/api/v1/instructor/sessions/"+session.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"deleted": false}`, rec.Body.String())
	})

	t.Run("export then import round trips over HTTP", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Round Trip")

		body := `{"type":"multiple-choice","prompt":"Pick?","options":[{"label":"A","isCorrect":true},{"label":"B"}]}`
		rec := doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/"+session.ID+"/questions", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/"+session.ID+"/export", "")
		require.Equal(t, http.StatusOK, rec.Code)
		exported := rec.Body.String()
		assert.Contains(t, exported, "Round Trip")

		importBody, err := json.Marshal(map[string]any{"payload": json.RawMessage(exported)})
		require.NoError(t, err)
		rec = doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/import", string(importBody))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var imported []model.Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &imported))
		require.Len(t, imported, 1)
		assert.Equal(t, "Round Trip", imported[0].Name)
		require.Len(t, imported[0].Questions, 1)
	})

	t.Run("import with a malformed payload returns 400", func(t *testing.T) {
		router := newTestRouter(t)
		rec := doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/import", `{"payload": {"foo": 1}}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Unsupported import format", resp.Message)
	})
}

func TestQuestionEndpoints(t *testing.T) {
	t.Run("add, reorder, and read back", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Cardio Quiz")

		first := `{"type":"multiple-choice","prompt":"First?","options":[{"label":"A","isCorrect":true},{"label":"B"}]}`
		rec := doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/"+session.ID+"/questions", first)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var firstQuestion model.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &firstQuestion))
		assert.Equal(t, 0, firstQuestion.Order)

		second := `{"type":"open-response","prompt":"Second?"}`
		rec = doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/"+session.ID+"/questions", second)
		require.Equal(t, http.StatusCreated, rec.Code)
		var secondQuestion model.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &secondQuestion))
		assert.Equal(t, 1, secondQuestion.Order)

		rec = doRequest(t, router, http.MethodPut,
			"/api/v1/instructor/sessions/"+session.ID+"/questions/"+secondQuestion.ID+"/position",
			`{"targetIndex": 0}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/"+session.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var stored model.Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
		require.Len(t, stored.Questions, 2)
		assert.Equal(t, secondQuestion.ID, stored.Questions[0].ID)
		assert.Equal(t, 0, stored.Questions[0].Order)
		assert.Equal(t, firstQuestion.ID, stored.Questions[1].ID)
		assert.Equal(t, 1, stored.Questions[1].Order)
	})

	t.Run("get question by id", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Lookup")

		body := `{"type":"open-response","prompt":"Describe?"}`
		rec := doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/"+session.ID+"/questions", body)
		require.Equal(t, http.StatusCreated, rec.Code)
		var question model.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &question))

		rec = doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/"+session.ID+"/questions/"+question.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var got model.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, question.ID, got.ID)

		rec = doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/"+session.ID+"/questions/missing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid question payload returns 400 with the rule", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Errors")

		body := `{"type":"multiple-choice","prompt":"Pick one","options":[{"label":"A"},{"label":"B"}]}`
		rec := doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/"+session.ID+"/questions", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "correct option")
	})

	t.Run("current question and polling lifecycle", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Poll")

		body := `{"type":"multiple-choice","prompt":"Live?","options":[{"label":"A","isCorrect":true},{"label":"B"}]}`
		rec := doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/"+session.ID+"/questions", body)
		require.Equal(t, http.StatusCreated, rec.Code)
		var question model.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &question))

		rec = doRequest(t, router, http.MethodPut, "/api/v1/instructor/sessions/"+session.ID+"/current-question",
			`{"questionId":"`+question.ID+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/"+session.ID, "")
		var stored model.Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
		assert.True(t, stored.IsPolling)
		assert.Equal(t, question.ID, stored.CurrentQuestionID)

		rec = doRequest(t, router, http.MethodPut, "/api/v1/instructor/sessions/"+session.ID+"/polling", `{"isPolling": false}`)
		require.Equal(t, http.StatusOK, rec.Code)
		stored = model.Session{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
		assert.False(t, stored.IsPolling)
		assert.Empty(t, stored.CurrentQuestionID)

		// polling back on without a current question is rejected
		rec = doRequest(t, router, http.MethodPut, "/api/v1/instructor/sessions/"+session.ID+"/polling", `{"isPolling": true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("next and previous clamp at the ends", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Nav")

		rec := doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/"+session.ID+"/questions/next", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)

		body := `{"type":"open-response","prompt":"Only?"}`
		rec = doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/"+session.ID+"/questions", body)
		require.Equal(t, http.StatusCreated, rec.Code)
		var question model.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &question))

		rec = doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/"+session.ID+"/questions/previous", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var got model.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, question.ID, got.ID)
	})

	t.Run("unknown session on navigation returns 404", func(t *testing.T) {
		router := newTestRouter(t)
		rec := doRequest(t, router, http.MethodGet, "/api/v1/instructor/sessions/missing/questions/next", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("explanation suggestion uses the explainer", func(t *testing.T) {
		router := newTestRouter(t)
		session := createSessionHTTP(t, router, "Explain")

		body := `{"type":"multiple-choice","prompt":"Why?","options":[{"label":"A","isCorrect":true},{"label":"B"}]}`
		rec := doRequest(t, router, http.MethodPost, "/api/v1/instructor/sessions/"+session.ID+"/questions", body)
		require.Equal(t, http.StatusCreated, rec.Code)
		var question model.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &question))

		rec = doRequest(t, router, http.MethodPost,
			"/api/v1/instructor/sessions/"+session.ID+"/questions/"+question.ID+"/explanation", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.SuggestedExplanationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, question.ID, resp.QuestionID)
		assert.Equal(t, "Because the first option is right.", resp.Explanation)
	})

	t.Run("explainer not configured maps to 503", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		manager := service.NewSessionManager(storage.NewMemoryStore(), nil)
		questionCtrl := NewQuestionController(manager, &stubExplainer{err: service.ErrExplainerNotConfigured})

		router := gin.New()
		router.POST("/s/:session_id/q/:question_id/explanation", questionCtrl.SuggestExplanation)

		session, err := manager.CreateSession(dto.CreateSessionRequest{Name: "S"})
		require.NoError(t, err)
		question, err := manager.AddQuestion(session.ID, dto.QuestionDraft{Type: model.TypeOpenResponse, Prompt: "Q?"})
		require.NoError(t, err)

		rec := doRequest(t, router, http.MethodPost, "/s/"+session.ID+"/q/"+question.ID+"/explanation", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
