package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vocabbook/backend/internal/auth"
	"github.com/vocabbook/backend/internal/models"
	"github.com/vocabbook/backend/internal/quiz"
	"go.uber.org/zap"
)

// QuizService is the interface that wraps methods for quiz session business logic
type QuizService interface {
	// StartSession loads and shuffles the requested pool and opens a session over it
	//
	// "userID" parameter is used to identify the user.
	// "req" parameter selects the mode and the pool source.
	// If wrong parameters will be used or some error will occur during pool loading, the error will be returned.
	StartSession(ctx context.Context, userID int, req *models.StartQuizRequest) (quiz.ItemView, error)
	// GetView returns the current item snapshot of a session
	GetView(sessionID string, userID int) (quiz.ItemView, error)
	// SubmitAnswer grades a typed answer for the current item
	SubmitAnswer(sessionID string, userID int, answer string) (quiz.ItemView, error)
	// Flip reveals the back side of the current flashcard
	Flip(sessionID string, userID int) (quiz.ItemView, error)
	// MarkFlashcard records the self-reported flashcard outcome and advances
	MarkFlashcard(sessionID string, userID int, known bool) (quiz.ItemView, error)
	// Advance moves the session to the next item
	Advance(sessionID string, userID int) (quiz.ItemView, error)
	// Replay re-pronounces the current word in dictation mode
	Replay(sessionID string, userID int) error
	// FinishSession persists the completed outcome sequence and drops the session
	FinishSession(ctx context.Context, sessionID string, userID int) (*models.QuizResult, error)
	// CancelSession drops a session without persisting anything
	CancelSession(sessionID string, userID int) error
}

// QuizHandler handles quiz session HTTP requests
type QuizHandler struct {
	BaseHandler
	service QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(service QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all quiz handler routes
func (h *QuizHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/quiz/sessions", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.StartSession)
		r.Get("/{sessionID}", h.GetSession)
		r.Post("/{sessionID}/answer", h.SubmitAnswer)
		r.Post("/{sessionID}/flip", h.Flip)
		r.Post("/{sessionID}/mark", h.MarkFlashcard)
		r.Post("/{sessionID}/advance", h.Advance)
		r.Post("/{sessionID}/replay", h.Replay)
		r.Post("/{sessionID}/finish", h.FinishSession)
		r.Delete("/{sessionID}", h.CancelSession)
	})
}

// userID extracts the authenticated user, responding with 401 when missing
func (h *QuizHandler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
	}
	return userID, ok
}

// respondSessionError maps session errors onto HTTP status codes
func (h *QuizHandler) respondSessionError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, quiz.ErrInvalidTransition),
		errors.Is(err, quiz.ErrSessionFinished),
		errors.Is(err, quiz.ErrNotFinished):
		statusCode = http.StatusConflict
	}
	h.RespondError(w, statusCode, err.Error())
}

// StartSession handles POST /api/v1/quiz/sessions
// @Summary Start a quiz session
// @Description Start a quiz session over a unit or over the wrong word book. Requires authentication.
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.StartQuizRequest true "Quiz mode and pool source"
// @Success 201 {object} quiz.ItemView "First item of the new session"
// @Failure 400 {object} map[string]string "Bad request - invalid mode or pool source"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/quiz/sessions [post]
func (h *QuizHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.service.StartSession(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Error("failed to start quiz session", zap.Error(err), zap.Int("user_id", userID))
		statusCode := http.StatusInternalServerError
		errMsg := err.Error()
		if errMsg == "invalid unit id" || errMsg == "invalid quiz mode: "+string(req.Mode) {
			statusCode = http.StatusBadRequest
		}
		h.RespondError(w, statusCode, errMsg)
		return
	}

	h.RespondJSON(w, http.StatusCreated, view)
}

// GetSession handles GET /api/v1/quiz/sessions/{sessionID}
// @Summary Get the current quiz item
// @Description Get the current item snapshot of a running session. Requires authentication.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} quiz.ItemView "Current item"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /api/v1/quiz/sessions/{sessionID} [get]
func (h *QuizHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetView(chi.URLParam(r, "sessionID"), userID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, view)
}

// SubmitAnswerRequest represents a typed answer submission
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// SubmitAnswer handles POST /api/v1/quiz/sessions/{sessionID}/answer
// @Summary Submit a typed answer
// @Description Grade the typed answer for the current item in a typing mode. Requires authentication.
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Param request body SubmitAnswerRequest true "Typed answer"
// @Success 200 {object} quiz.ItemView "Item with grading result"
// @Failure 400 {object} map[string]string "Bad request - invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Conflict - answer not allowed in the current state"
// @Router /api/v1/quiz/sessions/{sessionID}/answer [post]
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.service.SubmitAnswer(chi.URLParam(r, "sessionID"), userID, req.Answer)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, view)
}

// Flip handles POST /api/v1/quiz/sessions/{sessionID}/flip
// @Summary Flip the current flashcard
// @Description Reveal the definition side of the current flashcard. Requires authentication.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} quiz.ItemView "Flipped item"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Conflict - flip not allowed in the current mode"
// @Router /api/v1/quiz/sessions/{sessionID}/flip [post]
func (h *QuizHandler) Flip(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Flip(chi.URLParam(r, "sessionID"), userID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, view)
}

// MarkFlashcardRequest represents a self-reported flashcard outcome
type MarkFlashcardRequest struct {
	Known bool `json:"known"`
}

// MarkFlashcard handles POST /api/v1/quiz/sessions/{sessionID}/mark
// @Summary Mark the current flashcard
// @Description Record whether the learner knew the current flashcard and advance. Requires authentication.
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Param request body MarkFlashcardRequest true "Self-reported outcome"
// @Success 200 {object} quiz.ItemView "Next item or finished state"
// @Failure 400 {object} map[string]string "Bad request - invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Conflict - mark not allowed in the current state"
// @Router /api/v1/quiz/sessions/{sessionID}/mark [post]
func (h *QuizHandler) MarkFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req MarkFlashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.service.MarkFlashcard(chi.URLParam(r, "sessionID"), userID, req.Known)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, view)
}

// Advance handles POST /api/v1/quiz/sessions/{sessionID}/advance
// @Summary Advance to the next item
// @Description Move to the next item once the current one has an outcome. Requires authentication.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} quiz.ItemView "Next item or finished state"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Conflict - current item has no outcome yet"
// @Router /api/v1/quiz/sessions/{sessionID}/advance [post]
func (h *QuizHandler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Advance(chi.URLParam(r, "sessionID"), userID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, view)
}

// Replay handles POST /api/v1/quiz/sessions/{sessionID}/replay
// @Summary Replay the current word
// @Description Re-trigger pronunciation of the current word in dictation mode. Requires authentication.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Conflict - replay not allowed in the current mode"
// @Router /api/v1/quiz/sessions/{sessionID}/replay [post]
func (h *QuizHandler) Replay(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Replay(chi.URLParam(r, "sessionID"), userID); err != nil {
		h.respondSessionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FinishSession handles POST /api/v1/quiz/sessions/{sessionID}/finish
// @Summary Finish a quiz session
// @Description Persist the completed outcome sequence and return the result. Requires authentication.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} models.QuizResult "Completed quiz result"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Conflict - session is not finished yet"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/quiz/sessions/{sessionID}/finish [post]
func (h *QuizHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	result, err := h.service.FinishSession(r.Context(), chi.URLParam(r, "sessionID"), userID)
	if err != nil {
		h.Logger.Error("failed to finish quiz session", zap.Error(err), zap.Int("user_id", userID))
		h.respondSessionError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// CancelSession handles DELETE /api/v1/quiz/sessions/{sessionID}
// @Summary Cancel a quiz session
// @Description Drop a session without persisting anything. Requires authentication.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /api/v1/quiz/sessions/{sessionID} [delete]
func (h *QuizHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.CancelSession(chi.URLParam(r, "sessionID"), userID); err != nil {
		h.respondSessionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
