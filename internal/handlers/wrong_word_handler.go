package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vocabbook/backend/internal/auth"
	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

// WrongWordService is the interface that wraps methods for wrong word book business logic
type WrongWordService interface {
	// List retrieves the user's wrong word book
	//
	// "userID" parameter is used to identify the user.
	// "minImportance" filters entries below the given importance; zero disables the filter.
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context, userID, minImportance int) ([]models.WrongWordListItem, error)
	// Update changes the importance or mastered flag of a ledger entry
	//
	// "id" parameter identifies the entry, "userID" scopes it to its owner.
	// If wrong parameters will be used or some error will occur during data update, the error will be returned.
	Update(ctx context.Context, id, userID int, req *models.UpdateWrongWordRequest) error
	// Delete removes a ledger entry
	Delete(ctx context.Context, id, userID int) error
}

// WrongWordHandler handles wrong word book HTTP requests
type WrongWordHandler struct {
	BaseHandler
	service WrongWordService
}

// NewWrongWordHandler creates a new wrong word handler
func NewWrongWordHandler(service WrongWordService, logger *zap.Logger) *WrongWordHandler {
	return &WrongWordHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all wrong word handler routes
func (h *WrongWordHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/wrong-words", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /api/v1/wrong-words
// @Summary Get the wrong word book
// @Description Get the user's wrong words ordered by importance and recency. Requires authentication.
// @Tags wrong-words
// @Produce json
// @Security ApiKeyAuth
// @Param minImportance query int false "Only entries with importance >= this value (1-3)"
// @Success 200 {array} models.WrongWordListItem "Wrong word book entries"
// @Failure 400 {object} map[string]string "Bad request - invalid importance filter"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/wrong-words [get]
func (h *WrongWordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	minImportance := 0
	if raw := r.URL.Query().Get("minImportance"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid minImportance parameter")
			return
		}
		minImportance = parsed
	}

	items, err := h.service.List(r.Context(), userID, minImportance)
	if err != nil {
		h.Logger.Error("failed to list wrong words", zap.Error(err), zap.Int("user_id", userID))
		statusCode := http.StatusInternalServerError
		if err.Error() == "importance must be between 1 and 3" {
			statusCode = http.StatusBadRequest
		}
		h.RespondError(w, statusCode, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// Update handles PUT /api/v1/wrong-words/{id}
// @Summary Update a wrong word entry
// @Description Change the importance or mastered flag of a wrong word entry. Requires authentication.
// @Tags wrong-words
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Wrong word entry ID"
// @Param request body models.UpdateWrongWordRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request - invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/wrong-words/{id} [put]
func (h *WrongWordHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.Logger.Error("failed to parse id parameter", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid wrong word ID")
		return
	}

	var req models.UpdateWrongWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Update(r.Context(), id, userID, &req); err != nil {
		h.Logger.Error("failed to update wrong word", zap.Error(err), zap.Int("id", id))
		statusCode := http.StatusInternalServerError
		errMsg := err.Error()
		switch errMsg {
		case "wrong word entry not found":
			statusCode = http.StatusNotFound
		case "invalid wrong word id", "no fields to update", "importance must be between 1 and 3":
			statusCode = http.StatusBadRequest
		}
		h.RespondError(w, statusCode, errMsg)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/wrong-words/{id}
// @Summary Delete a wrong word entry
// @Description Remove an entry from the wrong word book. Requires authentication.
// @Tags wrong-words
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Wrong word entry ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request - invalid ID"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/wrong-words/{id} [delete]
func (h *WrongWordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.Logger.Error("failed to parse id parameter", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid wrong word ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		h.Logger.Error("failed to delete wrong word", zap.Error(err), zap.Int("id", id))
		statusCode := http.StatusInternalServerError
		switch err.Error() {
		case "wrong word entry not found":
			statusCode = http.StatusNotFound
		case "invalid wrong word id":
			statusCode = http.StatusBadRequest
		}
		h.RespondError(w, statusCode, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
