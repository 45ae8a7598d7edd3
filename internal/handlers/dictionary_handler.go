package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

// DictionaryService is the interface that wraps methods for dictionary lookup business logic
type DictionaryService interface {
	// Lookup returns the dictionary entry for a word, serving from cache when possible
	//
	// "word" parameter is the English word to look up.
	// If wrong parameters will be used or some error will occur during the lookup, the error will be returned together with "nil" value.
	Lookup(ctx context.Context, word string) (*models.DictionaryEntry, error)
}

// DictionaryHandler handles dictionary lookup HTTP requests
type DictionaryHandler struct {
	BaseHandler
	service DictionaryService
}

// NewDictionaryHandler creates a new dictionary handler
func NewDictionaryHandler(service DictionaryService, logger *zap.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all dictionary handler routes
func (h *DictionaryHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/dict/lookup", h.Lookup)
	})
}

// Lookup handles GET /api/v1/dict/lookup
// @Summary Look up a word
// @Description Look up an English word in the public dictionary with a best-effort Chinese translation. Requires authentication.
// @Tags dictionary
// @Produce json
// @Security ApiKeyAuth
// @Param word query string true "English word"
// @Success 200 {object} models.DictionaryEntry "Dictionary entry"
// @Failure 400 {object} map[string]string "Bad request - missing word parameter"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/dict/lookup [get]
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if strings.TrimSpace(word) == "" {
		h.RespondError(w, http.StatusBadRequest, "word parameter is required")
		return
	}

	entry, err := h.service.Lookup(r.Context(), word)
	if err != nil {
		h.Logger.Error("failed to look up word", zap.Error(err), zap.String("word", word))
		statusCode := http.StatusInternalServerError
		if strings.HasPrefix(err.Error(), "word not found") {
			statusCode = http.StatusNotFound
		}
		h.RespondError(w, statusCode, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, entry)
}
