package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

// CatalogService is the interface that wraps methods for catalog browsing business logic
type CatalogService interface {
	// GetGradesWithUnits retrieves all grades with their units and word counts
	//
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	GetGradesWithUnits(ctx context.Context) ([]models.GradeWithUnits, error)
	// GetUnitWords retrieves the unit and its words for browsing
	//
	// "unitID" parameter is used to identify the unit.
	// If wrong parameters will be used or some error will occur during data retrieve, the error will be returned together with "nil" values.
	GetUnitWords(ctx context.Context, unitID int) (*models.Unit, []models.Word, error)
}

// CatalogHandler handles catalog browsing HTTP requests
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all catalog handler routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/grades", h.GetGrades)
		r.Get("/units/{unitID}/words", h.GetUnitWords)
	})
}

// UnitWordsResponse represents a unit together with its words
type UnitWordsResponse struct {
	Unit  *models.Unit  `json:"unit"`
	Words []models.Word `json:"words"`
}

// GetGrades handles GET /api/v1/grades
// @Summary Get grade catalog
// @Description Get all grades with their units and per-unit word counts. Requires authentication.
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.GradeWithUnits "List of grades with units"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/grades [get]
func (h *CatalogHandler) GetGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.service.GetGradesWithUnits(r.Context())
	if err != nil {
		h.Logger.Error("failed to get grades", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, grades)
}

// GetUnitWords handles GET /api/v1/units/{unitID}/words
// @Summary Get unit words
// @Description Get a unit and all of its words. Requires authentication.
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param unitID path int true "Unit ID"
// @Success 200 {object} UnitWordsResponse "Unit with its words"
// @Failure 400 {object} map[string]string "Bad request - invalid unit ID"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/units/{unitID}/words [get]
func (h *CatalogHandler) GetUnitWords(w http.ResponseWriter, r *http.Request) {
	unitID, err := strconv.Atoi(chi.URLParam(r, "unitID"))
	if err != nil {
		h.Logger.Error("failed to parse unitID parameter", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid unit ID")
		return
	}

	unit, words, err := h.service.GetUnitWords(r.Context(), unitID)
	if err != nil {
		h.Logger.Error("failed to get unit words", zap.Error(err), zap.Int("unit_id", unitID))
		statusCode := http.StatusInternalServerError
		if err.Error() == "unit not found" {
			statusCode = http.StatusNotFound
		} else if err.Error() == "invalid unit id" {
			statusCode = http.StatusBadRequest
		}
		h.RespondError(w, statusCode, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, UnitWordsResponse{Unit: unit, Words: words})
}
