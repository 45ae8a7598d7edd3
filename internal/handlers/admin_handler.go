package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

const maxOCRImageSize = 10 * 1024 * 1024 // 10MB

// AdminCatalogService is the interface that wraps methods for catalog management business logic
type AdminCatalogService interface {
	// CreateGrade creates a new grade
	//
	// If wrong parameters will be used or some error will occur during data creation, the error will be returned together with "nil" value.
	CreateGrade(ctx context.Context, req *models.CreateGradeRequest) (*models.Grade, error)
	// UpdateGrade applies a partial update to a grade
	UpdateGrade(ctx context.Context, id int, req *models.UpdateGradeRequest) error
	// DeleteGrade removes a grade
	DeleteGrade(ctx context.Context, id int) error
	// CreateUnit creates a new unit inside a grade
	CreateUnit(ctx context.Context, req *models.CreateUnitRequest) (*models.Unit, error)
	// UpdateUnit applies a partial update to a unit
	UpdateUnit(ctx context.Context, id int, req *models.UpdateUnitRequest) error
	// DeleteUnit removes a unit
	DeleteUnit(ctx context.Context, id int) error
	// CreateWord creates a new word inside a unit
	CreateWord(ctx context.Context, req *models.CreateWordRequest) (*models.Word, error)
	// CreateWordsBatch creates multiple words inside a unit in one transaction.
	// Returns the number of words created.
	CreateWordsBatch(ctx context.Context, req *models.BatchCreateWordsRequest) (int, error)
	// UpdateWord applies a partial update to a word
	UpdateWord(ctx context.Context, id int, req *models.UpdateWordRequest) error
	// DeleteWord removes a word
	DeleteWord(ctx context.Context, id int) error
}

// OCRService is the interface that wraps methods for word list photo recognition
type OCRService interface {
	// Recognize runs OCR over the image bytes and returns the extracted English words
	//
	// If wrong parameters will be used or some error will occur during recognition, the error will be returned together with "nil" value.
	Recognize(ctx context.Context, image []byte) (*models.OCRResult, error)
}

// AdminHandler handles catalog management HTTP requests
type AdminHandler struct {
	BaseHandler
	service    AdminCatalogService
	ocrService OCRService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service AdminCatalogService, ocrService OCRService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
		ocrService:  ocrService,
	}
}

// RegisterRoutes registers all admin handler routes
func (h *AdminHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Post("/grades", h.CreateGrade)
		r.Put("/grades/{id}", h.UpdateGrade)
		r.Delete("/grades/{id}", h.DeleteGrade)
		r.Post("/units", h.CreateUnit)
		r.Put("/units/{id}", h.UpdateUnit)
		r.Delete("/units/{id}", h.DeleteUnit)
		r.Post("/words", h.CreateWord)
		r.Post("/words/batch", h.CreateWordsBatch)
		r.Put("/words/{id}", h.UpdateWord)
		r.Delete("/words/{id}", h.DeleteWord)
		r.Post("/ocr/recognize", h.RecognizeWords)
	})
}

// parseID extracts the numeric path parameter, responding with 400 when invalid
func (h *AdminHandler) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.Logger.Error("failed to parse id parameter", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid ID")
		return 0, false
	}
	return id, true
}

// respondMutationError maps catalog mutation errors onto HTTP status codes
func (h *AdminHandler) respondMutationError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errMsg := err.Error()
	if strings.HasSuffix(errMsg, "not found") {
		statusCode = http.StatusNotFound
	} else if strings.HasPrefix(errMsg, "invalid ") ||
		strings.HasSuffix(errMsg, "is required") ||
		errMsg == "no fields to update" ||
		errMsg == "no words to create" ||
		strings.HasPrefix(errMsg, "word ") {
		statusCode = http.StatusBadRequest
	}
	h.RespondError(w, statusCode, errMsg)
}

// CreateGrade handles POST /api/v1/admin/grades
// @Summary Create a grade
// @Description Create a new grade. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateGradeRequest true "Grade data"
// @Success 201 {object} models.Grade "Created grade"
// @Failure 400 {object} map[string]string "Bad request - invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/grades [post]
func (h *AdminHandler) CreateGrade(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	grade, err := h.service.CreateGrade(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to create grade", zap.Error(err))
		h.respondMutationError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, grade)
}

// UpdateGrade handles PUT /api/v1/admin/grades/{id}
// @Summary Update a grade
// @Description Apply a partial update to a grade. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Grade ID"
// @Param request body models.UpdateGradeRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request - invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 404 {object} map[string]string "Grade not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/grades/{id} [put]
func (h *AdminHandler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateGrade(r.Context(), id, &req); err != nil {
		h.Logger.Error("failed to update grade", zap.Error(err), zap.Int("id", id))
		h.respondMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteGrade handles DELETE /api/v1/admin/grades/{id}
// @Summary Delete a grade
// @Description Remove a grade and everything under it. Requires admin role.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Grade ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request - invalid ID"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 404 {object} map[string]string "Grade not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/grades/{id} [delete]
func (h *AdminHandler) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteGrade(r.Context(), id); err != nil {
		h.Logger.Error("failed to delete grade", zap.Error(err), zap.Int("id", id))
		h.respondMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateUnit handles POST /api/v1/admin/units
// @Summary Create a unit
// @Description Create a new unit inside a grade. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateUnitRequest true "Unit data"
// @Success 201 {object} models.Unit "Created unit"
// @Failure 400 {object} map[string]string "Bad request - invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/units [post]
func (h *AdminHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	unit, err := h.service.CreateUnit(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to create unit", zap.Error(err))
		h.respondMutationError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, unit)
}

// UpdateUnit handles PUT /api/v1/admin/units/{id}
// @Summary Update a unit
// @Description Apply a partial update to a unit. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Unit ID"
// @Param request body models.UpdateUnitRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request - invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/units/{id} [put]
func (h *AdminHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateUnit(r.Context(), id, &req); err != nil {
		h.Logger.Error("failed to update unit", zap.Error(err), zap.Int("id", id))
		h.respondMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteUnit handles DELETE /api/v1/admin/units/{id}
// @Summary Delete a unit
// @Description Remove a unit and its words. Requires admin role.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Unit ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request - invalid ID"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/units/{id} [delete]
func (h *AdminHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUnit(r.Context(), id); err != nil {
		h.Logger.Error("failed to delete unit", zap.Error(err), zap.Int("id", id))
		h.respondMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateWord handles POST /api/v1/admin/words
// @Summary Create a word
// @Description Create a new word inside a unit. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateWordRequest true "Word data"
// @Success 201 {object} models.Word "Created word"
// @Failure 400 {object} map[string]string "Bad request - invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/words [post]
func (h *AdminHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	word, err := h.service.CreateWord(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to create word", zap.Error(err))
		h.respondMutationError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, word)
}

// BatchCreateResponse reports how many words a batch insert created
type BatchCreateResponse struct {
	Created int `json:"created"`
}

// CreateWordsBatch handles POST /api/v1/admin/words/batch
// @Summary Create words in batch
// @Description Create multiple words inside a unit in one transaction. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.BatchCreateWordsRequest true "Unit ID and word list"
// @Success 201 {object} BatchCreateResponse "Number of words created"
// @Failure 400 {object} map[string]string "Bad request - invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/words/batch [post]
func (h *AdminHandler) CreateWordsBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchCreateWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.CreateWordsBatch(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to create words in batch", zap.Error(err))
		h.respondMutationError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, BatchCreateResponse{Created: created})
}

// UpdateWord handles PUT /api/v1/admin/words/{id}
// @Summary Update a word
// @Description Apply a partial update to a word. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Word ID"
// @Param request body models.UpdateWordRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request - invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/words/{id} [put]
func (h *AdminHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateWord(r.Context(), id, &req); err != nil {
		h.Logger.Error("failed to update word", zap.Error(err), zap.Int("id", id))
		h.respondMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteWord handles DELETE /api/v1/admin/words/{id}
// @Summary Delete a word
// @Description Remove a word from its unit. Requires admin role.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Word ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request - invalid ID"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/words/{id} [delete]
func (h *AdminHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteWord(r.Context(), id); err != nil {
		h.Logger.Error("failed to delete word", zap.Error(err), zap.Int("id", id))
		h.respondMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecognizeWords handles POST /api/v1/admin/ocr/recognize
// @Summary Recognize words from a photo
// @Description Run OCR over a photographed word list and return the extracted English words. Requires admin role.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param image formData file true "Word list photo"
// @Success 200 {object} models.OCRResult "Extracted words and raw text"
// @Failure 400 {object} map[string]string "Bad request - missing or oversized image"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Forbidden - admin role required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/admin/ocr/recognize [post]
func (h *AdminHandler) RecognizeWords(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxOCRImageSize); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		h.Logger.Error("failed to read image file", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxOCRImageSize))
	if err != nil {
		h.Logger.Error("failed to read image bytes", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	result, err := h.ocrService.Recognize(r.Context(), image)
	if err != nil {
		h.Logger.Error("failed to recognize words", zap.Error(err))
		statusCode := http.StatusInternalServerError
		if err.Error() == "image is required" {
			statusCode = http.StatusBadRequest
		}
		h.RespondError(w, statusCode, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}
