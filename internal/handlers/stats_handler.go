package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vocabbook/backend/internal/auth"
	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

// StatsService is the interface that wraps methods for dashboard statistics business logic
type StatsService interface {
	// GetDashboard collects today's quiz counters and the wrong word totals
	//
	// "userID" parameter is used to identify the user.
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	GetDashboard(ctx context.Context, userID int) (*models.DashboardStats, error)
}

// StatsHandler handles dashboard statistics HTTP requests
type StatsHandler struct {
	BaseHandler
	service StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all stats handler routes
func (h *StatsHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/stats/dashboard", h.GetDashboard)
	})
}

// GetDashboard handles GET /api/v1/stats/dashboard
// @Summary Get dashboard statistics
// @Description Get today's quiz counters and the wrong word book totals. Requires authentication.
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.DashboardStats "Dashboard aggregates"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/stats/dashboard [get]
func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	stats, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get dashboard stats", zap.Error(err), zap.Int("user_id", userID))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}
