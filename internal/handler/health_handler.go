package handler

import (
	"net/http"
	"time"

	"quickbite/internal/model"

	"github.com/rs/zerolog"
)

// HealthMessage is reported by GET /api/health.
const HealthMessage = "QuickBite API is running!"

// HealthHandler reports service liveness.
type HealthHandler struct {
	now    func() time.Time
	logger zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		now:    time.Now,
		logger: logger.With().Str("handler", "health").Logger(),
	}
}

// Health handles GET /api/health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, model.HealthResponse{
		Message:   HealthMessage,
		Timestamp: h.now().UTC().Truncate(time.Millisecond),
	}, h.logger)
}

// NotFound answers unknown /api/ routes.
func (h *HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "Not found", h.logger)
}
