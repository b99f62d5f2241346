package handler

import (
	"net/http"

	"quickbite/internal/model"
	"quickbite/internal/service"

	"github.com/rs/zerolog"
)

// MealPlanHandler handles meal plan HTTP requests.
type MealPlanHandler struct {
	service service.MealPlanService
	logger  zerolog.Logger
}

// NewMealPlanHandler creates a new meal plan handler.
func NewMealPlanHandler(service service.MealPlanService, logger zerolog.Logger) *MealPlanHandler {
	return &MealPlanHandler{
		service: service,
		logger:  logger.With().Str("handler", "meal-plan").Logger(),
	}
}

// List handles GET /api/meal-plans requests.
func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch meal plans", h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, model.MealPlanListResponse{
		MealPlans: plans,
		Total:     len(plans),
	}, h.logger)
}

// Create handles POST /api/meal-plans requests.
func (h *MealPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMealPlanRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err, "Failed to create meal plan", h.logger)
		return
	}

	plan, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create meal plan", h.logger)
		return
	}

	writeJSON(w, r, http.StatusCreated, plan, h.logger)
}

// GetByID handles GET /api/meal-plans/{id} requests.
func (h *MealPlanHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, model.ErrMealPlanNotFound, "Failed to fetch meal plan", h.logger)
		return
	}

	plan, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch meal plan", h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, plan, h.logger)
}

// Update handles PUT /api/meal-plans/{id} requests.
func (h *MealPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, model.ErrMealPlanNotFound, "Failed to update meal plan", h.logger)
		return
	}

	var req model.UpdateMealPlanRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err, "Failed to update meal plan", h.logger)
		return
	}

	plan, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update meal plan", h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, plan, h.logger)
}

// Delete handles DELETE /api/meal-plans/{id} requests.
func (h *MealPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, model.ErrMealPlanNotFound, "Failed to delete meal plan", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Failed to delete meal plan", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssignSlot handles POST /api/meal-plans/{id}/meals requests.
func (h *MealPlanHandler) AssignSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, model.ErrMealPlanNotFound, "Failed to add recipe to meal plan", h.logger)
		return
	}

	var req model.AssignSlotRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err, "Failed to add recipe to meal plan", h.logger)
		return
	}

	plan, err := h.service.AssignSlot(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to add recipe to meal plan", h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, plan, h.logger)
}

// ClearSlot handles DELETE /api/meal-plans/{id}/meals requests.
func (h *MealPlanHandler) ClearSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, model.ErrMealPlanNotFound, "Failed to remove recipe from meal plan", h.logger)
		return
	}

	var req model.ClearSlotRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err, "Failed to remove recipe from meal plan", h.logger)
		return
	}

	plan, err := h.service.ClearSlot(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to remove recipe from meal plan", h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, plan, h.logger)
}
