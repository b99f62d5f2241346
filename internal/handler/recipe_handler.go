package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"quickbite/internal/model"
	"quickbite/internal/service"

	"github.com/rs/zerolog"
)

// RecipeHandler handles recipe-related HTTP requests.
type RecipeHandler struct {
	service service.RecipeService
	logger  zerolog.Logger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(service service.RecipeService, logger zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger.With().Str("handler", "recipe").Logger(),
	}
}

// List handles GET /api/recipes requests.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	recipes, err := h.service.Query(r.Context(), parseRecipeQuery(values))
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch recipes", h.logger)
		return
	}

	filters := make(map[string]string, len(values))
	for key := range values {
		filters[key] = values.Get(key)
	}

	writeJSON(w, r, http.StatusOK, model.RecipeListResponse{
		Recipes: recipes,
		Total:   len(recipes),
		Filters: filters,
	}, h.logger)
}

// GetByID handles GET /api/recipes/{id} requests.
func (h *RecipeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, model.ErrRecipeNotFound, "Failed to fetch recipe", h.logger)
		return
	}

	recipe, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch recipe", h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, recipe, h.logger)
}

// Random handles GET /api/recipes/random/{count} requests. A count that is
// not a positive integer falls back to the service default.
func (h *RecipeHandler) Random(w http.ResponseWriter, r *http.Request) {
	count, _ := strconv.Atoi(r.PathValue("count"))

	recipes, err := h.service.Random(r.Context(), count)
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch random recipes", h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, model.RandomRecipesResponse{
		Recipes: recipes,
		Total:   len(recipes),
	}, h.logger)
}

// Tags handles GET /api/recipes/meta/tags requests.
func (h *RecipeHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.Tags(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch tags", h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, model.TagsResponse{
		Tags:  tags,
		Total: len(tags),
	}, h.logger)
}

// parseRecipeQuery builds a query from URL parameters. Numeric parameters
// that fail a strict integer parse, and negative limits, are ignored.
func parseRecipeQuery(values url.Values) model.RecipeQuery {
	q := model.RecipeQuery{
		MaxPrepTime:  parseIntParam(values.Get("maxPrepTime")),
		MaxTotalTime: parseIntParam(values.Get("maxTotalTime")),
		Diet:         values.Get("diet"),
		Difficulty:   values.Get("difficulty"),
		Search:       values.Get("search"),
		Limit:        parseIntParam(values.Get("limit")),
	}

	if q.Limit != nil && *q.Limit < 0 {
		q.Limit = nil
	}

	if tags := values.Get("tags"); tags != "" {
		q.Tags = strings.Split(tags, ",")
	}

	return q
}

func parseIntParam(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}
