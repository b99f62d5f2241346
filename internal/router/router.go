package router

import (
	"net/http"

	"quickbite/internal/handler"
	"quickbite/internal/middleware"

	"github.com/rs/zerolog"
)

// Options configures the optional parts of the router.
type Options struct {
	// AllowedOrigin is sent as Access-Control-Allow-Origin. Empty means "*".
	AllowedOrigin string
	// StaticDir, when set, serves the built frontend for every non-API path.
	StaticDir string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	recipeHandler *handler.RecipeHandler,
	mealPlanHandler *handler.MealPlanHandler,
	healthHandler *handler.HealthHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Recipe routes. The fixed random/ and meta/ segments never clash with {id}.
	mux.HandleFunc("GET /api/recipes", recipeHandler.List)
	mux.HandleFunc("GET /api/recipes/{id}", recipeHandler.GetByID)
	mux.HandleFunc("GET /api/recipes/random/{count}", recipeHandler.Random)
	mux.HandleFunc("GET /api/recipes/meta/tags", recipeHandler.Tags)

	// Meal plan routes
	mux.HandleFunc("GET /api/meal-plans", mealPlanHandler.List)
	mux.HandleFunc("POST /api/meal-plans", mealPlanHandler.Create)
	mux.HandleFunc("GET /api/meal-plans/{id}", mealPlanHandler.GetByID)
	mux.HandleFunc("PUT /api/meal-plans/{id}", mealPlanHandler.Update)
	mux.HandleFunc("DELETE /api/meal-plans/{id}", mealPlanHandler.Delete)
	mux.HandleFunc("POST /api/meal-plans/{id}/meals", mealPlanHandler.AssignSlot)
	mux.HandleFunc("DELETE /api/meal-plans/{id}/meals", mealPlanHandler.ClearSlot)

	// Anything else under /api/ is a JSON 404, whatever the method.
	mux.HandleFunc("/api/", healthHandler.NotFound)

	if opts.StaticDir != "" {
		mux.Handle("/", handler.NewStaticHandler(opts.StaticDir))
		logger.Info().Str("dir", opts.StaticDir).Msg("serving static frontend")
	}

	// Apply middleware in order: Recovery -> RequestID -> Logging -> SecurityHeaders -> CORS
	var h http.Handler = mux
	h = middleware.CORS(opts.AllowedOrigin)(h)
	h = middleware.SecurityHeaders(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
