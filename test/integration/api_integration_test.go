package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"quickbite/internal/catalog"
	"quickbite/internal/handler"
	"quickbite/internal/model"
	"quickbite/internal/repository"
	"quickbite/internal/router"
	"quickbite/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, mealPlanRepo repository.MealPlanRepository) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	ctx := context.Background()

	recipes, err := catalog.LoadAll(ctx, catalog.NewFileLoader(logger), []string{CatalogPath}, logger)
	require.NoError(t, err)

	// Initialize services
	recipeService := service.NewRecipeService(repository.NewRecipeRepository(recipes, logger), logger)
	mealPlanService := service.NewMealPlanService(mealPlanRepo, logger)

	// Initialize handlers
	recipeHandler := handler.NewRecipeHandler(recipeService, logger)
	mealPlanHandler := handler.NewMealPlanHandler(mealPlanService, logger)
	healthHandler := handler.NewHealthHandler(logger)

	// Create router
	return router.New(recipeHandler, mealPlanHandler, healthHandler, router.Options{}, logger)
}

func doRequest(t *testing.T, server http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestRecipeAPI_Integration(t *testing.T) {
	server := setupTestServer(t, repository.NewMemoryMealPlanRepository(nil, zerolog.Nop()))

	t.Run("GET /api/recipes returns the catalogue", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/recipes", nil)
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[model.RecipeListResponse](t, w)
		assert.Len(t, response.Recipes, 10)
		assert.Equal(t, 10, response.Total)
		assert.Empty(t, response.Filters)
	})

	t.Run("Recipe 1 matches the documented filters", func(t *testing.T) {
		tests := []struct {
			query    string
			included bool
		}{
			{query: "maxTotalTime=20", included: true},
			{query: "diet=vegetarian", included: true},
			{query: "difficulty=hard", included: false},
			{query: "search=AVOCADO", included: true},
		}

		for _, tt := range tests {
			w := doRequest(t, server, http.MethodGet, "/api/recipes?"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code, tt.query)

			response := decode[model.RecipeListResponse](t, w)
			found := slices.ContainsFunc(response.Recipes, func(r model.Recipe) bool { return r.ID == 1 })
			assert.Equal(t, tt.included, found, tt.query)
		}
	})

	t.Run("Every result satisfies every filter", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/recipes?maxTotalTime=30&diet=vegetarian&difficulty=easy", nil)
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[model.RecipeListResponse](t, w)
		require.NotEmpty(t, response.Recipes)
		for _, r := range response.Recipes {
			assert.LessOrEqual(t, r.TotalTime, 30)
			assert.Equal(t, "easy", strings.ToLower(r.Difficulty))
			assert.True(t, slices.ContainsFunc(r.DietaryTags, func(tag string) bool {
				return strings.Contains(strings.ToLower(tag), "vegetarian")
			}))
		}
		assert.Equal(t, map[string]string{
			"maxTotalTime": "30",
			"diet":         "vegetarian",
			"difficulty":   "easy",
		}, response.Filters)
	})

	t.Run("Limit truncates and total counts the page", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/recipes?limit=2", nil)
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[model.RecipeListResponse](t, w)
		assert.Len(t, response.Recipes, 2)
		assert.Equal(t, 2, response.Total)
		assert.Equal(t, 1, response.Recipes[0].ID)
		assert.Equal(t, 2, response.Recipes[1].ID)
	})

	t.Run("Blank tag term matches every tagged recipe", func(t *testing.T) {
		tests := []struct {
			query    string
			expected int
		}{
			{query: "tags=zzz", expected: 0},
			{query: "tags=zzz,", expected: 10},
			{query: "tags=italian,", expected: 10},
			{query: "tags=,", expected: 10},
			{query: "tags=italian", expected: 2},
		}

		for _, tt := range tests {
			w := doRequest(t, server, http.MethodGet, "/api/recipes?"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code, tt.query)

			response := decode[model.RecipeListResponse](t, w)
			assert.Equal(t, tt.expected, response.Total, tt.query)
		}
	})

	t.Run("GET /api/recipes/1 returns the full record", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/recipes/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))
		for _, key := range []string{"id", "title", "description", "ingredients", "instructions",
			"prepTime", "cookTime", "totalTime", "servings", "difficulty", "dietaryTags", "tags"} {
			assert.Contains(t, raw, key)
		}
		assert.JSONEq(t, `"5-Minute Avocado Toast"`, string(raw["title"]))
	})

	t.Run("Unknown and invalid recipe ids are 404", func(t *testing.T) {
		for _, path := range []string{"/api/recipes/999", "/api/recipes/invalid"} {
			w := doRequest(t, server, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code, path)
			assert.JSONEq(t, `{"error":"Recipe not found"}`, w.Body.String(), path)
		}
	})

	t.Run("Random recipes are distinct and bounded", func(t *testing.T) {
		tests := []struct {
			path     string
			expected int
		}{
			{path: "/api/recipes/random/3", expected: 3},
			{path: "/api/recipes/random/100", expected: 10},
			{path: "/api/recipes/random/invalid", expected: 3},
			{path: "/api/recipes/random/0", expected: 3},
		}

		for _, tt := range tests {
			w := doRequest(t, server, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code, tt.path)

			response := decode[model.RandomRecipesResponse](t, w)
			assert.Len(t, response.Recipes, tt.expected, tt.path)
			assert.Equal(t, len(response.Recipes), response.Total, tt.path)

			seen := map[int]bool{}
			for _, r := range response.Recipes {
				assert.False(t, seen[r.ID], "duplicate recipe %d", r.ID)
				seen[r.ID] = true
			}
		}
	})

	t.Run("Tags are unique and sorted", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/recipes/meta/tags", nil)
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[model.TagsResponse](t, w)
		assert.Equal(t, len(response.Tags), response.Total)
		assert.True(t, slices.IsSorted(response.Tags))
		assert.Equal(t, response.Tags, slices.Compact(slices.Clone(response.Tags)))
		assert.Contains(t, response.Tags, "vegan")
		assert.Contains(t, response.Tags, "breakfast")
	})

	t.Run("Health", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[model.HealthResponse](t, w)
		assert.Equal(t, handler.HealthMessage, response.Message)
		assert.False(t, response.Timestamp.IsZero())
	})
}

// runMealPlanAPI walks a meal plan through its whole lifecycle over HTTP.
func runMealPlanAPI(t *testing.T, server http.Handler) {
	var created model.MealPlan

	t.Run("Create returns an empty week", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPost, "/api/meal-plans", map[string]string{"name": "Test", "week": "2024-01-01"})
		require.Equal(t, http.StatusCreated, w.Code)

		created = decode[model.MealPlan](t, w)
		assert.Equal(t, 1, created.ID)
		assert.Nil(t, created.Meals.Monday.Breakfast)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	})

	t.Run("Create without week is rejected", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPost, "/api/meal-plans", map[string]string{"name": "Test"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Name and week are required"}`, w.Body.String())
	})

	t.Run("Assign slot", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPost, "/api/meal-plans/1/meals",
			map[string]interface{}{"day": "monday", "mealType": "breakfast", "recipeId": 1})
		require.Equal(t, http.StatusOK, w.Code)

		plan := decode[model.MealPlan](t, w)
		require.NotNil(t, plan.Meals.Monday.Breakfast)
		assert.Equal(t, 1, *plan.Meals.Monday.Breakfast)
		assert.True(t, plan.UpdatedAt.After(created.UpdatedAt))
		assert.Equal(t, created.CreatedAt, plan.CreatedAt)
	})

	t.Run("Assign slot with invalid day", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPost, "/api/meal-plans/1/meals",
			map[string]interface{}{"day": "Monday", "mealType": "breakfast", "recipeId": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid day"}`, w.Body.String())
	})

	t.Run("Assign slot on missing plan checks existence first", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPost, "/api/meal-plans/999/meals", map[string]string{})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Meal plan not found"}`, w.Body.String())
	})

	t.Run("Update keeps omitted fields", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPut, "/api/meal-plans/1", map[string]string{"name": "Renamed"})
		require.Equal(t, http.StatusOK, w.Code)

		plan := decode[model.MealPlan](t, w)
		assert.Equal(t, "Renamed", plan.Name)
		assert.Equal(t, "2024-01-01", plan.Week)
		require.NotNil(t, plan.Meals.Monday.Breakfast)
	})

	t.Run("List", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/meal-plans", nil)
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[model.MealPlanListResponse](t, w)
		require.Len(t, response.MealPlans, 1)
		assert.Equal(t, 1, response.Total)
		assert.Equal(t, "Renamed", response.MealPlans[0].Name)
	})

	t.Run("Clear slot", func(t *testing.T) {
		w := doRequest(t, server, http.MethodDelete, "/api/meal-plans/1/meals",
			map[string]string{"day": "monday", "mealType": "breakfast"})
		require.Equal(t, http.StatusOK, w.Code)

		plan := decode[model.MealPlan](t, w)
		assert.Nil(t, plan.Meals.Monday.Breakfast)
	})

	t.Run("Delete then fetch", func(t *testing.T) {
		w := doRequest(t, server, http.MethodDelete, "/api/meal-plans/1", nil)
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		w = doRequest(t, server, http.MethodGet, "/api/meal-plans/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(t, server, http.MethodDelete, "/api/meal-plans/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Missing plan is 404", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/meal-plans/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Meal plan not found"}`, w.Body.String())
	})
}

func TestMealPlanAPI_Integration(t *testing.T) {
	runMealPlanAPI(t, setupTestServer(t, repository.NewMemoryMealPlanRepository(nil, zerolog.Nop())))
}

func TestMealPlanAPI_Postgres_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	CleanupDB(t, testDB.Pool)

	runMealPlanAPI(t, setupTestServer(t, repository.NewPostgresMealPlanRepository(testDB.Pool, zerolog.Nop())))
}

func TestMealPlanAPI_Mongo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testMongo := SetupTestMongo(t)

	runMealPlanAPI(t, setupTestServer(t, repository.NewMongoMealPlanRepository(testMongo.Database(t), zerolog.Nop())))
}
