package model

import (
	"fmt"
	"strings"
)

// Difficulty levels accepted in the catalogue. Stored values may use any case.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Nutrition holds optional per-serving nutrition facts.
type Nutrition struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  string  `json:"protein" yaml:"protein"`
	Carbs    string  `json:"carbs" yaml:"carbs"`
	Fat      string  `json:"fat" yaml:"fat"`
}

// Recipe represents a recipe in the catalogue. Recipes are loaded once at startup
// and never mutated.
type Recipe struct {
	ID           int        `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Description  string     `json:"description" yaml:"description"`
	PrepTime     int        `json:"prepTime" yaml:"prepTime"`
	CookTime     int        `json:"cookTime" yaml:"cookTime"`
	TotalTime    int        `json:"totalTime" yaml:"totalTime"`
	Servings     int        `json:"servings" yaml:"servings"`
	Difficulty   string     `json:"difficulty" yaml:"difficulty"`
	DietaryTags  []string   `json:"dietaryTags" yaml:"dietaryTags"`
	Tags         []string   `json:"tags" yaml:"tags"`
	Ingredients  []string   `json:"ingredients" yaml:"ingredients"`
	Instructions []string   `json:"instructions" yaml:"instructions"`
	Image        string     `json:"image,omitempty" yaml:"image"`
	Nutrition    *Nutrition `json:"nutrition,omitempty" yaml:"nutrition"`
}

// Validate checks the invariants every catalogue record must satisfy.
func (r *Recipe) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("recipe id must be positive, got %d", r.ID)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("recipe %d: title is required", r.ID)
	}
	if r.PrepTime < 0 || r.CookTime < 0 || r.TotalTime < 0 {
		return fmt.Errorf("recipe %d: times must not be negative", r.ID)
	}
	if r.Servings <= 0 {
		return fmt.Errorf("recipe %d: servings must be positive", r.ID)
	}
	switch strings.ToLower(r.Difficulty) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("recipe %d: invalid difficulty %q", r.ID, r.Difficulty)
	}
	return nil
}

// RecipeQuery holds the optional filters applied to the catalogue.
// Nil pointers and empty strings mean "filter absent".
type RecipeQuery struct {
	MaxPrepTime  *int
	MaxTotalTime *int
	Diet         string
	Difficulty   string
	Tags         []string
	Search       string
	Limit        *int
}

// RecipeListResponse is the payload returned by GET /api/recipes.
type RecipeListResponse struct {
	Recipes []Recipe          `json:"recipes"`
	Total   int               `json:"total"`
	Filters map[string]string `json:"filters"`
}

// RandomRecipesResponse is the payload returned by GET /api/recipes/random/{count}.
type RandomRecipesResponse struct {
	Recipes []Recipe `json:"recipes"`
	Total   int      `json:"total"`
}

// TagsResponse is the payload returned by GET /api/recipes/meta/tags.
type TagsResponse struct {
	Tags  []string `json:"tags"`
	Total int      `json:"total"`
}
