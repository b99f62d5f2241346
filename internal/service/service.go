package service

import (
	"context"

	"quickbite/internal/model"
)

// RecipeService defines read operations over the recipe catalogue.
type RecipeService interface {
	// Query returns the recipes matching every supplied filter, in catalogue order.
	Query(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, error)

	// GetByID retrieves a single recipe by ID.
	GetByID(ctx context.Context, id int) (*model.Recipe, error)

	// Random returns up to count distinct recipes in random order.
	// A count below 1 falls back to DefaultRandomCount.
	Random(ctx context.Context, count int) ([]model.Recipe, error)

	// Tags returns the sorted, de-duplicated union of all tags and dietary tags.
	Tags(ctx context.Context) ([]string, error)
}

// MealPlanService defines operations for meal plan management.
type MealPlanService interface {
	// List returns all meal plans in id order.
	List(ctx context.Context) ([]model.MealPlan, error)

	// Create creates a new meal plan. Missing meals default to an empty week.
	Create(ctx context.Context, req *model.CreateMealPlanRequest) (*model.MealPlan, error)

	// GetByID retrieves a meal plan by ID.
	GetByID(ctx context.Context, id int) (*model.MealPlan, error)

	// Update replaces the supplied fields; empty values keep the current ones.
	Update(ctx context.Context, id int, req *model.UpdateMealPlanRequest) (*model.MealPlan, error)

	// Delete removes a meal plan.
	Delete(ctx context.Context, id int) error

	// AssignSlot puts a recipe into one day/meal slot.
	AssignSlot(ctx context.Context, id int, req *model.AssignSlotRequest) (*model.MealPlan, error)

	// ClearSlot empties one day/meal slot.
	ClearSlot(ctx context.Context, id int, req *model.ClearSlotRequest) (*model.MealPlan, error)
}
