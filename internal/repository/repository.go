package repository

import (
	"context"

	"quickbite/internal/model"
)

// RecipeRepository defines the interface for read-only catalogue access.
type RecipeRepository interface {
	// GetAll returns every recipe in catalogue order.
	GetAll(ctx context.Context) ([]model.Recipe, error)

	// GetByID retrieves a single recipe by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int) (*model.Recipe, error)
}

// MealPlanRepository defines the interface for meal plan persistence.
// Implementations never hand out references to their stored state.
type MealPlanRepository interface {
	// List returns all meal plans in id order.
	List(ctx context.Context) ([]model.MealPlan, error)

	// Create stores a new meal plan and assigns it the next sequential ID.
	Create(ctx context.Context, plan *model.MealPlan) error

	// GetByID retrieves a meal plan by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int) (*model.MealPlan, error)

	// Modify loads a meal plan, applies fn and persists the result as one unit.
	// If fn returns an error nothing is written. Returns nil when the plan is absent.
	Modify(ctx context.Context, id int, fn func(plan *model.MealPlan) error) (*model.MealPlan, error)

	// Delete removes a meal plan. Reports whether it existed.
	Delete(ctx context.Context, id int) (bool, error)
}
