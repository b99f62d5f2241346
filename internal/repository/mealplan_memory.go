package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"quickbite/internal/model"

	"github.com/rs/zerolog"
)

// memoryMealPlanRepository implements MealPlanRepository in process memory.
// Meal plans are lost on restart.
type memoryMealPlanRepository struct {
	mu     sync.RWMutex
	plans  []*model.MealPlan // id order
	nextID int
	logger zerolog.Logger
}

// NewMemoryMealPlanRepository creates an in-memory store seeded with initial.
// New IDs continue after the highest seeded ID.
func NewMemoryMealPlanRepository(initial []model.MealPlan, logger zerolog.Logger) MealPlanRepository {
	plans := make([]*model.MealPlan, 0, len(initial))
	maxID := 0
	for i := range initial {
		plans = append(plans, initial[i].Clone())
		maxID = max(maxID, initial[i].ID)
	}
	slices.SortFunc(plans, func(a, b *model.MealPlan) int { return cmp.Compare(a.ID, b.ID) })

	return &memoryMealPlanRepository{
		plans:  plans,
		nextID: maxID + 1,
		logger: logger.With().Str("repository", "meal-plan").Str("driver", "memory").Logger(),
	}
}

// List returns all meal plans in id order.
func (r *memoryMealPlanRepository) List(ctx context.Context) ([]model.MealPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.MealPlan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, *p.Clone())
	}
	return out, nil
}

// Create stores a new meal plan and assigns it the next sequential ID.
func (r *memoryMealPlanRepository) Create(ctx context.Context, plan *model.MealPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	plan.ID = r.nextID
	r.nextID++
	r.plans = append(r.plans, plan.Clone())

	r.logger.Debug().Int("meal_plan_id", plan.ID).Msg("meal plan created")
	return nil
}

// GetByID retrieves a meal plan by its ID.
func (r *memoryMealPlanRepository) GetByID(ctx context.Context, id int) (*model.MealPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.find(id)
	if i < 0 {
		r.logger.Debug().Int("meal_plan_id", id).Msg("meal plan not found")
		return nil, nil
	}
	return r.plans[i].Clone(), nil
}

// Modify applies fn to a copy of the plan and swaps it in on success.
func (r *memoryMealPlanRepository) Modify(ctx context.Context, id int, fn func(plan *model.MealPlan) error) (*model.MealPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(id)
	if i < 0 {
		r.logger.Debug().Int("meal_plan_id", id).Msg("meal plan not found")
		return nil, nil
	}

	working := r.plans[i].Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = id
	r.plans[i] = working

	return working.Clone(), nil
}

// Delete removes a meal plan.
func (r *memoryMealPlanRepository) Delete(ctx context.Context, id int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(id)
	if i < 0 {
		return false, nil
	}
	r.plans = slices.Delete(r.plans, i, i+1)

	r.logger.Debug().Int("meal_plan_id", id).Msg("meal plan deleted")
	return true, nil
}

// find returns the index of the plan with id, or -1. Callers hold the lock.
func (r *memoryMealPlanRepository) find(id int) int {
	i, ok := slices.BinarySearchFunc(r.plans, id, func(p *model.MealPlan, id int) int {
		return cmp.Compare(p.ID, id)
	})
	if !ok {
		return -1
	}
	return i
}
