package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickbite/internal/model"
	"quickbite/internal/repository"

	"github.com/rs/zerolog"
)

// mealPlanService implements MealPlanService.
type mealPlanService struct {
	mealPlanRepo repository.MealPlanRepository
	now          func() time.Time
	logger       zerolog.Logger
}

// NewMealPlanService creates a new meal plan service.
func NewMealPlanService(mealPlanRepo repository.MealPlanRepository, logger zerolog.Logger) MealPlanService {
	return &mealPlanService{
		mealPlanRepo: mealPlanRepo,
		now:          time.Now,
		logger:       logger.With().Str("service", "meal-plan").Logger(),
	}
}

// List returns all meal plans in id order.
func (s *mealPlanService) List(ctx context.Context) ([]model.MealPlan, error) {
	plans, err := s.mealPlanRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list meal plans")
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	if plans == nil {
		plans = []model.MealPlan{}
	}
	return plans, nil
}

// Create creates a new meal plan.
func (s *mealPlanService) Create(ctx context.Context, req *model.CreateMealPlanRequest) (*model.MealPlan, error) {
	if req.Name == "" || req.Week == "" {
		s.logger.Warn().Msg("meal plan name or week missing")
		return nil, model.ErrNameAndWeekRequired
	}

	now := s.timestamp(time.Time{})
	plan := &model.MealPlan{
		Name:      req.Name,
		Week:      req.Week,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Meals != nil {
		plan.Meals = req.Meals.Clone()
	}

	if err := s.mealPlanRepo.Create(ctx, plan); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create meal plan")
		return nil, fmt.Errorf("failed to create meal plan: %w", err)
	}

	s.logger.Info().
		Int("meal_plan_id", plan.ID).
		Str("week", plan.Week).
		Msg("meal plan created")

	return plan, nil
}

// GetByID retrieves a meal plan by ID.
func (s *mealPlanService) GetByID(ctx context.Context, id int) (*model.MealPlan, error) {
	plan, err := s.mealPlanRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to get meal plan by ID")
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}

	if plan == nil {
		s.logger.Debug().Int("meal_plan_id", id).Msg("meal plan not found")
		return nil, model.ErrMealPlanNotFound
	}

	return plan, nil
}

// Update merges the request into the plan. An empty name or week, or missing
// meals, leaves the current value in place.
func (s *mealPlanService) Update(ctx context.Context, id int, req *model.UpdateMealPlanRequest) (*model.MealPlan, error) {
	return s.modify(ctx, id, "update", func(plan *model.MealPlan) error {
		if req.Name != "" {
			plan.Name = req.Name
		}
		if req.Week != "" {
			plan.Week = req.Week
		}
		if req.Meals != nil {
			plan.Meals = req.Meals.Clone()
		}
		return nil
	})
}

// Delete removes a meal plan.
func (s *mealPlanService) Delete(ctx context.Context, id int) error {
	deleted, err := s.mealPlanRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to delete meal plan")
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}

	if !deleted {
		s.logger.Debug().Int("meal_plan_id", id).Msg("meal plan not found")
		return model.ErrMealPlanNotFound
	}

	s.logger.Info().Int("meal_plan_id", id).Msg("meal plan deleted")
	return nil
}

// AssignSlot puts a recipe into one day/meal slot. The recipe is not checked
// against the catalogue.
func (s *mealPlanService) AssignSlot(ctx context.Context, id int, req *model.AssignSlotRequest) (*model.MealPlan, error) {
	return s.modify(ctx, id, "assign slot", func(plan *model.MealPlan) error {
		if req.Day == "" || req.MealType == "" || req.RecipeID == nil || *req.RecipeID == 0 {
			return model.ErrAssignFieldsRequired
		}

		slot, err := lookupSlot(plan, req.Day, req.MealType)
		if err != nil {
			return err
		}

		recipeID := *req.RecipeID
		*slot = &recipeID
		return nil
	})
}

// ClearSlot empties one day/meal slot.
func (s *mealPlanService) ClearSlot(ctx context.Context, id int, req *model.ClearSlotRequest) (*model.MealPlan, error) {
	return s.modify(ctx, id, "clear slot", func(plan *model.MealPlan) error {
		if req.Day == "" || req.MealType == "" {
			return model.ErrClearFieldsRequired
		}

		slot, err := lookupSlot(plan, req.Day, req.MealType)
		if err != nil {
			return err
		}

		*slot = nil
		return nil
	})
}

// modify runs fn against the stored plan and refreshes updatedAt. The plan's
// existence is checked before fn runs, so a missing plan wins over bad input.
func (s *mealPlanService) modify(ctx context.Context, id int, op string, fn func(plan *model.MealPlan) error) (*model.MealPlan, error) {
	plan, err := s.mealPlanRepo.Modify(ctx, id, func(plan *model.MealPlan) error {
		if err := fn(plan); err != nil {
			return err
		}
		plan.UpdatedAt = s.timestamp(plan.UpdatedAt)
		return nil
	})
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			s.logger.Warn().
				Int("meal_plan_id", id).
				Str("operation", op).
				Str("error_code", domainErr.Code).
				Msg(domainErr.Message)
			return nil, err
		}
		s.logger.Error().Err(err).Int("meal_plan_id", id).Str("operation", op).Msg("failed to modify meal plan")
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	if plan == nil {
		s.logger.Debug().Int("meal_plan_id", id).Str("operation", op).Msg("meal plan not found")
		return nil, model.ErrMealPlanNotFound
	}

	s.logger.Debug().Int("meal_plan_id", id).Str("operation", op).Msg("meal plan modified")
	return plan, nil
}

// timestamp returns the current UTC time at millisecond precision, bumped past
// prev when the clock has not advanced.
func (s *mealPlanService) timestamp(prev time.Time) time.Time {
	now := s.now().UTC().Truncate(time.Millisecond)
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func lookupSlot(plan *model.MealPlan, day, mealType string) (**int, error) {
	dayMeals := plan.Meals.Day(day)
	if dayMeals == nil {
		return nil, model.ErrInvalidDay
	}
	slot := dayMeals.Slot(mealType)
	if slot == nil {
		return nil, model.ErrInvalidMealType
	}
	return slot, nil
}
