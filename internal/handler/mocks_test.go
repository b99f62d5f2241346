package handler

import (
	"context"

	"quickbite/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of RecipeService.
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Query(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetByID(ctx context.Context, id int) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Random(ctx context.Context, count int) ([]model.Recipe, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Tags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockMealPlanService is a mock implementation of MealPlanService.
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) List(ctx context.Context) ([]model.MealPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) Create(ctx context.Context, req *model.CreateMealPlanRequest) (*model.MealPlan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) GetByID(ctx context.Context, id int) (*model.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) Update(ctx context.Context, id int, req *model.UpdateMealPlanRequest) (*model.MealPlan, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMealPlanService) AssignSlot(ctx context.Context, id int, req *model.AssignSlotRequest) (*model.MealPlan, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) ClearSlot(ctx context.Context, id int, req *model.ClearSlotRequest) (*model.MealPlan, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}
