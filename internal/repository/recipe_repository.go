package repository

import (
	"context"

	"quickbite/internal/model"

	"github.com/rs/zerolog"
)

// recipeRepository implements RecipeRepository over the loaded catalogue.
type recipeRepository struct {
	recipes []model.Recipe
	index   map[int]int
	logger  zerolog.Logger
}

// NewRecipeRepository creates a catalogue repository. The slice is copied; the
// catalogue is immutable afterwards and safe for concurrent reads.
func NewRecipeRepository(recipes []model.Recipe, logger zerolog.Logger) RecipeRepository {
	stored := make([]model.Recipe, len(recipes))
	copy(stored, recipes)

	index := make(map[int]int, len(stored))
	for i, r := range stored {
		index[r.ID] = i
	}

	return &recipeRepository{
		recipes: stored,
		index:   index,
		logger:  logger.With().Str("repository", "recipe").Logger(),
	}
}

// GetAll returns every recipe in catalogue order.
func (r *recipeRepository) GetAll(ctx context.Context) ([]model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]model.Recipe, len(r.recipes))
	copy(out, r.recipes)
	return out, nil
}

// GetByID retrieves a single recipe by its ID.
func (r *recipeRepository) GetByID(ctx context.Context, id int) (*model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i, ok := r.index[id]
	if !ok {
		r.logger.Debug().Int("recipe_id", id).Msg("recipe not found")
		return nil, nil
	}

	recipe := r.recipes[i]
	return &recipe, nil
}
