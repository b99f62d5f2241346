package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"quickbite/internal/model"
	"quickbite/internal/repository"

	"github.com/rs/zerolog"
)

// DefaultRandomCount is the number of random recipes returned when the
// requested count is not a positive integer.
const DefaultRandomCount = 3

// recipeService implements RecipeService.
type recipeService struct {
	recipeRepo repository.RecipeRepository
	shuffle    func(n int, swap func(i, j int))
	logger     zerolog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(recipeRepo repository.RecipeRepository, logger zerolog.Logger) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		shuffle:    rand.Shuffle,
		logger:     logger.With().Str("service", "recipe").Logger(),
	}
}

// Query returns the recipes matching every supplied filter, truncated to the limit.
func (s *recipeService) Query(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, error) {
	recipes, err := s.recipeRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get recipes")
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}

	m := newMatcher(q)
	result := make([]model.Recipe, 0, len(recipes))
	for i := range recipes {
		if m.matches(&recipes[i]) {
			result = append(result, recipes[i])
		}
	}

	if q.Limit != nil && *q.Limit >= 0 && *q.Limit < len(result) {
		result = result[:*q.Limit]
	}

	s.logger.Debug().
		Int("catalog_size", len(recipes)).
		Int("count", len(result)).
		Msg("recipes queried")

	return result, nil
}

// GetByID retrieves a single recipe by ID.
func (s *recipeService) GetByID(ctx context.Context, id int) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("recipe_id", id).Msg("failed to get recipe by ID")
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if recipe == nil {
		s.logger.Debug().Int("recipe_id", id).Msg("recipe not found")
		return nil, model.ErrRecipeNotFound
	}

	return recipe, nil
}

// Random returns min(count, catalogue size) distinct recipes in random order.
func (s *recipeService) Random(ctx context.Context, count int) ([]model.Recipe, error) {
	if count < 1 {
		count = DefaultRandomCount
	}

	recipes, err := s.recipeRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get recipes")
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}

	s.shuffle(len(recipes), func(i, j int) {
		recipes[i], recipes[j] = recipes[j], recipes[i]
	})

	return recipes[:min(count, len(recipes))], nil
}

// Tags returns the sorted, de-duplicated union of all tags and dietary tags.
func (s *recipeService) Tags(ctx context.Context) ([]string, error) {
	recipes, err := s.recipeRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get recipes")
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}

	tags := []string{}
	for _, r := range recipes {
		tags = append(tags, r.Tags...)
		tags = append(tags, r.DietaryTags...)
	}
	slices.Sort(tags)

	return slices.Compact(tags), nil
}

// matcher holds a query with its string filters lower-cased once.
type matcher struct {
	q          model.RecipeQuery
	diet       string
	difficulty string
	search     string
	tags       []string
}

func newMatcher(q model.RecipeQuery) *matcher {
	m := &matcher{
		q:          q,
		diet:       strings.ToLower(q.Diet),
		difficulty: strings.ToLower(q.Difficulty),
		search:     strings.ToLower(q.Search),
	}
	// A blank term is kept and matches any recipe carrying at least one tag.
	for _, term := range q.Tags {
		m.tags = append(m.tags, strings.ToLower(strings.TrimSpace(term)))
	}
	return m
}

// matches reports whether r satisfies every supplied filter.
func (m *matcher) matches(r *model.Recipe) bool {
	if m.q.MaxPrepTime != nil && r.PrepTime > *m.q.MaxPrepTime {
		return false
	}
	if m.q.MaxTotalTime != nil && r.TotalTime > *m.q.MaxTotalTime {
		return false
	}
	if m.diet != "" && !anyContains(r.DietaryTags, m.diet) {
		return false
	}
	if m.difficulty != "" && strings.ToLower(r.Difficulty) != m.difficulty {
		return false
	}
	if len(m.tags) > 0 && !slices.ContainsFunc(m.tags, func(term string) bool {
		return anyContains(r.Tags, term)
	}) {
		return false
	}
	if m.search != "" &&
		!strings.Contains(strings.ToLower(r.Title), m.search) &&
		!strings.Contains(strings.ToLower(r.Description), m.search) &&
		!anyContains(r.Tags, m.search) {
		return false
	}
	return true
}

// anyContains reports whether some value contains the lower-case needle, ignoring case.
func anyContains(values []string, needle string) bool {
	return slices.ContainsFunc(values, func(v string) bool {
		return strings.Contains(strings.ToLower(v), needle)
	})
}
