package catalog

import (
	"context"
	"fmt"

	"quickbite/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// LoadAll loads every source concurrently and returns their recipes concatenated
// in the order the sources were given. Every record is validated and ids must be
// unique across all sources.
func LoadAll(ctx context.Context, loader Loader, sources []string, logger zerolog.Logger) ([]model.Recipe, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no catalog sources configured")
	}

	logger = logger.With().Str("component", "catalog").Logger()

	results := make([][]model.Recipe, len(sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, source := range sources {
		g.Go(func() error {
			recipes, err := loader.Load(gctx, source)
			if err != nil {
				return fmt.Errorf("failed to load catalog %s: %w", source, err)
			}
			results[i] = recipes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("catalog load failed")
		return nil, err
	}

	var all []model.Recipe
	origin := make(map[int]string)

	for i, recipes := range results {
		for _, r := range recipes {
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("invalid recipe in %s: %w", sources[i], err)
			}
			if prev, ok := origin[r.ID]; ok {
				return nil, fmt.Errorf("duplicate recipe id %d in %s (first seen in %s)", r.ID, sources[i], prev)
			}
			origin[r.ID] = sources[i]
			all = append(all, r)
		}
		logger.Debug().Str("source", sources[i]).Int("recipes", len(recipes)).Msg("catalog source merged")
	}

	logger.Info().
		Int("sources", len(sources)).
		Int("total_recipes", len(all)).
		Msg("catalog loaded")

	return all, nil
}
