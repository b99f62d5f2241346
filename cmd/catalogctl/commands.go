package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"quickbite/internal/catalog"
	"quickbite/internal/config"
	"quickbite/internal/model"
	"quickbite/internal/repository"
	"quickbite/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect QuickBite recipe catalogue files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newValidateCmd(opts),
		newTagsCmd(opts),
		newQueryCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger(w io.Writer) zerolog.Logger {
	return config.NewLoggerTo(config.LoggerConfig{Level: o.logLevel, Format: "console"}, w)
}

// loadRecipes loads and validates the given catalogue files.
func (o *rootOptions) loadRecipes(ctx context.Context, cmd *cobra.Command, files []string) ([]model.Recipe, zerolog.Logger, error) {
	logger := o.logger(cmd.ErrOrStderr())
	recipes, err := catalog.LoadAll(ctx, catalog.NewFileLoader(logger), files, logger)
	return recipes, logger, err
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that catalogue files decode and every recipe is valid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, _, err := opts.loadRecipes(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d recipes in %d file(s)\n", len(recipes), len(args))
			return nil
		},
	}
}

func newTagsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags <file>...",
		Short: "List the distinct tags of a catalogue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.recipeService(cmd, args)
			if err != nil {
				return err
			}
			tags, err := svc.Tags(cmd.Context())
			if err != nil {
				return err
			}
			for _, tag := range tags {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func (o *rootOptions) recipeService(cmd *cobra.Command, files []string) (service.RecipeService, error) {
	recipes, logger, err := o.loadRecipes(cmd.Context(), cmd, files)
	if err != nil {
		return nil, err
	}
	return service.NewRecipeService(repository.NewRecipeRepository(recipes, logger), logger), nil
}

type queryOptions struct {
	maxPrepTime  int
	maxTotalTime int
	diet         string
	difficulty   string
	tags         string
	search       string
	limit        int
	asJSON       bool
}

func newQueryCmd(opts *rootOptions) *cobra.Command {
	q := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <file>...",
		Short: "Filter a catalogue the way GET /api/recipes does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.recipeService(cmd, args)
			if err != nil {
				return err
			}
			recipes, err := svc.Query(cmd.Context(), q.toQuery(cmd))
			if err != nil {
				return err
			}
			return writeRecipes(cmd.OutOrStdout(), recipes, q.asJSON)
		},
	}

	f := cmd.Flags()
	f.IntVar(&q.maxPrepTime, "max-prep-time", 0, "maximum preparation time in minutes")
	f.IntVar(&q.maxTotalTime, "max-total-time", 0, "maximum total time in minutes")
	f.StringVar(&q.diet, "diet", "", "dietary tag substring")
	f.StringVar(&q.difficulty, "difficulty", "", "exact difficulty (easy, medium, hard)")
	f.StringVar(&q.tags, "tags", "", "comma-separated tags, any of which must match")
	f.StringVar(&q.search, "search", "", "substring of title, description or a tag")
	f.IntVar(&q.limit, "limit", 0, "maximum number of results")
	f.BoolVar(&q.asJSON, "json", false, "print recipes as JSON")
	return cmd
}

// toQuery converts the flags that were set into a recipe query.
func (q *queryOptions) toQuery(cmd *cobra.Command) model.RecipeQuery {
	f := cmd.Flags()
	intFlag := func(name string, v int) *int {
		if !f.Changed(name) || v < 0 {
			return nil
		}
		return &v
	}

	query := model.RecipeQuery{
		MaxPrepTime:  intFlag("max-prep-time", q.maxPrepTime),
		MaxTotalTime: intFlag("max-total-time", q.maxTotalTime),
		Diet:         q.diet,
		Difficulty:   q.difficulty,
		Search:       q.search,
		Limit:        intFlag("limit", q.limit),
	}
	if q.tags != "" {
		query.Tags = strings.Split(q.tags, ",")
	}
	return query
}

func writeRecipes(w io.Writer, recipes []model.Recipe, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(model.RandomRecipesResponse{Recipes: recipes, Total: len(recipes)})
	}
	for _, r := range recipes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d min\n", r.ID, r.Title, r.Difficulty, r.TotalTime)
	}
	fmt.Fprintf(w, "%d recipe(s)\n", len(recipes))
	return nil
}
