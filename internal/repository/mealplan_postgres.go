package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quickbite/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// mealPlanSchema creates the meal_plans table. Meals are stored as one JSONB
// document so the aggregate is always written whole.
const mealPlanSchema = `
	CREATE TABLE IF NOT EXISTS meal_plans (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		week TEXT NOT NULL,
		meals JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)
`

const mealPlanColumns = `id, name, week, meals, created_at, updated_at`

// postgresMealPlanRepository implements MealPlanRepository using PostgreSQL.
type postgresMealPlanRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresMealPlanRepository creates a new PostgreSQL-backed meal plan repository.
func NewPostgresMealPlanRepository(pool *pgxpool.Pool, logger zerolog.Logger) MealPlanRepository {
	return &postgresMealPlanRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "meal-plan").Str("driver", "postgres").Logger(),
	}
}

// EnsureMealPlanSchema creates the meal_plans table if it does not exist.
func EnsureMealPlanSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, mealPlanSchema); err != nil {
		return fmt.Errorf("failed to create meal_plans table: %w", err)
	}
	return nil
}

// List returns all meal plans in id order.
func (r *postgresMealPlanRepository) List(ctx context.Context) ([]model.MealPlan, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query meal plans")
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}
	defer rows.Close()

	plans := []model.MealPlan{}
	for rows.Next() {
		plan, err := scanMealPlan(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan meal plan row")
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, *plan)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating meal plan rows")
		return nil, fmt.Errorf("error iterating meal plans: %w", err)
	}

	return plans, nil
}

// Create inserts a new meal plan; the ID comes from the table sequence.
func (r *postgresMealPlanRepository) Create(ctx context.Context, plan *model.MealPlan) error {
	meals, err := json.Marshal(plan.Meals)
	if err != nil {
		return fmt.Errorf("failed to encode meals: %w", err)
	}

	query := `
		INSERT INTO meal_plans (name, week, meals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err = r.pool.QueryRow(ctx, query, plan.Name, plan.Week, meals, plan.CreatedAt, plan.UpdatedAt).Scan(&plan.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", plan.Name).Msg("failed to create meal plan")
		return fmt.Errorf("failed to create meal plan: %w", err)
	}

	r.logger.Debug().Int("meal_plan_id", plan.ID).Msg("meal plan created successfully")
	return nil
}

// GetByID retrieves a meal plan by its ID.
func (r *postgresMealPlanRepository) GetByID(ctx context.Context, id int) (*model.MealPlan, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans WHERE id = $1`

	plan, err := scanMealPlan(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int("meal_plan_id", id).Msg("meal plan not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to query meal plan")
		return nil, fmt.Errorf("failed to query meal plan: %w", err)
	}

	return plan, nil
}

// Modify locks the row, applies fn and writes the plan back in one transaction.
func (r *postgresMealPlanRepository) Modify(ctx context.Context, id int, fn func(plan *model.MealPlan) error) (_ *model.MealPlan, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.Error().Err(rbErr).Int("meal_plan_id", id).Msg("failed to rollback transaction")
			}
		}
	}()

	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans WHERE id = $1 FOR UPDATE`

	plan, err := scanMealPlan(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int("meal_plan_id", id).Msg("meal plan not found")
			// Release the transaction; nothing was locked.
			_ = tx.Rollback(ctx)
			return nil, nil
		}
		r.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to lock meal plan")
		return nil, fmt.Errorf("failed to query meal plan: %w", err)
	}

	if err = fn(plan); err != nil {
		return nil, err
	}
	plan.ID = id

	meals, err := json.Marshal(plan.Meals)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meals: %w", err)
	}

	update := `
		UPDATE meal_plans
		SET name = $2, week = $3, meals = $4, created_at = $5, updated_at = $6
		WHERE id = $1
	`
	if _, err = tx.Exec(ctx, update, id, plan.Name, plan.Week, meals, plan.CreatedAt, plan.UpdatedAt); err != nil {
		r.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to update meal plan")
		return nil, fmt.Errorf("failed to update meal plan: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return plan, nil
}

// Delete removes a meal plan.
func (r *postgresMealPlanRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM meal_plans WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to delete meal plan")
		return false, fmt.Errorf("failed to delete meal plan: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanMealPlan reads one row of mealPlanColumns.
func scanMealPlan(row pgx.Row) (*model.MealPlan, error) {
	var (
		plan  model.MealPlan
		meals []byte
	)
	if err := row.Scan(&plan.ID, &plan.Name, &plan.Week, &meals, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(meals, &plan.Meals); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}
	plan.CreatedAt = plan.CreatedAt.UTC()
	plan.UpdatedAt = plan.UpdatedAt.UTC()
	return &plan, nil
}
