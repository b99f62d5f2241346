package repository

import (
	"context"
	"errors"
	"fmt"

	"quickbite/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mealPlanCollectionName = "meal_plans"
	counterCollectionName  = "counters"

	maxModifyAttempts = 5
)

// mongoMealPlanRepository implements MealPlanRepository using MongoDB.
// Integer IDs come from a counters document so they stay sequential.
type mongoMealPlanRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
	logger     zerolog.Logger
}

// NewMongoMealPlanRepository creates a new MongoDB-backed meal plan repository.
func NewMongoMealPlanRepository(db *mongo.Database, logger zerolog.Logger) MealPlanRepository {
	return &mongoMealPlanRepository{
		collection: db.Collection(mealPlanCollectionName),
		counters:   db.Collection(counterCollectionName),
		logger:     logger.With().Str("repository", "meal-plan").Str("driver", "mongo").Logger(),
	}
}

// List returns all meal plans in id order.
func (r *mongoMealPlanRepository) List(ctx context.Context) ([]model.MealPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query meal plans")
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}
	defer cursor.Close(ctx)

	plans := []model.MealPlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode meal plans")
		return nil, fmt.Errorf("failed to decode meal plans: %w", err)
	}

	for i := range plans {
		normalizeTimes(&plans[i])
	}
	return plans, nil
}

// Create inserts a new meal plan under the next counter value.
func (r *mongoMealPlanRepository) Create(ctx context.Context, plan *model.MealPlan) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	plan.ID = id

	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		r.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to create meal plan")
		return fmt.Errorf("failed to create meal plan: %w", err)
	}

	r.logger.Debug().Int("meal_plan_id", id).Msg("meal plan created successfully")
	return nil
}

// GetByID retrieves a meal plan by its ID.
func (r *mongoMealPlanRepository) GetByID(ctx context.Context, id int) (*model.MealPlan, error) {
	var plan model.MealPlan

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Int("meal_plan_id", id).Msg("meal plan not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to query meal plan")
		return nil, fmt.Errorf("failed to query meal plan: %w", err)
	}

	normalizeTimes(&plan)
	return &plan, nil
}

// Modify reads the plan, applies fn and replaces the stored document only if
// it still carries the updatedAt that was read. A lost race re-reads and
// re-applies fn.
func (r *mongoMealPlanRepository) Modify(ctx context.Context, id int, fn func(plan *model.MealPlan) error) (*model.MealPlan, error) {
	for attempt := 1; attempt <= maxModifyAttempts; attempt++ {
		plan, err := r.GetByID(ctx, id)
		if err != nil || plan == nil {
			return nil, err
		}
		prev := plan.UpdatedAt

		if err := fn(plan); err != nil {
			return nil, err
		}
		plan.ID = id

		result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id, "updatedAt": prev}, plan)
		if err != nil {
			r.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to replace meal plan")
			return nil, fmt.Errorf("failed to update meal plan: %w", err)
		}
		if result.MatchedCount == 1 {
			return plan, nil
		}

		r.logger.Debug().
			Int("meal_plan_id", id).
			Int("attempt", attempt).
			Msg("meal plan changed concurrently, retrying")
	}

	return nil, fmt.Errorf("failed to update meal plan %d: too many concurrent modifications", id)
}

// Delete removes a meal plan.
func (r *mongoMealPlanRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Int("meal_plan_id", id).Msg("failed to delete meal plan")
		return false, fmt.Errorf("failed to delete meal plan: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// nextID atomically increments the meal plan counter and returns the new value.
func (r *mongoMealPlanRepository) nextID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": mealPlanCollectionName},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to allocate meal plan id")
		return 0, fmt.Errorf("failed to allocate meal plan id: %w", err)
	}

	return counter.Seq, nil
}

func normalizeTimes(plan *model.MealPlan) {
	plan.CreatedAt = plan.CreatedAt.UTC()
	plan.UpdatedAt = plan.UpdatedAt.UTC()
}
