package model

import (
	"encoding/json"
	"time"
)

// TimestampLayout renders API timestamps with exactly three fractional digits.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Day keys of a meal plan week, in calendar order.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Meal type keys of a single day, in serving order.
var MealTypes = []string{"breakfast", "lunch", "dinner"}

// DayMeals holds the three meal slots of a day. A nil slot is empty; otherwise it
// holds a recipe id. Recipe ids are not checked against the catalogue.
type DayMeals struct {
	Breakfast *int `json:"breakfast" bson:"breakfast"`
	Lunch     *int `json:"lunch" bson:"lunch"`
	Dinner    *int `json:"dinner" bson:"dinner"`
}

// Slot returns a pointer to the slot for mealType, or nil if mealType is unknown.
func (d *DayMeals) Slot(mealType string) **int {
	switch mealType {
	case "breakfast":
		return &d.Breakfast
	case "lunch":
		return &d.Lunch
	case "dinner":
		return &d.Dinner
	default:
		return nil
	}
}

// WeekMeals maps every day of the week to its meal slots. Being a struct, it always
// carries all seven days with all three slots, whatever subset a client sends.
type WeekMeals struct {
	Monday    DayMeals `json:"monday" bson:"monday"`
	Tuesday   DayMeals `json:"tuesday" bson:"tuesday"`
	Wednesday DayMeals `json:"wednesday" bson:"wednesday"`
	Thursday  DayMeals `json:"thursday" bson:"thursday"`
	Friday    DayMeals `json:"friday" bson:"friday"`
	Saturday  DayMeals `json:"saturday" bson:"saturday"`
	Sunday    DayMeals `json:"sunday" bson:"sunday"`
}

// Day returns the meals of the named day, or nil if day is unknown.
func (w *WeekMeals) Day(day string) *DayMeals {
	switch day {
	case "monday":
		return &w.Monday
	case "tuesday":
		return &w.Tuesday
	case "wednesday":
		return &w.Wednesday
	case "thursday":
		return &w.Thursday
	case "friday":
		return &w.Friday
	case "saturday":
		return &w.Saturday
	case "sunday":
		return &w.Sunday
	default:
		return nil
	}
}

// Clone returns a deep copy so that slot pointers are never shared.
func (w WeekMeals) Clone() WeekMeals {
	out := w
	for _, day := range Days {
		dst := out.Day(day)
		for _, mealType := range MealTypes {
			slot := dst.Slot(mealType)
			if *slot != nil {
				v := **slot
				*slot = &v
			}
		}
	}
	return out
}

// MealPlan is a weekly meal plan. It is mutated as a single unit.
type MealPlan struct {
	ID        int       `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Week      string    `json:"week" bson:"week" db:"week"` // Monday of the week, YYYY-MM-DD
	Meals     WeekMeals `json:"meals" bson:"meals" db:"meals"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// MarshalJSON writes createdAt and updatedAt in TimestampLayout.
func (p MealPlan) MarshalJSON() ([]byte, error) {
	type plan MealPlan
	return json.Marshal(struct {
		plan
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	}{
		plan:      plan(p),
		CreatedAt: FormatTimestamp(p.CreatedAt),
		UpdatedAt: FormatTimestamp(p.UpdatedAt),
	})
}

// Clone returns a deep copy of the plan.
func (p *MealPlan) Clone() *MealPlan {
	out := *p
	out.Meals = p.Meals.Clone()
	return &out
}

// CreateMealPlanRequest is the payload for POST /api/meal-plans.
type CreateMealPlanRequest struct {
	Name  string     `json:"name"`
	Week  string     `json:"week"`
	Meals *WeekMeals `json:"meals,omitempty"`
}

// UpdateMealPlanRequest is the payload for PUT /api/meal-plans/{id}.
// Empty or missing fields keep their current value.
type UpdateMealPlanRequest struct {
	Name  string     `json:"name,omitempty"`
	Week  string     `json:"week,omitempty"`
	Meals *WeekMeals `json:"meals,omitempty"`
}

// AssignSlotRequest is the payload for POST /api/meal-plans/{id}/meals.
type AssignSlotRequest struct {
	Day      string `json:"day"`
	MealType string `json:"mealType"`
	RecipeID *int   `json:"recipeId"`
}

// ClearSlotRequest is the payload for DELETE /api/meal-plans/{id}/meals.
type ClearSlotRequest struct {
	Day      string `json:"day"`
	MealType string `json:"mealType"`
}

// MealPlanListResponse is the payload returned by GET /api/meal-plans.
type MealPlanListResponse struct {
	MealPlans []MealPlan `json:"mealPlans"`
	Total     int        `json:"total"`
}

// HealthResponse is the payload returned by GET /api/health.
type HealthResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalJSON writes timestamp in TimestampLayout.
func (h HealthResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
	}{
		Message:   h.Message,
		Timestamp: FormatTimestamp(h.Timestamp),
	})
}
