package model

// Standard error codes for domain errors.
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeRecipeNotFound   = "RECIPE_NOT_FOUND"
	ErrCodeMealPlanNotFound = "MEAL_PLAN_NOT_FOUND"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a domain error for a rejected request field.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors. Messages are returned to clients verbatim.
var (
	ErrInvalidJSON          = NewDomainError(ErrCodeInvalidJSON, "Invalid request body")
	ErrRecipeNotFound       = NewDomainError(ErrCodeRecipeNotFound, "Recipe not found")
	ErrMealPlanNotFound     = NewDomainError(ErrCodeMealPlanNotFound, "Meal plan not found")
	ErrNameAndWeekRequired  = NewValidationError("Name and week are required")
	ErrAssignFieldsRequired = NewValidationError("Day, mealType, and recipeId are required")
	ErrClearFieldsRequired  = NewValidationError("Day and mealType are required")
	ErrInvalidDay           = NewValidationError("Invalid day")
	ErrInvalidMealType      = NewValidationError("Invalid meal type")
)
