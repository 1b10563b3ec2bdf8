package nutrition

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, matched with errors.Is. Callers wrap them with the
// offending identifier or name for the message.
var (
	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrIngredientNotFound    = errors.New("ingredient not found")
	ErrNutritionDataNotFound = errors.New("nutrition data not found")
	ErrInvalidQuantity       = errors.New("quantity must be a positive amount")
)

// IncompatibleUnitsError reports a quantity request whose unit cannot be
// related to the reference basis without ingredient-specific data (density or
// piece weight) that is not available.
type IncompatibleUnitsError struct {
	From string
	To   string
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("cannot convert %q to %q", e.From, e.To)
}

// ConversionError reports a persisted nutrition row that could not be turned
// into a structured record (malformed or out-of-range stored values).
type ConversionError struct {
	Ingredient string
	Err        error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting nutrition data for %q: %v", e.Ingredient, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
