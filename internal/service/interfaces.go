package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pantrypilot/backend/internal/nutrition"
)

// INutritionService defines the interface for nutrition resolution and
// aggregation, so handlers can be tested against mocks.
type INutritionService interface {
	ResolveIngredient(ctx context.Context, ingredientID uuid.UUID, qty *nutrition.Quantity) (nutrition.IngredientNutrition, error)
	AggregateRecipe(ctx context.Context, recipeID uuid.UUID, includeTotal, includeIngredients bool) (*RecipeNutritionResult, error)
	InvalidateIngredient(ctx context.Context, ingredientID uuid.UUID)
}

// ILLMService defines the interface for the LLM-backed auxiliary features.
type ILLMService interface {
	ParseRecipe(pageText string) (*ParsedRecipe, error)
	SuggestSubstitutions(ingredient string, constraints []string) ([]Substitution, error)
	SuggestPairings(recipeName string, ingredients []string) ([]string, error)
}

// IScraperService defines the interface for recipe page scraping.
type IScraperService interface {
	ScrapeRecipe(ctx context.Context, url string) (*ParsedRecipe, error)
}

// IImageService defines the interface for mirroring recipe images.
type IImageService interface {
	MirrorImage(ctx context.Context, srcURL string) (string, error)
}
