package api

import (
	"github.com/pantrypilot/backend/internal/nutrition"
)

// RecipeNutritionResponse is the body of the recipe nutritional-info
// endpoint. Every section is optional: ingredients and total appear only when
// requested, missing_ingredients only when at least one lookup failed.
type RecipeNutritionResponse struct {
	Ingredients        map[string]nutrition.IngredientNutrition `json:"ingredients,omitempty"`
	MissingIngredients []string                                 `json:"missing_ingredients,omitempty"`
	Total              *nutrition.IngredientNutrition           `json:"total,omitempty"`
}

// CreateIngredientRequest is the body for registering a pantry ingredient.
type CreateIngredientRequest struct {
	Name        string `json:"name" binding:"required"`
	GenericName string `json:"generic_name"`
	Category    string `json:"category"`
}

// CreateRecipeRequest is the body for creating a recipe by hand.
type CreateRecipeRequest struct {
	Name         string                  `json:"name" binding:"required"`
	Description  string                  `json:"description"`
	Category     string                  `json:"category"`
	SourceURL    string                  `json:"source_url"`
	ImageURL     string                  `json:"image_url"`
	Servings     int                     `json:"servings"`
	Instructions []string                `json:"instructions"`
	Ingredients  []RecipeIngredientInput `json:"ingredients"`
}

// RecipeIngredientInput is one ingredient line of a recipe request.
type RecipeIngredientInput struct {
	IngredientID  string   `json:"ingredient_id" binding:"required"`
	QuantityValue *float64 `json:"quantity_value"`
	QuantityUnit  string   `json:"quantity_unit"`
}

// ScrapeRecipeRequest is the body for the scrape endpoint.
type ScrapeRecipeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// SubstitutionsRequest asks for replacements for one ingredient.
type SubstitutionsRequest struct {
	Ingredient  string   `json:"ingredient" binding:"required"`
	Constraints []string `json:"constraints"`
}

// PairingsRequest asks for pairing suggestions for a recipe.
type PairingsRequest struct {
	RecipeName  string   `json:"recipe_name" binding:"required"`
	Ingredients []string `json:"ingredients"`
}
