package testhelpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/pantrypilot/backend/internal/model"
)

// CreateIngredient inserts an ingredient row.
func CreateIngredient(t *testing.T, db *gorm.DB, name, genericName string) *model.Ingredient {
	t.Helper()
	ing := &model.Ingredient{Name: name, GenericName: genericName}
	if err := db.Create(ing).Error; err != nil {
		t.Fatalf("failed to create ingredient %q: %v", name, err)
	}
	return ing
}

// CreateNutritionRecord inserts a per-100g nutrition row. The caller sets the
// fields it cares about; ProductName and Code must be unique per test.
func CreateNutritionRecord(t *testing.T, db *gorm.DB, rec *model.NutritionRecord) *model.NutritionRecord {
	t.Helper()
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create nutrition record %q: %v", rec.ProductName, err)
	}
	return rec
}

// CreateRecipe inserts a recipe with the given ingredient lines, preserving
// their order as positions.
func CreateRecipe(t *testing.T, db *gorm.DB, name string, lines []model.RecipeIngredient) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{Name: name, Instructions: model.JSONBStringArray{"combine", "serve"}}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe %q: %v", name, err)
	}
	for i := range lines {
		lines[i].RecipeID = recipe.ID
		lines[i].Position = i
		if err := db.Create(&lines[i]).Error; err != nil {
			t.Fatalf("failed to create recipe ingredient: %v", err)
		}
	}
	recipe.Ingredients = lines
	return recipe
}
