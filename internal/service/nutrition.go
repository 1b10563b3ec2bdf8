package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrypilot/backend/internal/model"
	"github.com/pantrypilot/backend/internal/nutrition"
)

// NutritionService resolves nutrition data for single ingredients and
// aggregates it across whole recipes. It only reads from the store.
type NutritionService struct {
	db    *gorm.DB
	cache *NutritionCache
}

// NewNutritionService creates a NutritionService. The cache may be nil.
func NewNutritionService(db *gorm.DB, cache *NutritionCache) *NutritionService {
	return &NutritionService{
		db:    db,
		cache: cache,
	}
}

// RecipeNutritionResult is the outcome of aggregating one recipe. Ingredients
// and Total are only populated when requested; MissingIngredients lists, in
// recipe order, the ingredient IDs that could not be resolved.
type RecipeNutritionResult struct {
	Ingredients        map[string]nutrition.IngredientNutrition
	MissingIngredients []string
	Total              *nutrition.IngredientNutrition
	Partial            bool
}

// ResolveIngredient looks up the nutrition record for an ingredient and, if a
// quantity is given, rescales it from the per-100g basis to that quantity.
// A nil quantity returns the record as stored.
func (s *NutritionService) ResolveIngredient(ctx context.Context, ingredientID uuid.UUID, qty *nutrition.Quantity) (nutrition.IngredientNutrition, error) {
	var ing model.Ingredient
	if err := s.db.WithContext(ctx).First(&ing, "id = ?", ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nutrition.IngredientNutrition{}, fmt.Errorf("ingredient %s: %w", ingredientID, nutrition.ErrIngredientNotFound)
		}
		return nutrition.IngredientNutrition{}, err
	}

	info, err := s.lookupNutrition(ctx, &ing)
	if err != nil {
		return nutrition.IngredientNutrition{}, err
	}

	if qty != nil {
		scaled, err := info.ScaleTo(nutrition.ReferenceBasis, *qty)
		if err != nil {
			return nutrition.IngredientNutrition{}, err
		}
		info = scaled
	}
	return info, nil
}

// AggregateRecipe resolves every ingredient of a recipe and assembles the
// requested views. A failing ingredient is recorded and skipped, never fatal;
// only an unknown recipe aborts the call. The caller guarantees at least one
// of includeTotal/includeIngredients.
func (s *NutritionService) AggregateRecipe(ctx context.Context, recipeID uuid.UUID, includeTotal, includeIngredients bool) (*RecipeNutritionResult, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %s: %w", recipeID, nutrition.ErrRecipeNotFound)
		}
		return nil, err
	}

	result := &RecipeNutritionResult{}
	if includeIngredients {
		result.Ingredients = make(map[string]nutrition.IngredientNutrition, len(recipe.Ingredients))
	}

	resolved := make([]nutrition.IngredientNutrition, 0, len(recipe.Ingredients))
	for _, entry := range recipe.Ingredients {
		var qty *nutrition.Quantity
		if entry.QuantityValue != nil && entry.QuantityUnit != "" {
			qty = &nutrition.Quantity{Amount: *entry.QuantityValue, Unit: entry.QuantityUnit}
		}

		info, err := s.ResolveIngredient(ctx, entry.IngredientID, qty)
		if err != nil {
			log.Printf("recipe %s: skipping ingredient %s: %v", recipeID, entry.IngredientID, err)
			result.MissingIngredients = append(result.MissingIngredients, entry.IngredientID.String())
			continue
		}

		resolved = append(resolved, info)
		if includeIngredients {
			result.Ingredients[entry.IngredientID.String()] = info
		}
	}

	if includeTotal {
		total := nutrition.CalculateTotal(resolved)
		result.Total = &total
	}
	result.Partial = len(result.MissingIngredients) > 0
	return result, nil
}

// InvalidateIngredient drops the cached nutrition record for an ingredient,
// e.g. when the ingredient is deleted. Cache errors are logged and ignored.
func (s *NutritionService) InvalidateIngredient(ctx context.Context, ingredientID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, ingredientID); err != nil {
		log.Printf("nutrition cache: invalidate %s: %v", ingredientID, err)
	}
}

// lookupNutrition finds the per-100g record for an ingredient, consulting the
// cache first. Cache failures silently fall back to the store.
func (s *NutritionService) lookupNutrition(ctx context.Context, ing *model.Ingredient) (nutrition.IngredientNutrition, error) {
	if cached := s.cache.Get(ctx, ing.ID); cached != nil {
		return *cached, nil
	}

	rec, err := s.findRecord(ctx, ing)
	if err != nil {
		return nutrition.IngredientNutrition{}, err
	}

	info, err := convertRecord(rec, ing.Name)
	if err != nil {
		return nutrition.IngredientNutrition{}, err
	}

	s.cache.Set(ctx, ing.ID, info)
	return info, nil
}

// findRecord matches the ingredient's canonical name against the product
// name column, then against the generic name column, with a case-insensitive
// substring match. The first row wins; multiple matches are not tie-broken.
func (s *NutritionService) findRecord(ctx context.Context, ing *model.Ingredient) (*model.NutritionRecord, error) {
	like := "%" + strings.ToLower(ing.Name) + "%"

	for _, column := range []string{"product_name", "generic_name"} {
		var recs []model.NutritionRecord
		err := s.db.WithContext(ctx).
			Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), like).
			Limit(1).
			Find(&recs).Error
		if err != nil {
			return nil, err
		}
		if len(recs) > 0 {
			return &recs[0], nil
		}
	}
	return nil, fmt.Errorf("ingredient %q: %w", ing.Name, nutrition.ErrNutritionDataNotFound)
}

// convertRecord turns a persisted row into the structured per-100g shape,
// rejecting malformed values (negative amounts, out-of-range Nutri-Score).
func convertRecord(rec *model.NutritionRecord, ingredientName string) (nutrition.IngredientNutrition, error) {
	if err := validateRecord(rec); err != nil {
		return nutrition.IngredientNutrition{}, &nutrition.ConversionError{Ingredient: ingredientName, Err: err}
	}

	return nutrition.IngredientNutrition{
		Classification: nutrition.Classification{
			Allergens:  rec.Allergens,
			FoodGroups: rec.FoodGroups,
			NutriScore: rec.NutriScore,
		},
		MacroNutrients: nutrition.MacroNutrients{
			Calories:      rec.CaloriesKcal,
			Carbohydrates: rec.Carbohydrates,
			Cholesterol:   rec.Cholesterol,
			Protein:       rec.Protein,
			Sugars: nutrition.Sugars{
				Total: rec.SugarTotal,
				Added: rec.SugarAdded,
			},
			Fats: nutrition.Fats{
				Total:           rec.FatTotal,
				Saturated:       rec.FatSaturated,
				Monounsaturated: rec.FatMono,
				Polyunsaturated: rec.FatPoly,
				Omega3:          rec.FatOmega3,
				Omega6:          rec.FatOmega6,
				Trans:           rec.FatTrans,
			},
			Fibers: nutrition.Fibers{
				Total:     rec.FiberTotal,
				Soluble:   rec.FiberSoluble,
				Insoluble: rec.FiberInsol,
			},
		},
		Vitamins: nutrition.Vitamins{
			A:   rec.VitaminA,
			B6:  rec.VitaminB6,
			B12: rec.VitaminB12,
			C:   rec.VitaminC,
			D:   rec.VitaminD,
			E:   rec.VitaminE,
			K:   rec.VitaminK,
		},
		Minerals: nutrition.Minerals{
			Calcium:   rec.Calcium,
			Iron:      rec.Iron,
			Magnesium: rec.Magnesium,
			Potassium: rec.Potassium,
			Sodium:    rec.Sodium,
			Zinc:      rec.Zinc,
		},
	}, nil
}

func validateRecord(rec *model.NutritionRecord) error {
	if rec.CaloriesKcal != nil && *rec.CaloriesKcal < 0 {
		return fmt.Errorf("negative calories: %d", *rec.CaloriesKcal)
	}
	if rec.NutriScore != nil && (*rec.NutriScore < 1 || *rec.NutriScore > 5) {
		return fmt.Errorf("nutri-score out of range: %d", *rec.NutriScore)
	}
	fields := map[string]*float64{
		"carbohydrates": rec.Carbohydrates,
		"cholesterol":   rec.Cholesterol,
		"protein":       rec.Protein,
		"sugar_total":   rec.SugarTotal,
		"sugar_added":   rec.SugarAdded,
		"fat_total":     rec.FatTotal,
		"fat_saturated": rec.FatSaturated,
		"fat_mono":      rec.FatMono,
		"fat_poly":      rec.FatPoly,
		"fat_omega3":    rec.FatOmega3,
		"fat_omega6":    rec.FatOmega6,
		"fat_trans":     rec.FatTrans,
		"fiber_total":   rec.FiberTotal,
		"fiber_soluble": rec.FiberSoluble,
		"fiber_insol":   rec.FiberInsol,
		"vitamin_a":     rec.VitaminA,
		"vitamin_b6":    rec.VitaminB6,
		"vitamin_b12":   rec.VitaminB12,
		"vitamin_c":     rec.VitaminC,
		"vitamin_d":     rec.VitaminD,
		"vitamin_e":     rec.VitaminE,
		"vitamin_k":     rec.VitaminK,
		"calcium":       rec.Calcium,
		"iron":          rec.Iron,
		"magnesium":     rec.Magnesium,
		"potassium":     rec.Potassium,
		"sodium":        rec.Sodium,
		"zinc":          rec.Zinc,
	}
	for name, v := range fields {
		if v != nil && *v < 0 {
			return fmt.Errorf("negative %s: %v", name, *v)
		}
	}
	return nil
}
