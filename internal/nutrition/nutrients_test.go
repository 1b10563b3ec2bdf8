package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNutrition(carbs float64, score *int, allergens ...string) IngredientNutrition {
	return IngredientNutrition{
		Classification: Classification{
			Allergens:  allergens,
			NutriScore: score,
		},
		MacroNutrients: MacroNutrients{
			Calories:      Int(100),
			Carbohydrates: Float(carbs),
			Protein:       Float(2.5),
			Sugars:        Sugars{Total: Float(1.2)},
			Fats:          Fats{Total: Float(0.8), Saturated: Float(0.3)},
			Fibers:        Fibers{Total: Float(2.0)},
		},
		Vitamins: Vitamins{C: Float(12)},
		Minerals: Minerals{Iron: Float(0.4), Sodium: Float(5)},
	}
}

func TestCombineIdentity(t *testing.T) {
	a := sampleNutrition(10, Int(3), "gluten")
	var identity IngredientNutrition

	got := a.Combine(identity)
	assert.Equal(t, a.Classification.Allergens, got.Classification.Allergens)
	assert.Equal(t, *a.MacroNutrients.Calories, *got.MacroNutrients.Calories)
	assert.Equal(t, *a.MacroNutrients.Carbohydrates, *got.MacroNutrients.Carbohydrates)
	assert.Equal(t, *a.Vitamins.C, *got.Vitamins.C)
	assert.Equal(t, *a.Minerals.Iron, *got.Minerals.Iron)
	assert.Equal(t, *a.Classification.NutriScore, *got.Classification.NutriScore)
}

func TestCombineCommutative(t *testing.T) {
	a := sampleNutrition(10, Int(2), "gluten", "milk")
	b := sampleNutrition(4.5, nil, "milk", "soy")

	ab := a.Combine(b)
	ba := b.Combine(a)

	assert.InDelta(t, *ab.MacroNutrients.Carbohydrates, *ba.MacroNutrients.Carbohydrates, 0.01)
	assert.InDelta(t, *ab.MacroNutrients.Fats.Total, *ba.MacroNutrients.Fats.Total, 0.01)
	assert.Equal(t, *ab.MacroNutrients.Calories, *ba.MacroNutrients.Calories)
	assert.ElementsMatch(t, ab.Classification.Allergens, ba.Classification.Allergens)
}

func TestCombineAssociative(t *testing.T) {
	a := sampleNutrition(1.11, Int(1))
	b := sampleNutrition(2.22, Int(4))
	c := sampleNutrition(3.33, nil)

	left := a.Combine(b).Combine(c)
	right := a.Combine(b.Combine(c))

	assert.InDelta(t, *left.MacroNutrients.Carbohydrates, *right.MacroNutrients.Carbohydrates, 0.01)
	assert.InDelta(t, *left.MacroNutrients.Sugars.Total, *right.MacroNutrients.Sugars.Total, 0.01)
	assert.InDelta(t, *left.Vitamins.C, *right.Vitamins.C, 0.01)
	assert.Equal(t, *left.MacroNutrients.Calories, *right.MacroNutrients.Calories)
}

func TestCombineAllergensDeduplicate(t *testing.T) {
	a := IngredientNutrition{Classification: Classification{Allergens: []string{"gluten", "milk"}}}
	b := IngredientNutrition{Classification: Classification{Allergens: []string{"milk", "eggs"}}}

	got := a.Combine(b)
	assert.Equal(t, []string{"gluten", "milk", "eggs"}, got.Classification.Allergens)
}

func TestCalculateTotalAveragesNutriScore(t *testing.T) {
	items := []IngredientNutrition{
		sampleNutrition(10, Int(2)),
		sampleNutrition(5, Int(4)),
		sampleNutrition(3, nil),
	}

	total := CalculateTotal(items)

	// the absent score is excluded from the average, not treated as zero
	require.NotNil(t, total.Classification.NutriScore)
	assert.Equal(t, 3, *total.Classification.NutriScore)

	require.NotNil(t, total.MacroNutrients.Carbohydrates)
	assert.InDelta(t, 18.0, *total.MacroNutrients.Carbohydrates, 0.01)
	require.NotNil(t, total.MacroNutrients.Calories)
	assert.Equal(t, 300, *total.MacroNutrients.Calories)
}

func TestCalculateTotalNoScores(t *testing.T) {
	total := CalculateTotal([]IngredientNutrition{
		sampleNutrition(10, nil),
		sampleNutrition(5, nil),
	})
	assert.Nil(t, total.Classification.NutriScore)
}

func TestCalculateTotalEmpty(t *testing.T) {
	total := CalculateTotal(nil)

	assert.Nil(t, total.MacroNutrients.Calories)
	assert.Nil(t, total.MacroNutrients.Carbohydrates)
	assert.Nil(t, total.MacroNutrients.Fats.Total)
	assert.Nil(t, total.Classification.NutriScore)
	assert.Empty(t, total.Classification.Allergens)
}

func TestCalculateTotalOrderIndependent(t *testing.T) {
	a := sampleNutrition(1.01, Int(1), "gluten")
	b := sampleNutrition(2.02, Int(5), "soy")
	c := sampleNutrition(3.03, nil, "milk")

	t1 := CalculateTotal([]IngredientNutrition{a, b, c})
	t2 := CalculateTotal([]IngredientNutrition{c, a, b})

	assert.InDelta(t, *t1.MacroNutrients.Carbohydrates, *t2.MacroNutrients.Carbohydrates, 0.01)
	assert.Equal(t, *t1.Classification.NutriScore, *t2.Classification.NutriScore)
	assert.ElementsMatch(t, t1.Classification.Allergens, t2.Classification.Allergens)
}
