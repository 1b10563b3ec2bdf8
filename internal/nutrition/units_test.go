package nutrition

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertAmountMass(t *testing.T) {
	got, err := ConvertAmount(0.5, "kg", "g")
	require.NoError(t, err)
	assert.InDelta(t, 500, got, 0.001)

	got, err = ConvertAmount(250, "mg", "g")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 0.001)

	got, err = ConvertAmount(1, "grams", "g")
	require.NoError(t, err)
	assert.InDelta(t, 1, got, 0.001)
}

func TestConvertAmountVolume(t *testing.T) {
	got, err := ConvertAmount(2, "cup", "ml")
	require.NoError(t, err)
	assert.InDelta(t, 480, got, 0.001)
}

func TestConvertAmountIncompatibleDimensions(t *testing.T) {
	_, err := ConvertAmount(1, "cup", "g")
	var incompat *IncompatibleUnitsError
	require.ErrorAs(t, err, &incompat)
	assert.Equal(t, "cup", incompat.From)
	assert.Equal(t, "g", incompat.To)
}

func TestConvertAmountCountWithoutPieceWeight(t *testing.T) {
	_, err := ConvertAmount(2, "piece", "g")
	var incompat *IncompatibleUnitsError
	require.ErrorAs(t, err, &incompat)
	assert.Equal(t, "piece", incompat.From)
}

func TestConvertAmountUnknownUnit(t *testing.T) {
	_, err := ConvertAmount(1, "handful", "g")
	var incompat *IncompatibleUnitsError
	assert.True(t, errors.As(err, &incompat))
}

func TestScaleToHalvesPer100g(t *testing.T) {
	info := IngredientNutrition{
		MacroNutrients: MacroNutrients{
			Calories:      Int(100),
			Carbohydrates: Float(10),
			Protein:       Float(3),
		},
		Minerals: Minerals{Sodium: Float(20)},
	}

	scaled, err := info.ScaleTo(ReferenceBasis, Quantity{Amount: 50, Unit: "g"})
	require.NoError(t, err)

	require.NotNil(t, scaled.MacroNutrients.Carbohydrates)
	assert.InDelta(t, 5.0, *scaled.MacroNutrients.Carbohydrates, 0.01)
	assert.Equal(t, 50, *scaled.MacroNutrients.Calories)
	assert.InDelta(t, 1.5, *scaled.MacroNutrients.Protein, 0.01)
	assert.InDelta(t, 10.0, *scaled.Minerals.Sodium, 0.01)
}

func TestScaleToPreservesAbsence(t *testing.T) {
	info := IngredientNutrition{
		MacroNutrients: MacroNutrients{Carbohydrates: Float(10)},
	}

	scaled, err := info.ScaleTo(ReferenceBasis, Quantity{Amount: 200, Unit: "g"})
	require.NoError(t, err)

	assert.Nil(t, scaled.MacroNutrients.Protein)
	assert.Nil(t, scaled.MacroNutrients.Calories)
	assert.Nil(t, scaled.Vitamins.C)
	require.NotNil(t, scaled.MacroNutrients.Carbohydrates)
	assert.InDelta(t, 20.0, *scaled.MacroNutrients.Carbohydrates, 0.01)
}

func TestScaleToKeepsClassification(t *testing.T) {
	info := IngredientNutrition{
		Classification: Classification{
			Allergens:  []string{"gluten"},
			NutriScore: Int(2),
		},
	}

	scaled, err := info.ScaleTo(ReferenceBasis, Quantity{Amount: 30, Unit: "g"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gluten"}, scaled.Classification.Allergens)
	assert.Equal(t, 2, *scaled.Classification.NutriScore)
}

func TestScaleRoundTrip(t *testing.T) {
	info := IngredientNutrition{
		MacroNutrients: MacroNutrients{
			Carbohydrates: Float(12.34),
			Protein:       Float(5.67),
		},
	}

	up, err := info.ScaleTo(ReferenceBasis, Quantity{Amount: 300, Unit: "g"})
	require.NoError(t, err)
	down, err := up.ScaleTo(Quantity{Amount: 300, Unit: "g"}, Quantity{Amount: 100, Unit: "g"})
	require.NoError(t, err)

	assert.InDelta(t, *info.MacroNutrients.Carbohydrates, *down.MacroNutrients.Carbohydrates, 0.01)
	assert.InDelta(t, *info.MacroNutrients.Protein, *down.MacroNutrients.Protein, 0.01)
}

func TestScaleToRejectsNonPositiveAmount(t *testing.T) {
	info := IngredientNutrition{
		MacroNutrients: MacroNutrients{Carbohydrates: Float(10)},
	}

	for _, amount := range []float64{-50, 0, math.NaN(), math.Inf(1)} {
		_, err := info.ScaleTo(ReferenceBasis, Quantity{Amount: amount, Unit: "g"})
		assert.ErrorIs(t, err, ErrInvalidQuantity, "amount %v", amount)
	}
}

func TestScaleToCrossUnit(t *testing.T) {
	info := IngredientNutrition{
		MacroNutrients: MacroNutrients{Carbohydrates: Float(10)},
	}

	// 0.2 kg against a 100g basis doubles everything
	scaled, err := info.ScaleTo(ReferenceBasis, Quantity{Amount: 0.2, Unit: "kg"})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, *scaled.MacroNutrients.Carbohydrates, 0.01)
}
