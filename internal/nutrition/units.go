package nutrition

import (
	"fmt"
	"math"
	"strings"
)

// Quantity is an amount of an ingredient in a named unit.
type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ReferenceBasis is the quantity persisted nutrition records are expressed
// against: per 100 grams.
var ReferenceBasis = Quantity{Amount: 100, Unit: "g"}

type dimension int

const (
	dimMass dimension = iota
	dimVolume
	dimCount
)

type unitDef struct {
	dim dimension
	// factor to the dimension's base unit (g for mass, ml for volume).
	factor float64
}

var units = map[string]unitDef{
	"mg": {dimMass, 0.001},
	"g":  {dimMass, 1},
	"kg": {dimMass, 1000},
	"oz": {dimMass, 28.35},
	"lb": {dimMass, 453.59},

	"ml":   {dimVolume, 1},
	"dl":   {dimVolume, 100},
	"l":    {dimVolume, 1000},
	"tsp":  {dimVolume, 4.93},
	"tbsp": {dimVolume, 14.79},
	"floz": {dimVolume, 29.57},
	"cup":  {dimVolume, 240},

	"piece": {dimCount, 1},
	"unit":  {dimCount, 1},
	"slice": {dimCount, 1},
}

var unitAliases = map[string]string{
	"milligram":   "mg",
	"milligrams":  "mg",
	"gram":        "g",
	"grams":       "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"ounce":       "oz",
	"ounces":      "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"milliliter":  "ml",
	"milliliters": "ml",
	"deciliter":   "dl",
	"liter":       "l",
	"liters":      "l",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"cups":        "cup",
	"fl oz":       "floz",
	"pieces":      "piece",
	"units":       "unit",
	"slices":      "slice",
}

func lookupUnit(name string) (unitDef, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := unitAliases[key]; ok {
		key = canonical
	}
	def, ok := units[key]
	return def, ok
}

// ConvertAmount converts amount from one unit to another. Units must share a
// physical dimension; count-based units (piece, slice) never convert to mass
// or volume because no per-piece weight is known at this layer. Unknown units
// are reported the same way.
func ConvertAmount(amount float64, from, to string) (float64, error) {
	fromDef, ok := lookupUnit(from)
	if !ok {
		return 0, &IncompatibleUnitsError{From: from, To: to}
	}
	toDef, ok := lookupUnit(to)
	if !ok {
		return 0, &IncompatibleUnitsError{From: from, To: to}
	}
	if fromDef.dim != toDef.dim {
		return 0, &IncompatibleUnitsError{From: from, To: to}
	}
	return amount * fromDef.factor / toDef.factor, nil
}

// ScaleTo rescales a record expressed per basis to the requested quantity:
// every present numeric field is multiplied by the ratio of the requested
// amount (expressed in the basis unit) to the basis amount. Unknown fields
// stay unknown, and the classification is carried over untouched since labels
// and scores are not quantities. The requested amount must be a positive
// finite number so present fields stay non-negative.
func (n IngredientNutrition) ScaleTo(basis Quantity, to Quantity) (IngredientNutrition, error) {
	if math.IsNaN(to.Amount) || math.IsInf(to.Amount, 0) || to.Amount <= 0 {
		return IngredientNutrition{}, fmt.Errorf("amount %v %s: %w", to.Amount, to.Unit, ErrInvalidQuantity)
	}
	amount, err := ConvertAmount(to.Amount, to.Unit, basis.Unit)
	if err != nil {
		return IngredientNutrition{}, err
	}
	factor := amount / basis.Amount
	return n.scale(factor), nil
}

func (n IngredientNutrition) scale(factor float64) IngredientNutrition {
	m := n.MacroNutrients
	return IngredientNutrition{
		Classification: n.Classification,
		MacroNutrients: MacroNutrients{
			Calories:      scaleInt(m.Calories, factor),
			Carbohydrates: scaleFloat(m.Carbohydrates, factor),
			Cholesterol:   scaleFloat(m.Cholesterol, factor),
			Protein:       scaleFloat(m.Protein, factor),
			Sugars: Sugars{
				Total: scaleFloat(m.Sugars.Total, factor),
				Added: scaleFloat(m.Sugars.Added, factor),
			},
			Fats: Fats{
				Total:           scaleFloat(m.Fats.Total, factor),
				Saturated:       scaleFloat(m.Fats.Saturated, factor),
				Monounsaturated: scaleFloat(m.Fats.Monounsaturated, factor),
				Polyunsaturated: scaleFloat(m.Fats.Polyunsaturated, factor),
				Omega3:          scaleFloat(m.Fats.Omega3, factor),
				Omega6:          scaleFloat(m.Fats.Omega6, factor),
				Trans:           scaleFloat(m.Fats.Trans, factor),
			},
			Fibers: Fibers{
				Total:     scaleFloat(m.Fibers.Total, factor),
				Soluble:   scaleFloat(m.Fibers.Soluble, factor),
				Insoluble: scaleFloat(m.Fibers.Insoluble, factor),
			},
		},
		Vitamins: Vitamins{
			A:   scaleFloat(n.Vitamins.A, factor),
			B6:  scaleFloat(n.Vitamins.B6, factor),
			B12: scaleFloat(n.Vitamins.B12, factor),
			C:   scaleFloat(n.Vitamins.C, factor),
			D:   scaleFloat(n.Vitamins.D, factor),
			E:   scaleFloat(n.Vitamins.E, factor),
			K:   scaleFloat(n.Vitamins.K, factor),
		},
		Minerals: Minerals{
			Calcium:   scaleFloat(n.Minerals.Calcium, factor),
			Iron:      scaleFloat(n.Minerals.Iron, factor),
			Magnesium: scaleFloat(n.Minerals.Magnesium, factor),
			Potassium: scaleFloat(n.Minerals.Potassium, factor),
			Sodium:    scaleFloat(n.Minerals.Sodium, factor),
			Zinc:      scaleFloat(n.Minerals.Zinc, factor),
		},
	}
}

func scaleFloat(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	s := round2(*v * factor)
	return &s
}

func scaleInt(v *int, factor float64) *int {
	if v == nil {
		return nil
	}
	s := int(math.Round(float64(*v) * factor))
	return &s
}
