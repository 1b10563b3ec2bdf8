package nutrition

import "math"

// Allergen tags recognised in persisted records and classifications.
var KnownAllergens = []string{
	"gluten",
	"milk",
	"eggs",
	"fish",
	"shellfish",
	"tree-nuts",
	"peanuts",
	"soy",
	"sesame",
	"celery",
	"mustard",
	"sulphites",
}

// Sugars holds the sugar breakdown of an ingredient, in grams.
type Sugars struct {
	Total *float64 `json:"total,omitempty"`
	Added *float64 `json:"added,omitempty"`
}

func (s Sugars) Combine(o Sugars) Sugars {
	return Sugars{
		Total: SumFloat(s.Total, o.Total),
		Added: SumFloat(s.Added, o.Added),
	}
}

// Fats holds the fat breakdown of an ingredient, in grams.
type Fats struct {
	Total           *float64 `json:"total,omitempty"`
	Saturated       *float64 `json:"saturated,omitempty"`
	Monounsaturated *float64 `json:"monounsaturated,omitempty"`
	Polyunsaturated *float64 `json:"polyunsaturated,omitempty"`
	Omega3          *float64 `json:"omega_3,omitempty"`
	Omega6          *float64 `json:"omega_6,omitempty"`
	Trans           *float64 `json:"trans,omitempty"`
}

func (f Fats) Combine(o Fats) Fats {
	return Fats{
		Total:           SumFloat(f.Total, o.Total),
		Saturated:       SumFloat(f.Saturated, o.Saturated),
		Monounsaturated: SumFloat(f.Monounsaturated, o.Monounsaturated),
		Polyunsaturated: SumFloat(f.Polyunsaturated, o.Polyunsaturated),
		Omega3:          SumFloat(f.Omega3, o.Omega3),
		Omega6:          SumFloat(f.Omega6, o.Omega6),
		Trans:           SumFloat(f.Trans, o.Trans),
	}
}

// Fibers holds the fiber breakdown of an ingredient, in grams.
type Fibers struct {
	Total     *float64 `json:"total,omitempty"`
	Soluble   *float64 `json:"soluble,omitempty"`
	Insoluble *float64 `json:"insoluble,omitempty"`
}

func (f Fibers) Combine(o Fibers) Fibers {
	return Fibers{
		Total:     SumFloat(f.Total, o.Total),
		Soluble:   SumFloat(f.Soluble, o.Soluble),
		Insoluble: SumFloat(f.Insoluble, o.Insoluble),
	}
}

// MacroNutrients groups the macro-level nutrient fields. Calories are whole
// kilocalories; carbohydrates and protein are grams; cholesterol is
// milligrams.
type MacroNutrients struct {
	Calories      *int     `json:"calories,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
	Cholesterol   *float64 `json:"cholesterol,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`
	Sugars        Sugars   `json:"sugars"`
	Fats          Fats     `json:"fats"`
	Fibers        Fibers   `json:"fibers"`
}

func (m MacroNutrients) Combine(o MacroNutrients) MacroNutrients {
	return MacroNutrients{
		Calories:      SumInt(m.Calories, o.Calories),
		Carbohydrates: SumFloat(m.Carbohydrates, o.Carbohydrates),
		Cholesterol:   SumFloat(m.Cholesterol, o.Cholesterol),
		Protein:       SumFloat(m.Protein, o.Protein),
		Sugars:        m.Sugars.Combine(o.Sugars),
		Fats:          m.Fats.Combine(o.Fats),
		Fibers:        m.Fibers.Combine(o.Fibers),
	}
}

// Vitamins, each in the vitamin's conventional unit (A/B12/D/K micrograms,
// B6/C/E milligrams).
type Vitamins struct {
	A   *float64 `json:"a,omitempty"`
	B6  *float64 `json:"b6,omitempty"`
	B12 *float64 `json:"b12,omitempty"`
	C   *float64 `json:"c,omitempty"`
	D   *float64 `json:"d,omitempty"`
	E   *float64 `json:"e,omitempty"`
	K   *float64 `json:"k,omitempty"`
}

func (v Vitamins) Combine(o Vitamins) Vitamins {
	return Vitamins{
		A:   SumFloat(v.A, o.A),
		B6:  SumFloat(v.B6, o.B6),
		B12: SumFloat(v.B12, o.B12),
		C:   SumFloat(v.C, o.C),
		D:   SumFloat(v.D, o.D),
		E:   SumFloat(v.E, o.E),
		K:   SumFloat(v.K, o.K),
	}
}

// Minerals, all in milligrams.
type Minerals struct {
	Calcium   *float64 `json:"calcium,omitempty"`
	Iron      *float64 `json:"iron,omitempty"`
	Magnesium *float64 `json:"magnesium,omitempty"`
	Potassium *float64 `json:"potassium,omitempty"`
	Sodium    *float64 `json:"sodium,omitempty"`
	Zinc      *float64 `json:"zinc,omitempty"`
}

func (m Minerals) Combine(o Minerals) Minerals {
	return Minerals{
		Calcium:   SumFloat(m.Calcium, o.Calcium),
		Iron:      SumFloat(m.Iron, o.Iron),
		Magnesium: SumFloat(m.Magnesium, o.Magnesium),
		Potassium: SumFloat(m.Potassium, o.Potassium),
		Sodium:    SumFloat(m.Sodium, o.Sodium),
		Zinc:      SumFloat(m.Zinc, o.Zinc),
	}
}

// Classification carries the non-quantity facts about an ingredient: allergen
// tags, food-group labels and an optional Nutri-Score in [1,5].
type Classification struct {
	Allergens  []string `json:"allergens,omitempty"`
	FoodGroups []string `json:"food_groups,omitempty"`
	NutriScore *int     `json:"nutri_score,omitempty"`
}

// Combine unions the label sets and sums the scores. Note that the summed
// NutriScore is an intermediate value only: CalculateTotal replaces it with
// the average of the contributing scores.
func (c Classification) Combine(o Classification) Classification {
	return Classification{
		Allergens:  UnionStrings(c.Allergens, o.Allergens),
		FoodGroups: UnionStrings(c.FoodGroups, o.FoodGroups),
		NutriScore: SumInt(c.NutriScore, o.NutriScore),
	}
}

// IngredientNutrition is the full nutritional picture of one ingredient,
// expressed per some reference quantity (per 100g as stored, or per the
// requested quantity after scaling). The zero value is the identity element
// of Combine: every field unknown.
type IngredientNutrition struct {
	Classification Classification `json:"classification"`
	MacroNutrients MacroNutrients `json:"macro_nutrients"`
	Vitamins       Vitamins       `json:"vitamins"`
	Minerals       Minerals       `json:"minerals"`
}

func (n IngredientNutrition) Combine(o IngredientNutrition) IngredientNutrition {
	return IngredientNutrition{
		Classification: n.Classification.Combine(o.Classification),
		MacroNutrients: n.MacroNutrients.Combine(o.MacroNutrients),
		Vitamins:       n.Vitamins.Combine(o.Vitamins),
		Minerals:       n.Minerals.Combine(o.Minerals),
	}
}

// CalculateTotal folds Combine over the given ingredients, starting from the
// identity element. The fold sums every field; afterwards the Nutri-Score is
// unconditionally overwritten with the rounded mean of the per-ingredient
// scores that were present, or left unknown when none carried a score. An
// empty input returns the identity unchanged.
func CalculateTotal(items []IngredientNutrition) IngredientNutrition {
	var total IngredientNutrition
	var scoreSum, scoreCount int
	for _, it := range items {
		total = total.Combine(it)
		if it.Classification.NutriScore != nil {
			scoreSum += *it.Classification.NutriScore
			scoreCount++
		}
	}
	if scoreCount > 0 {
		avg := int(math.Round(float64(scoreSum) / float64(scoreCount)))
		total.Classification.NutriScore = &avg
	} else {
		total.Classification.NutriScore = nil
	}
	return total
}
