package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NutritionRecord is one row of the external nutrition store: per-100g values
// for a single product code. Pointer columns keep NULL (unknown) distinct
// from zero, which the aggregation layer depends on.
type NutritionRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Code        string         `gorm:"size:64;uniqueIndex" json:"code"`
	ProductName string         `gorm:"size:255;not null;index" json:"product_name"`
	GenericName string         `gorm:"size:255;index" json:"generic_name"`

	// macro nutrients per 100g
	CaloriesKcal  *int     `json:"calories_kcal"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Cholesterol   *float64 `json:"cholesterol"`
	Protein       *float64 `json:"protein"`
	SugarTotal    *float64 `json:"sugar_total"`
	SugarAdded    *float64 `json:"sugar_added"`
	FatTotal      *float64 `json:"fat_total"`
	FatSaturated  *float64 `json:"fat_saturated"`
	FatMono       *float64 `json:"fat_mono"`
	FatPoly       *float64 `json:"fat_poly"`
	FatOmega3     *float64 `json:"fat_omega3"`
	FatOmega6     *float64 `json:"fat_omega6"`
	FatTrans      *float64 `json:"fat_trans"`
	FiberTotal    *float64 `json:"fiber_total"`
	FiberSoluble  *float64 `json:"fiber_soluble"`
	FiberInsol    *float64 `json:"fiber_insoluble"`

	// vitamins per 100g; A, B12, D and K in micrograms, B6, C and E in
	// milligrams
	VitaminA   *float64 `json:"vitamin_a"`
	VitaminB6  *float64 `json:"vitamin_b6"`
	VitaminB12 *float64 `json:"vitamin_b12"`
	VitaminC   *float64 `json:"vitamin_c"`
	VitaminD   *float64 `json:"vitamin_d"`
	VitaminE   *float64 `json:"vitamin_e"`
	VitaminK   *float64 `json:"vitamin_k"`

	// minerals per 100g, milligrams
	Calcium   *float64 `json:"calcium"`
	Iron      *float64 `json:"iron"`
	Magnesium *float64 `json:"magnesium"`
	Potassium *float64 `json:"potassium"`
	Sodium    *float64 `json:"sodium"`
	Zinc      *float64 `json:"zinc"`

	Allergens  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergens"`
	FoodGroups JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"food_groups"`
	NutriScore *int             `json:"nutri_score"`
}

func (r *NutritionRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
