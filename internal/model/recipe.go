package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a scraped or user-submitted recipe. Ingredient lines live in a
// join table so each carries its own requested quantity.
type Recipe struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
	Name         string             `gorm:"size:255;not null" json:"name"`
	Description  string             `gorm:"type:text" json:"description"`
	Category     string             `gorm:"size:50" json:"category"`
	SourceURL    string             `gorm:"size:512" json:"source_url"`
	ImageURL     string             `gorm:"size:512" json:"image_url"`
	Instructions JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Servings     int                `json:"servings"`
	Embedding    pgvector.Vector    `gorm:"type:vector(3)" json:"-"`
	Ingredients  []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

// BeforeCreate assigns an ID when the database has no uuid default (sqlite).
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient links a recipe to an ingredient with the quantity the
// recipe calls for. Quantity may be entirely absent ("salt to taste").
type RecipeIngredient struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecipeID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"recipe_id"`
	IngredientID  uuid.UUID  `gorm:"type:uuid;not null" json:"ingredient_id"`
	Ingredient    Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Position      int        `gorm:"not null" json:"position"`
	QuantityValue *float64   `json:"quantity_value,omitempty"`
	QuantityUnit  string     `gorm:"size:32" json:"quantity_unit,omitempty"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
