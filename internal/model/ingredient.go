package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a canonical pantry item referenced by recipes. Nutrition data
// is not stored here; it is resolved against NutritionRecord rows by name.
type Ingredient struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	GenericName string         `gorm:"size:255" json:"generic_name"`
	Category    string         `gorm:"size:50" json:"category"`
}

// BeforeCreate assigns an ID when the database has no uuid default (sqlite).
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
