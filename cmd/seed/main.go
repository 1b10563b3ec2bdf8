package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"math"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrypilot/backend/internal/database"
	"github.com/pantrypilot/backend/internal/model"
)

// Imports an Open Food Facts JSONL export into the nutrition_records table.
// Usage: seed -file products.jsonl

// offProduct is the subset of an Open Food Facts JSONL record we store.
type offProduct struct {
	Code            string         `json:"code"`
	ProductName     string         `json:"product_name"`
	ProductNameEn   string         `json:"product_name_en"`
	GenericName     string         `json:"generic_name"`
	Nutriments      map[string]any `json:"nutriments"`
	AllergensTags   []string       `json:"allergens_tags"`
	FoodGroupsTags  []string       `json:"food_groups_tags"`
	NutriScoreGrade string         `json:"nutriscore_grade"`
}

func (p *offProduct) name() string {
	if p.ProductName != "" {
		return p.ProductName
	}
	if p.ProductNameEn != "" {
		return p.ProductNameEn
	}
	return p.GenericName
}

func main() {
	file := flag.String("file", "", "path to an Open Food Facts JSONL export")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *file, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	var imported, skipped int
	for scanner.Scan() {
		var p offProduct
		if err := json.Unmarshal(scanner.Bytes(), &p); err != nil {
			skipped++
			continue
		}
		record := toRecord(&p)
		if record == nil {
			skipped++
			continue
		}

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			UpdateAll: true,
		}).Create(record).Error
		if err != nil {
			log.Printf("failed to import product %s: %v", p.Code, err)
			skipped++
			continue
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("failed reading %s: %v", *file, err)
	}

	log.Printf("Imported %d products, skipped %d", imported, skipped)
}

func toRecord(p *offProduct) *model.NutritionRecord {
	name := p.name()
	if p.Code == "" || name == "" {
		return nil
	}

	return &model.NutritionRecord{
		Code:          p.Code,
		ProductName:   name,
		GenericName:   p.GenericName,
		CaloriesKcal:  kcal100g(p.Nutriments),
		Carbohydrates: nutriment(p.Nutriments, "carbohydrates_100g", 100),
		Cholesterol:   nutriment(p.Nutriments, "cholesterol_100g", 100),
		Protein:       nutriment(p.Nutriments, "proteins_100g", 100),
		SugarTotal:    nutriment(p.Nutriments, "sugars_100g", 100),
		SugarAdded:    nutriment(p.Nutriments, "added-sugars_100g", 100),
		FatTotal:      nutriment(p.Nutriments, "fat_100g", 100),
		FatSaturated:  nutriment(p.Nutriments, "saturated-fat_100g", 100),
		FatMono:       nutriment(p.Nutriments, "monounsaturated-fat_100g", 100),
		FatPoly:       nutriment(p.Nutriments, "polyunsaturated-fat_100g", 100),
		FatOmega3:     nutriment(p.Nutriments, "omega-3-fat_100g", 100),
		FatOmega6:     nutriment(p.Nutriments, "omega-6-fat_100g", 100),
		FatTrans:      nutriment(p.Nutriments, "trans-fat_100g", 100),
		FiberTotal:    nutriment(p.Nutriments, "fiber_100g", 100),
		FiberSoluble:  nutriment(p.Nutriments, "soluble-fiber_100g", 100),
		FiberInsol:    nutriment(p.Nutriments, "insoluble-fiber_100g", 100),
		VitaminA:      nutrimentScaled(p.Nutriments, "vitamin-a_100g", gramsToMicrograms),
		VitaminB6:     nutrimentScaled(p.Nutriments, "vitamin-b6_100g", gramsToMilligrams),
		VitaminB12:    nutrimentScaled(p.Nutriments, "vitamin-b12_100g", gramsToMicrograms),
		VitaminC:      nutrimentScaled(p.Nutriments, "vitamin-c_100g", gramsToMilligrams),
		VitaminD:      nutrimentScaled(p.Nutriments, "vitamin-d_100g", gramsToMicrograms),
		VitaminE:      nutrimentScaled(p.Nutriments, "vitamin-e_100g", gramsToMilligrams),
		VitaminK:      nutrimentScaled(p.Nutriments, "vitamin-k_100g", gramsToMicrograms),
		Calcium:       nutrimentScaled(p.Nutriments, "calcium_100g", gramsToMilligrams),
		Iron:          nutrimentScaled(p.Nutriments, "iron_100g", gramsToMilligrams),
		Magnesium:     nutrimentScaled(p.Nutriments, "magnesium_100g", gramsToMilligrams),
		Potassium:     nutrimentScaled(p.Nutriments, "potassium_100g", gramsToMilligrams),
		Sodium:        nutrimentScaled(p.Nutriments, "sodium_100g", gramsToMilligrams),
		Zinc:          nutrimentScaled(p.Nutriments, "zinc_100g", gramsToMilligrams),
		Allergens:     model.JSONBStringArray(stripTagPrefixes(p.AllergensTags)),
		FoodGroups:    model.JSONBStringArray(stripTagPrefixes(p.FoodGroupsTags)),
		NutriScore:    nutriScore(p.NutriScoreGrade),
	}
}

// kcal100g prefers energy-kcal_100g and falls back to energy-kj_100g / 4.184.
func kcal100g(nutriments map[string]any) *int {
	if v, ok := extractFloat(nutriments, "energy-kcal_100g"); ok && v >= 0 && v <= 10000 {
		n := int(math.Round(v))
		return &n
	}
	if v, ok := extractFloat(nutriments, "energy-kj_100g"); ok {
		kcal := v / 4.184
		if kcal >= 0 && kcal <= 10000 {
			n := int(math.Round(kcal))
			return &n
		}
	}
	return nil
}

// nutriment returns the value for key, or nil when missing or outside [0, max].
func nutriment(nutriments map[string]any, key string, max float64) *float64 {
	v, ok := extractFloat(nutriments, key)
	if !ok || v < 0 || v > max {
		return nil
	}
	return &v
}

// Open Food Facts reports every _100g nutriment in grams; the storage columns
// use conventional units instead (milligrams for minerals, milligrams or
// micrograms per vitamin).
const (
	gramsToMilligrams = 1e3
	gramsToMicrograms = 1e6
)

// nutrimentScaled converts a gram-denominated nutriment to the storage unit.
// Values missing or outside [0, 100] grams per 100g are dropped.
func nutrimentScaled(nutriments map[string]any, key string, factor float64) *float64 {
	v, ok := extractFloat(nutriments, key)
	if !ok || v < 0 || v > 100 {
		return nil
	}
	out := math.Round(v*factor*1000) / 1000
	return &out
}

// extractFloat coerces a nutriments map value to float64.
func extractFloat(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case string:
		if f, err := json.Number(x).Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// stripTagPrefixes turns OFF tags like "en:gluten" into "gluten".
func stripTagPrefixes(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if i := strings.Index(tag, ":"); i >= 0 {
			tag = tag[i+1:]
		}
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// nutriScore maps the OFF letter grade to the numeric 1 (best) to 5 (worst)
// scale stored alongside each record.
func nutriScore(grade string) *int {
	scores := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5}
	if s, ok := scores[strings.ToLower(grade)]; ok {
		return &s
	}
	return nil
}
