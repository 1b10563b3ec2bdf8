package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrypilot/backend/internal/model"
	"github.com/pantrypilot/backend/internal/nutrition"
	"github.com/pantrypilot/backend/internal/service"
)

// RecipeHandler serves recipe CRUD, search, scraping and the recipe-level
// nutritional-info endpoint.
type RecipeHandler struct {
	db               *gorm.DB
	nutritionService service.INutritionService
	scraperService   service.IScraperService
	imageService     service.IImageService
}

func NewRecipeHandler(db *gorm.DB, nutritionService service.INutritionService, scraperService service.IScraperService, imageService service.IImageService) *RecipeHandler {
	return &RecipeHandler{
		db:               db,
		nutritionService: nutritionService,
		scraperService:   scraperService,
		imageService:     imageService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/:id/nutritional-info", h.GetNutritionalInfo)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var recipes []model.Recipe

	query := h.db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Ingredients.Ingredient")

	if search := c.Query("q"); search != "" {
		if h.db.Dialector.Name() == "postgres" {
			vec := service.GenerateEmbedding(search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id := c.Param("id")
	var recipe model.Recipe
	err := h.db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Ingredients.Ingredient").First(&recipe, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.buildRecipe(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Omit("Ingredients.Ingredient").Create(recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing model.Recipe
	if err := h.db.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	recipe, err := h.buildRecipe(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":         recipe.Name,
		"description":  recipe.Description,
		"category":     recipe.Category,
		"source_url":   recipe.SourceURL,
		"image_url":    recipe.ImageURL,
		"servings":     recipe.Servings,
		"instructions": recipe.Instructions,
		"embedding":    recipe.Embedding,
	}
	if err := h.db.Model(&existing).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	// replace ingredient lines wholesale
	if err := h.db.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].RecipeID = id
		if err := h.db.Create(&recipe.Ingredients[i]).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"id":      id.String(),
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")
	if err := h.db.Delete(&model.Recipe{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

// ScrapeRecipe fetches a third-party recipe page, extracts a structured
// recipe from it and stores the result. Unknown ingredient names are
// registered on the fly so nutrition lookups can run against them later.
func (h *RecipeHandler) ScrapeRecipe(c *gin.Context) {
	if h.scraperService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scraping is not configured"})
		return
	}

	var req ScrapeRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := h.scraperService.ScrapeRecipe(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to scrape recipe: " + err.Error()})
		return
	}

	imageURL := parsed.ImageURL
	if imageURL != "" && h.imageService != nil {
		if mirrored, err := h.imageService.MirrorImage(c.Request.Context(), imageURL); err != nil {
			log.Printf("failed to mirror image %s: %v", imageURL, err)
		} else {
			imageURL = mirrored
		}
	}

	recipe := &model.Recipe{
		Name:         parsed.Name,
		Description:  parsed.Description,
		Category:     parsed.Category,
		SourceURL:    req.URL,
		ImageURL:     imageURL,
		Servings:     parsed.Servings,
		Instructions: model.JSONBStringArray(parsed.Instructions),
		Embedding:    service.GenerateEmbedding(parsed.Name + " " + parsed.Description),
	}
	for i, line := range parsed.Ingredients {
		ing, err := h.findOrCreateIngredient(line.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store scraped recipe"})
			return
		}
		recipe.Ingredients = append(recipe.Ingredients, model.RecipeIngredient{
			IngredientID:  ing.ID,
			Position:      i,
			QuantityValue: line.QuantityValue,
			QuantityUnit:  line.QuantityUnit,
		})
	}

	if err := h.db.Omit("Ingredients.Ingredient").Create(recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store scraped recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// GetNutritionalInfo aggregates nutrition across the recipe's ingredients.
// Responds 206 with X-Partial-Content when some ingredients could not be
// resolved; the body shape is the same either way.
func (h *RecipeHandler) GetNutritionalInfo(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	includeTotal, err := strconv.ParseBool(c.DefaultQuery("include_total", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid include_total"})
		return
	}
	includeIngredients, err := strconv.ParseBool(c.DefaultQuery("include_ingredients", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid include_ingredients"})
		return
	}
	if !includeTotal && !includeIngredients {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one of include_total and include_ingredients must be true"})
		return
	}

	result, err := h.nutritionService.AggregateRecipe(c.Request.Context(), recipeID, includeTotal, includeIngredients)
	if err != nil {
		if errors.Is(err, nutrition.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate nutritional info"})
		return
	}

	status := http.StatusOK
	if result.Partial {
		status = http.StatusPartialContent
		c.Header("X-Partial-Content", "true")
	}

	c.JSON(status, RecipeNutritionResponse{
		Ingredients:        result.Ingredients,
		MissingIngredients: result.MissingIngredients,
		Total:              result.Total,
	})
}

func (h *RecipeHandler) buildRecipe(req *CreateRecipeRequest) (*model.Recipe, error) {
	recipe := &model.Recipe{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		SourceURL:    req.SourceURL,
		ImageURL:     req.ImageURL,
		Servings:     req.Servings,
		Instructions: model.JSONBStringArray(req.Instructions),
		Embedding:    service.GenerateEmbedding(req.Name + " " + req.Description),
	}
	for i, line := range req.Ingredients {
		ingredientID, err := uuid.Parse(line.IngredientID)
		if err != nil {
			return nil, errors.New("invalid ingredient id: " + line.IngredientID)
		}
		recipe.Ingredients = append(recipe.Ingredients, model.RecipeIngredient{
			IngredientID:  ingredientID,
			Position:      i,
			QuantityValue: line.QuantityValue,
			QuantityUnit:  line.QuantityUnit,
		})
	}
	return recipe, nil
}

// findOrCreateIngredient resolves a scraped ingredient name to a catalog row,
// matching case-insensitively before inserting a new one.
func (h *RecipeHandler) findOrCreateIngredient(name string) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := h.db.Where("LOWER(name) = LOWER(?)", name).First(&ing).Error
	if err == nil {
		return &ing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ing = model.Ingredient{Name: name}
	if err := h.db.Create(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}
