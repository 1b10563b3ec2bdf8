package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrypilot/backend/internal/model"
	"github.com/pantrypilot/backend/internal/nutrition"
	"github.com/pantrypilot/backend/internal/service"
)

// IngredientHandler serves the ingredient catalog and the single-ingredient
// nutritional-info endpoint.
type IngredientHandler struct {
	db               *gorm.DB
	nutritionService service.INutritionService
}

func NewIngredientHandler(db *gorm.DB, nutritionService service.INutritionService) *IngredientHandler {
	return &IngredientHandler{
		db:               db,
		nutritionService: nutritionService,
	}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.POST("", h.CreateIngredient)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.DELETE("/:id", h.DeleteIngredient)
		ingredients.GET("/:id/nutritional-info", h.GetNutritionalInfo)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	var ingredients []model.Ingredient

	query := h.db
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(generic_name) LIKE LOWER(?)", like, like)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Find(&ingredients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ingredients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient := model.Ingredient{
		Name:        req.Name,
		GenericName: req.GenericName,
		Category:    req.Category,
	}
	if err := h.db.Create(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ingredient"})
		return
	}

	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id := c.Param("id")
	var ingredient model.Ingredient
	if err := h.db.First(&ingredient, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id := c.Param("id")
	if err := h.db.Delete(&model.Ingredient{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ingredient"})
		return
	}
	if parsed, err := uuid.Parse(id); err == nil {
		h.nutritionService.InvalidateIngredient(c.Request.Context(), parsed)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ingredient deleted successfully",
		"id":      id,
	})
}

// GetNutritionalInfo resolves the nutrition record for one ingredient,
// optionally rescaled to ?quantity_value=&measurement=. The two quantity
// parameters must be supplied together or not at all.
func (h *IngredientHandler) GetNutritionalInfo(c *gin.Context) {
	ingredientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	quantityValue := c.Query("quantity_value")
	measurement := c.Query("measurement")
	if (quantityValue == "") != (measurement == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity_value and measurement must be provided together"})
		return
	}

	var qty *nutrition.Quantity
	if quantityValue != "" {
		amount, err := strconv.ParseFloat(quantityValue, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity_value"})
			return
		}
		qty = &nutrition.Quantity{Amount: amount, Unit: measurement}
	}

	info, err := h.nutritionService.ResolveIngredient(c.Request.Context(), ingredientID, qty)
	if err != nil {
		var incompat *nutrition.IncompatibleUnitsError
		var conv *nutrition.ConversionError
		switch {
		case errors.Is(err, nutrition.ErrIngredientNotFound),
			errors.Is(err, nutrition.ErrNutritionDataNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, nutrition.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &incompat):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &conv):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve nutritional info"})
		}
		return
	}

	c.JSON(http.StatusOK, info)
}
