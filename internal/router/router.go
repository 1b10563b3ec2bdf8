package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pantrypilot/backend/internal/api"
	"github.com/pantrypilot/backend/internal/database"
	"github.com/pantrypilot/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	ingredientHandler *api.IngredientHandler,
	recipeHandler *api.RecipeHandler,
	llmHandler *api.LLMHandler,
	healthDB *database.DB,
	redisClient *redis.Client,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.ErrorHandler())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"X-Partial-Content", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if healthDB != nil {
			if err := healthDB.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	ingredientHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)

	// Outbound scraping and LLM calls are expensive, so those routes get
	// per-client rate limits.
	if redisClient != nil {
		scrapeLimiter := middleware.NewScrapeRateLimiter(redisClient)
		v1.POST("/recipes/scrape", scrapeLimiter.RateLimitMiddleware(), recipeHandler.ScrapeRecipe)

		llmLimiter := middleware.NewLLMRateLimiter(redisClient)
		llmGroup := v1.Group("")
		llmGroup.Use(llmLimiter.RateLimitMiddleware())
		llmHandler.RegisterRoutes(llmGroup)
	} else {
		v1.POST("/recipes/scrape", recipeHandler.ScrapeRecipe)
		llmHandler.RegisterRoutes(v1)
	}

	return router
}
