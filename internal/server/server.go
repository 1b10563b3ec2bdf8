package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pantrypilot/backend/config"
	"github.com/pantrypilot/backend/internal/api"
	"github.com/pantrypilot/backend/internal/database"
	"github.com/pantrypilot/backend/internal/router"
	"github.com/pantrypilot/backend/internal/service"
)

// Server wires the database, cache and services behind the HTTP router.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
	sqlDB  *database.DB
	redis  *redis.Client
}

// New builds the full application: database connections, migrations,
// services and routes. Optional backends (Redis, S3, the LLM API) degrade
// gracefully when not configured.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.NewGorm(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Separate raw connection backing the health endpoint.
	sqlDB, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open health check connection: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, nutrition caching and rate limits disabled: %v", err)
		redisClient = nil
	}

	var llmService service.ILLMService
	if llm, err := service.NewLLMService(); err != nil {
		log.Printf("LLM service unavailable, scraping and suggestions disabled: %v", err)
	} else {
		llmService = llm
	}

	var scraperService service.IScraperService
	if llmService != nil {
		scraperService = service.NewScraperService(llmService)
	}

	var imageService service.IImageService
	if s3cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 unavailable, scraped images will not be mirrored: %v", err)
	} else {
		imageService = service.NewImageService(s3cfg)
	}

	nutritionService := service.NewNutritionService(db, service.NewNutritionCache(redisClient))

	ingredientHandler := api.NewIngredientHandler(db, nutritionService)
	recipeHandler := api.NewRecipeHandler(db, nutritionService, scraperService, imageService)
	llmHandler := api.NewLLMHandler(llmService)

	engine := router.SetupRouter(ingredientHandler, recipeHandler, llmHandler, sqlDB, redisClient)

	return &Server{
		cfg:    cfg,
		engine: engine,
		db:     db,
		sqlDB:  sqlDB,
		redis:  redisClient,
	}, nil
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			return err
		}
	}
	if s.sqlDB != nil {
		return s.sqlDB.Close()
	}
	return nil
}
