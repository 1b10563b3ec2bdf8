package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pantrypilot/backend/internal/api"
	"github.com/pantrypilot/backend/internal/router"
	"github.com/pantrypilot/backend/internal/service"
	"github.com/pantrypilot/backend/internal/testhelpers"
)

// stubScraper returns a canned parse result or error.
type stubScraper struct {
	recipe *service.ParsedRecipe
	err    error
}

func (s *stubScraper) ScrapeRecipe(ctx context.Context, url string) (*service.ParsedRecipe, error) {
	return s.recipe, s.err
}

// stubImages mirrors every image to a fixed URL.
type stubImages struct {
	url string
	err error
}

func (s *stubImages) MirrorImage(ctx context.Context, srcURL string) (string, error) {
	return s.url, s.err
}

// stubLLM returns canned suggestions.
type stubLLM struct {
	substitutions []service.Substitution
	pairings      []string
	err           error
}

func (s *stubLLM) ParseRecipe(pageText string) (*service.ParsedRecipe, error) {
	return nil, s.err
}

func (s *stubLLM) SuggestSubstitutions(ingredient string, constraints []string) ([]service.Substitution, error) {
	return s.substitutions, s.err
}

func (s *stubLLM) SuggestPairings(recipeName string, ingredients []string) ([]string, error) {
	return s.pairings, s.err
}

type testEnv struct {
	engine  *gin.Engine
	db      *gorm.DB
	scraper *stubScraper
	images  *stubImages
	llm     *stubLLM
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDB(t)
	nutritionService := service.NewNutritionService(db, nil)

	env := &testEnv{
		db:      db,
		scraper: &stubScraper{},
		images:  &stubImages{},
		llm:     &stubLLM{},
	}

	ingredientHandler := api.NewIngredientHandler(db, nutritionService)
	recipeHandler := api.NewRecipeHandler(db, nutritionService, env.scraper, env.images)
	llmHandler := api.NewLLMHandler(env.llm)

	env.engine = router.SetupRouter(ingredientHandler, recipeHandler, llmHandler, nil, nil)
	return env
}

func (e *testEnv) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func get(e *testEnv, path string) *httptest.ResponseRecorder {
	return e.request(http.MethodGet, path, "")
}

func post(e *testEnv, path, body string) *httptest.ResponseRecorder {
	return e.request(http.MethodPost, path, body)
}
