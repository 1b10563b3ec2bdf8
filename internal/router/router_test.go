package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypilot/backend/internal/api"
	"github.com/pantrypilot/backend/internal/database"
	"github.com/pantrypilot/backend/internal/router"
	"github.com/pantrypilot/backend/internal/service"
	"github.com/pantrypilot/backend/internal/testhelpers"
)

func setupEngine(t *testing.T, healthDB *database.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLiteDB(t)
	nutritionService := service.NewNutritionService(db, nil)
	return router.SetupRouter(
		api.NewIngredientHandler(db, nutritionService),
		api.NewRecipeHandler(db, nutritionService, nil, nil),
		api.NewLLMHandler(nil),
		healthDB,
		nil,
	)
}

func TestHealthEndpoint(t *testing.T) {
	engine := setupEngine(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestHealthEndpointPingsDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := testhelpers.SetupSQLiteDB(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	engine := setupEngine(t, &database.DB{DB: sqlDB})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, sqlDB.Close())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORSHeaders(t *testing.T) {
	engine := setupEngine(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ingredients", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
