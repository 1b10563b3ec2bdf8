package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypilot/backend/internal/api"
	"github.com/pantrypilot/backend/internal/service"
)

func TestSuggestSubstitutions(t *testing.T) {
	env := setupTestEnv(t)
	env.llm.substitutions = []service.Substitution{
		{Ingredient: "coconut oil", Ratio: "1:1", Notes: "adds slight sweetness"},
	}

	w := post(env, "/api/v1/llm/substitutions",
		`{"ingredient": "butter", "constraints": ["vegan"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Substitutions []service.Substitution `json:"substitutions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Substitutions, 1)
	assert.Equal(t, "coconut oil", body.Substitutions[0].Ingredient)
}

func TestSuggestSubstitutionsRequiresIngredient(t *testing.T) {
	env := setupTestEnv(t)

	w := post(env, "/api/v1/llm/substitutions", `{"constraints": ["vegan"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestSubstitutionsUpstreamFailure(t *testing.T) {
	env := setupTestEnv(t)
	env.llm.err = errors.New("api down")

	w := post(env, "/api/v1/llm/substitutions", `{"ingredient": "butter"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSuggestPairings(t *testing.T) {
	env := setupTestEnv(t)
	env.llm.pairings = []string{"garlic bread", "pinot grigio"}

	w := post(env, "/api/v1/llm/pairings",
		`{"recipe_name": "Lemon Pasta", "ingredients": ["spaghetti", "lemon"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Pairings []string `json:"pairings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"garlic bread", "pinot grigio"}, body.Pairings)
}

func TestLLMEndpointsUnavailableWithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := api.NewLLMHandler(nil)
	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/llm/pairings", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
