package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypilot/backend/internal/service"
)

// capturingLLM records the page text handed to ParseRecipe.
type capturingLLM struct {
	pageText string
	recipe   *service.ParsedRecipe
}

func (c *capturingLLM) ParseRecipe(pageText string) (*service.ParsedRecipe, error) {
	c.pageText = pageText
	return c.recipe, nil
}

func (c *capturingLLM) SuggestSubstitutions(string, []string) ([]service.Substitution, error) {
	return nil, nil
}

func (c *capturingLLM) SuggestPairings(string, []string) ([]string, error) {
	return nil, nil
}

func TestScrapeRecipeStripsMarkup(t *testing.T) {
	page := `<html><head><style>body { color: red; }</style>
<script>trackVisitor();</script></head>
<body><h1>Lemon   Pasta</h1><p>400 g spaghetti</p></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PantryPilot/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(page))
	}))
	defer srv.Close()

	llm := &capturingLLM{recipe: &service.ParsedRecipe{Name: "Lemon Pasta"}}
	scraper := service.NewScraperService(llm)

	parsed, err := scraper.ScrapeRecipe(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Lemon Pasta", parsed.Name)

	assert.Equal(t, "Lemon Pasta 400 g spaghetti", llm.pageText)
	assert.NotContains(t, llm.pageText, "trackVisitor")
	assert.NotContains(t, llm.pageText, "color: red")
}

func TestScrapeRecipeRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	scraper := service.NewScraperService(&capturingLLM{})

	_, err := scraper.ScrapeRecipe(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 410")
}
