package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrypilot/backend/internal/service"
)

// LLMHandler serves the LLM-backed substitution and pairing suggestions.
type LLMHandler struct {
	llmService service.ILLMService
}

func NewLLMHandler(llmService service.ILLMService) *LLMHandler {
	return &LLMHandler{llmService: llmService}
}

func (h *LLMHandler) RegisterRoutes(router *gin.RouterGroup) {
	llm := router.Group("/llm")
	{
		llm.POST("/substitutions", h.SuggestSubstitutions)
		llm.POST("/pairings", h.SuggestPairings)
	}
}

func (h *LLMHandler) SuggestSubstitutions(c *gin.Context) {
	if h.llmService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "LLM features are not configured"})
		return
	}

	var req SubstitutionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	substitutions, err := h.llmService.SuggestSubstitutions(req.Ingredient, req.Constraints)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate substitutions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"substitutions": substitutions})
}

func (h *LLMHandler) SuggestPairings(c *gin.Context) {
	if h.llmService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "LLM features are not configured"})
		return
	}

	var req PairingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pairings, err := h.llmService.SuggestPairings(req.RecipeName, req.Ingredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate pairings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pairings": pairings})
}
