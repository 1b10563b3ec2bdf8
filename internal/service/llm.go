package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// LLMService handles interactions with the DeepSeek API for the auxiliary
// parsing, substitution and pairing features.
type LLMService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService() (*LLMService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the DeepSeek API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature,omitempty"`
}

// ParsedIngredient is one ingredient line extracted from a scraped page.
type ParsedIngredient struct {
	Name          string   `json:"name"`
	QuantityValue *float64 `json:"quantity_value"`
	QuantityUnit  string   `json:"quantity_unit"`
}

// ParsedRecipe is the structured result of parsing a scraped recipe page.
type ParsedRecipe struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	ImageURL     string             `json:"image_url"`
	Servings     int                `json:"servings"`
	Ingredients  []ParsedIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
}

// Substitution is one suggested replacement for an ingredient.
type Substitution struct {
	Ingredient string `json:"ingredient"`
	Ratio      string `json:"ratio"`
	Notes      string `json:"notes"`
}

// chat sends a JSON-mode chat request and returns the first choice's content.
func (s *LLMService) chat(messages []Message) (string, error) {
	reqBody := Request{
		Model:          "deepseek-chat",
		Messages:       messages,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", fmt.Errorf("failed to read error response: %w", readErr)
		}
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}
	return result.Choices[0].Message.Content, nil
}

// ParseRecipe extracts a structured recipe from the text of a scraped page.
func (s *LLMService) ParseRecipe(pageText string) (*ParsedRecipe, error) {
	messages := []Message{
		{
			Role: "system",
			Content: `You are a recipe extraction assistant. Given the text of a recipe web page, respond only with JSON of the form:
{
    "name": "Recipe name",
    "description": "Short description",
    "category": "Main Course, Dessert, Snack, Appetizer, Breakfast, Lunch, Dinner, Side Dish, Beverage, Soup or Salad",
    "image_url": "URL of the main recipe image if present, else empty",
    "servings": 4,
    "ingredients": [
        {"name": "flour", "quantity_value": 250, "quantity_unit": "g"},
        {"name": "salt", "quantity_value": null, "quantity_unit": ""}
    ],
    "instructions": ["Step 1 ...", "Step 2 ..."]
}

Use metric units (g, kg, ml, l, tsp, tbsp, cup, piece) for quantity_unit. When a
line has no usable quantity, set quantity_value to null and quantity_unit to "".`,
		},
		{
			Role:    "user",
			Content: pageText,
		},
	}

	content, err := s.chat(messages)
	if err != nil {
		return nil, err
	}

	var parsed ParsedRecipe
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}
	return &parsed, nil
}

// SuggestSubstitutions proposes replacements for an ingredient, optionally
// constrained (e.g. "vegan", "gluten-free").
func (s *LLMService) SuggestSubstitutions(ingredient string, constraints []string) ([]Substitution, error) {
	prompt := fmt.Sprintf("Suggest up to 5 substitutions for: %s", ingredient)
	if len(constraints) > 0 {
		prompt += ". The substitutions must be: " + strings.Join(constraints, ", ")
	}

	messages := []Message{
		{
			Role: "system",
			Content: `You are a professional chef. Respond only with JSON like
{"substitutions": [{"ingredient": "name", "ratio": "1:1", "notes": "short note"}]}`,
		},
		{
			Role:    "user",
			Content: prompt,
		},
	}

	content, err := s.chat(messages)
	if err != nil {
		return nil, err
	}

	var result struct {
		Substitutions []Substitution `json:"substitutions"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse substitutions: %w", err)
	}
	return result.Substitutions, nil
}

// SuggestPairings proposes dishes or sides that go well with a recipe.
func (s *LLMService) SuggestPairings(recipeName string, ingredients []string) ([]string, error) {
	prompt := fmt.Sprintf("Suggest up to 5 pairings (sides, drinks or dishes) for: %s", recipeName)
	if len(ingredients) > 0 {
		prompt += "\nMain ingredients:\n" + strings.Join(ingredients, "\n")
	}

	messages := []Message{
		{
			Role:    "system",
			Content: `You are a professional sommelier and chef. Respond only with JSON like {"pairings": ["suggestion 1", "suggestion 2"]}`,
		},
		{
			Role:    "user",
			Content: prompt,
		},
	}

	content, err := s.chat(messages)
	if err != nil {
		return nil, err
	}

	var result struct {
		Pairings []string `json:"pairings"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse pairings: %w", err)
	}
	return result.Pairings, nil
}
