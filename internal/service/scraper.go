package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// maxPageBytes caps how much of a recipe page is downloaded.
const maxPageBytes = 1 << 20

var (
	scriptStyleRegex = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRegex         = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// ScraperService fetches third-party recipe pages and hands their text to the
// LLM for structured extraction. Outbound requests share a token-bucket
// limiter so a burst of scrape calls doesn't hammer the target sites.
type ScraperService struct {
	client  *http.Client
	llm     ILLMService
	limiter *rate.Limiter
}

// NewScraperService creates a ScraperService using the given LLM parser.
func NewScraperService(llm ILLMService) *ScraperService {
	return &ScraperService{
		client:  &http.Client{Timeout: 30 * time.Second},
		llm:     llm,
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// ScrapeRecipe downloads the page at url and extracts a structured recipe.
func (s *ScraperService) ScrapeRecipe(ctx context.Context, url string) (*ParsedRecipe, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PantryPilot/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	parsed, err := s.llm.ParseRecipe(stripHTML(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe page: %w", err)
	}
	return parsed, nil
}

// stripHTML reduces a page to plain text the LLM can work with.
func stripHTML(page string) string {
	page = scriptStyleRegex.ReplaceAllString(page, " ")
	page = tagRegex.ReplaceAllString(page, " ")
	page = whitespaceRegex.ReplaceAllString(page, " ")
	return strings.TrimSpace(page)
}
