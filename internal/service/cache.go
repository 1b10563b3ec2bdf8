package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pantrypilot/backend/internal/nutrition"
)

// NutritionCache keeps resolved per-100g nutrition records in Redis so the
// substring lookup against the nutrition table only runs on a miss. Errors
// from the cache are never surfaced: callers fall back to the store.
type NutritionCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewNutritionCache creates a cache around the given Redis client.
func NewNutritionCache(client *redis.Client) *NutritionCache {
	return &NutritionCache{
		redis: client,
		ttl:   24 * time.Hour,
	}
}

func nutritionKey(ingredientID uuid.UUID) string {
	return fmt.Sprintf("nutrition:ingredient:%s", ingredientID)
}

// Get returns the cached record for the ingredient, or nil on miss or error.
func (c *NutritionCache) Get(ctx context.Context, ingredientID uuid.UUID) *nutrition.IngredientNutrition {
	if c == nil || c.redis == nil {
		return nil
	}
	data, err := c.redis.Get(ctx, nutritionKey(ingredientID)).Bytes()
	if err != nil {
		return nil
	}
	var info nutrition.IngredientNutrition
	if err := json.Unmarshal(data, &info); err != nil {
		return nil
	}
	return &info
}

// Set stores the per-100g record for the ingredient. Failures are ignored.
func (c *NutritionCache) Set(ctx context.Context, ingredientID uuid.UUID, info nutrition.IngredientNutrition) {
	if c == nil || c.redis == nil {
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		return
	}
	c.redis.Set(ctx, nutritionKey(ingredientID), data, c.ttl)
}

// Invalidate drops cached records for the given ingredients, e.g. after a
// nutrition table reimport.
func (c *NutritionCache) Invalidate(ctx context.Context, ingredientIDs ...uuid.UUID) error {
	if c == nil || c.redis == nil || len(ingredientIDs) == 0 {
		return nil
	}
	keys := make([]string, len(ingredientIDs))
	for i, id := range ingredientIDs {
		keys[i] = nutritionKey(id)
	}
	return c.redis.Del(ctx, keys...).Err()
}
