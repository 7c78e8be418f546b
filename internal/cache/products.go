package cache

import (
	"context"
	"encoding/json"
	"time"

	"storefront_back_end/internal/database"
	"storefront_back_end/internal/models"
)

const (
	ProductListKey  = "products:all"
	ProductCacheTTL = 10 * time.Minute
)

// GetProductList returns the cached catalog scan, or false on a miss.
func GetProductList(ctx context.Context) ([]models.Product, bool) {
	val, err := database.Redis.Get(ctx, ProductListKey).Result()
	if err != nil || val == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProductList caches the full catalog scan. Failures are ignored; the
// cache is an accelerator, not a source of truth.
func SetProductList(ctx context.Context, products []models.Product) {
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, ProductListKey, data, ProductCacheTTL)
	}
}

// InvalidateProducts drops the cached scan after any catalog mutation.
func InvalidateProducts(ctx context.Context) {
	database.Redis.Del(ctx, ProductListKey)
}
