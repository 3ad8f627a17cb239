package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bazario-dev/bazario-api/pkg/models"
)

const productTTL = 24 * time.Hour

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// CacheProduct stores a catalog product under product:{id}. Every
// product write goes through here (or InvalidateProduct), so cached
// reads track the current price.
func CacheProduct(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.ID.Hex(), err)
	}

	pipe := client.TxPipeline()
	pipe.Set(ctx, productKey(product.ID.Hex()), productJSON, productTTL)
	pipe.LPush(ctx, "products:recent", product.ID.Hex())
	pipe.LTrim(ctx, "products:recent", 0, 99)
	pipe.Expire(ctx, "products:recent", productTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache product %s: %w", product.ID.Hex(), err)
	}
	return nil
}

func GetProductFromCache(ctx context.Context, id string) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	productJSON, err := client.Get(ctx, productKey(id)).Result()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

// InvalidateProduct drops a product from the cache after a catalog
// write so the next read sees the database.
func InvalidateProduct(ctx context.Context, id string) error {
	client := RedisClient()
	defer client.Close()

	pipe := client.TxPipeline()
	pipe.Del(ctx, productKey(id))
	pipe.LRem(ctx, "products:recent", 0, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate product %s: %w", id, err)
	}
	return nil
}
