package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/bazario-dev/bazario-api/pkg/models"
	"github.com/bazario-dev/bazario-api/pkg/redis"
)

// FindProduct resolves a catalog product by id, Redis first. A cache
// failure only costs the round trip to MongoDB, never the request.
func FindProduct(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	if product, err := redis.GetProductFromCache(ctx, id.Hex()); err == nil {
		return product, nil
	}

	var product models.Product
	err := GetCollection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	if cacheErr := redis.CacheProduct(ctx, &product); cacheErr != nil {
		log.Printf("Warning: failed to cache product %s: %v", id.Hex(), cacheErr)
	}
	return &product, nil
}

// resolveProducts looks up every distinct product in lines. With strict
// set, any missing or inactive product aborts with ErrInvalidCartLine.
// Lenient callers (cart views, total recompute) get the resolvable
// subset.
func resolveProducts(ctx context.Context, lines []models.CartLine, strict bool) (map[bson.ObjectID]*models.Product, error) {
	products := make(map[bson.ObjectID]*models.Product, len(lines))
	for _, line := range lines {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		product, err := FindProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				if strict {
					return nil, fmt.Errorf("product %s: %w", line.ProductID.Hex(), models.ErrInvalidCartLine)
				}
				continue
			}
			return nil, err
		}
		if strict && !product.IsActive() {
			return nil, fmt.Errorf("product %s is %s: %w", line.ProductID.Hex(), product.Status, models.ErrInvalidCartLine)
		}
		products[line.ProductID] = product
	}
	return products, nil
}

func currentPrices(products map[bson.ObjectID]*models.Product) map[bson.ObjectID]float64 {
	prices := make(map[bson.ObjectID]float64, len(products))
	for id, p := range products {
		prices[id] = p.Price
	}
	return prices
}

func CreateProduct(ctx context.Context, product *models.Product) error {
	if _, err := GetCollection("products").InsertOne(ctx, product); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if cacheErr := redis.CacheProduct(ctx, product); cacheErr != nil {
		log.Printf("Warning: failed to cache product %s: %v", product.ID.Hex(), cacheErr)
	}
	return nil
}

func GetAllProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := GetCollection("products").Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// UpdateProduct applies a partial update and drops the cache entry so
// the next read (and the next cart recompute) sees the new document.
func UpdateProduct(ctx context.Context, id bson.ObjectID, updates bson.M) (*models.Product, error) {
	updates["updated_at"] = time.Now()

	var updated models.Product
	err := GetCollection("products").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		findOneAndUpdateAfter(),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if cacheErr := redis.InvalidateProduct(ctx, id.Hex()); cacheErr != nil {
		log.Printf("Warning: failed to invalidate product %s: %v", id.Hex(), cacheErr)
	}
	return &updated, nil
}
