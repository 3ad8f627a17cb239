package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/bazario-dev/bazario-api/pkg/models"
)

// Concurrent mutations on the same user's cart are serialized with a
// version counter: every save is conditional on the version the mutation
// loaded, and a lost race reloads and replays. No update is silently
// dropped.
const cartSaveAttempts = 3

func loadCart(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := GetCollection("carts").FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return &cart, nil
}

func saveCart(ctx context.Context, cart *models.Cart) error {
	collection := GetCollection("carts")
	cart.UpdatedAt = time.Now()

	if cart.ID.IsZero() {
		cart.ID = bson.NewObjectID()
		cart.Version = 1
		if _, err := collection.InsertOne(ctx, cart); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Another request created this user's cart first.
				return fmt.Errorf("cart for user %s: %w", cart.UserID.Hex(), models.ErrConflict)
			}
			return fmt.Errorf("insert cart: %w", err)
		}
		return nil
	}

	res, err := collection.UpdateOne(ctx,
		bson.M{"_id": cart.ID, "version": cart.Version},
		bson.M{
			"$set": bson.M{
				"items":       cart.Lines,
				"total_price": cart.TotalPrice,
				"updated_at":  cart.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("cart for user %s changed underneath us: %w", cart.UserID.Hex(), models.ErrConflict)
	}
	return nil
}

// mutateCart loads (or lazily creates) the user's cart, applies mutate,
// recomputes the cached total from live catalog prices, and saves under
// the version guard, retrying on conflict.
func mutateCart(ctx context.Context, userID bson.ObjectID, mutate func(*models.Cart) error) (*models.Cart, error) {
	var lastErr error
	for attempt := 0; attempt < cartSaveAttempts; attempt++ {
		cart, err := loadCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		if cart == nil {
			cart = models.NewCart(userID)
		}

		if err := mutate(cart); err != nil {
			return nil, err
		}

		products, err := resolveProducts(ctx, cart.Lines, false)
		if err != nil {
			return nil, err
		}
		cart.Recompute(currentPrices(products))

		if err := saveCart(ctx, cart); err != nil {
			if errors.Is(err, models.ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return cart, nil
	}
	return nil, lastErr
}

// AddCartLine validates the product against the live catalog and merges
// the line into the user's cart.
func AddCartLine(ctx context.Context, userID bson.ObjectID, line models.CartLine) (*models.Cart, error) {
	product, err := FindProduct(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, fmt.Errorf("product %s is %s: %w", product.ID.Hex(), product.Status, models.ErrNotFound)
	}
	if product.StoreID != line.StoreID {
		return nil, fmt.Errorf("product %s belongs to store %s: %w",
			product.ID.Hex(), product.StoreID.Hex(), models.ErrProductNotInStore)
	}

	return mutateCart(ctx, userID, func(cart *models.Cart) error {
		cart.Upsert(line)
		return nil
	})
}

func UpdateCartLine(ctx context.Context, userID, productID bson.ObjectID, quantity int) (*models.Cart, error) {
	return mutateCart(ctx, userID, func(cart *models.Cart) error {
		if !cart.SetQuantity(productID, quantity) {
			return fmt.Errorf("product %s: %w", productID.Hex(), models.ErrLineNotFound)
		}
		return nil
	})
}

func RemoveCartLine(ctx context.Context, userID, productID bson.ObjectID) (*models.Cart, error) {
	return mutateCart(ctx, userID, func(cart *models.Cart) error {
		if !cart.Remove(productID) {
			return fmt.Errorf("product %s: %w", productID.Hex(), models.ErrLineNotFound)
		}
		return nil
	})
}

// ClearCart empties the cart document in place. The document survives
// for the next add; it is keyed by owner, so the write needs no version
// guard (clearing is idempotent and always wins).
func ClearCart(ctx context.Context, userID bson.ObjectID) error {
	_, err := GetCollection("carts").UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set": bson.M{
				"items":       []models.CartLine{},
				"total_price": 0.0,
				"updated_at":  time.Now(),
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// GetCartView resolves the user's cart for display. A user who has not
// added anything yet gets the same empty view an emptied cart produces.
func GetCartView(ctx context.Context, userID bson.ObjectID) (models.CartView, error) {
	cart, err := loadCart(ctx, userID)
	if err != nil {
		return models.CartView{}, err
	}
	if cart == nil {
		cart = models.NewCart(userID)
	}

	products, err := resolveProducts(ctx, cart.Lines, false)
	if err != nil {
		return models.CartView{}, err
	}
	return cart.View(products), nil
}
