package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/bazario-dev/bazario-api/pkg/global"
	"github.com/bazario-dev/bazario-api/pkg/models"
	"github.com/bazario-dev/bazario-api/pkg/mongo"
)

// userIDFromQuery pulls the trusted userId parameter the identity
// gateway forwards with customer requests. A false return means the
// response has already been written.
func userIDFromQuery(c *gin.Context) (bson.ObjectID, bool) {
	raw := c.Query("userId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("User ID is required", []global.ValidationError{
			{Field: "userId", Message: "userId query parameter is required", Code: "required"},
		}))
		return bson.ObjectID{}, false
	}
	userID, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		invalidIDError(c, "userId")
		return bson.ObjectID{}, false
	}
	return userID, true
}

func respondCart(c *gin.Context, userID bson.ObjectID) {
	view, err := mongo.GetCartView(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

func GetCart(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	respondCart(c, userID)
}

func AddToCart(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	var req models.AddCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "request", err)
		return
	}

	productID, err := bson.ObjectIDFromHex(req.ProductID)
	if err != nil {
		invalidIDError(c, "productId")
		return
	}
	storeID, err := bson.ObjectIDFromHex(req.StoreID)
	if err != nil {
		invalidIDError(c, "storeId")
		return
	}

	line := models.CartLine{
		ProductID: productID,
		StoreID:   storeID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	}
	if _, err := mongo.AddCartLine(c.Request.Context(), userID, line); err != nil {
		respondError(c, err)
		return
	}
	respondCart(c, userID)
}

func UpdateCartItem(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	var req models.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "request", err)
		return
	}

	productID, err := bson.ObjectIDFromHex(req.ProductID)
	if err != nil {
		invalidIDError(c, "productId")
		return
	}

	if _, err := mongo.UpdateCartLine(c.Request.Context(), userID, productID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	respondCart(c, userID)
}

func RemoveCartItem(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	productID, err := bson.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		invalidIDError(c, "productId")
		return
	}

	if _, err := mongo.RemoveCartLine(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}
	respondCart(c, userID)
}

func ClearCart(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	if err := mongo.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	respondCart(c, userID)
}
