package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/bazario-dev/bazario-api/pkg/global"
	"github.com/bazario-dev/bazario-api/pkg/models"
	"github.com/bazario-dev/bazario-api/pkg/mongo"
)

func HealthCheck(c *gin.Context) {
	if err := mongo.GetDatabase().Client().Ping(c.Request.Context(), nil); err != nil {
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

func GetAllProducts(c *gin.Context) {
	products, err := mongo.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func GetProductByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		invalidIDError(c, "id")
		return
	}

	product, err := mongo.FindProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "request", err)
		return
	}

	storeID, err := bson.ObjectIDFromHex(req.StoreID)
	if err != nil {
		invalidIDError(c, "storeId")
		return
	}

	product := req.ToProduct(storeID)
	if err := mongo.CreateProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(product))
}

// EditProductByID applies a partial update. Identity fields never
// change through this endpoint.
func EditProductByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		invalidIDError(c, "id")
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "body", err)
		return
	}
	updates := req.Updates()
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No valid updates provided", []global.ValidationError{
			{Field: "body", Message: "Request body must contain at least one mutable field", Code: "empty_updates"},
		}))
		return
	}

	product, err := mongo.UpdateProduct(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}
