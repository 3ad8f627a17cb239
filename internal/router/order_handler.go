package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/bazario-dev/bazario-api/pkg/global"
	"github.com/bazario-dev/bazario-api/pkg/models"
	"github.com/bazario-dev/bazario-api/pkg/mongo"
)

func orderIDFromParam(c *gin.Context) (bson.ObjectID, bool) {
	orderID, err := bson.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		invalidIDError(c, "orderId")
		return bson.ObjectID{}, false
	}
	return orderID, true
}

func CreateOrder(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "request", err)
		return
	}

	order, err := mongo.CreateOrderFromCart(c.Request.Context(), userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(order))
}

func GetUserOrders(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	orders, err := mongo.GetOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func GetAllOrders(c *gin.Context) {
	orders, err := mongo.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func storeIDFromQuery(c *gin.Context) (bson.ObjectID, bool) {
	raw := c.Query("storeId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Store ID is required", []global.ValidationError{
			{Field: "storeId", Message: "storeId query parameter is required", Code: "required"},
		}))
		return bson.ObjectID{}, false
	}
	storeID, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		invalidIDError(c, "storeId")
		return bson.ObjectID{}, false
	}
	return storeID, true
}

// GetStoreOrders lists a seller's orders, already reduced to the
// store-scoped projection.
func GetStoreOrders(c *gin.Context) {
	storeID, ok := storeIDFromQuery(c)
	if !ok {
		return
	}

	views, err := mongo.GetStoreOrders(c.Request.Context(), storeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"count":  len(views),
		"orders": views,
	}))
}

func GetStoreOrderDetail(c *gin.Context) {
	orderID, ok := orderIDFromParam(c)
	if !ok {
		return
	}
	storeID, ok := storeIDFromQuery(c)
	if !ok {
		return
	}

	view, err := mongo.GetStoreOrderDetail(c.Request.Context(), orderID, storeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

// UpdateOrderStatus is the admin escape hatch: support can force any
// status. The conditional write underneath still refuses to race a
// concurrent transition.
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := orderIDFromParam(c)
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "status", err)
		return
	}

	order, err := mongo.UpdateOrderStatus(c.Request.Context(), orderID, req.Status, models.ActorAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

func CancelOrder(c *gin.Context) {
	orderID, ok := orderIDFromParam(c)
	if !ok {
		return
	}

	order, err := mongo.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}
