package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/bazario-dev/bazario-api/pkg/global"
	"github.com/bazario-dev/bazario-api/pkg/models"
	"github.com/bazario-dev/bazario-api/pkg/mongo"
)

func riderIDFromContext(c *gin.Context) (bson.ObjectID, bool) {
	riderID, err := bson.ObjectIDFromHex(c.GetString("callerId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid rider identity", nil))
		return bson.ObjectID{}, false
	}
	return riderID, true
}

// GetNewOrders is the shared pending feed: every unclaimed order,
// visible to any rider until someone accepts it.
func GetNewOrders(c *gin.Context) {
	orders, err := mongo.GetPendingOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func GetMyOrders(c *gin.Context) {
	riderID, ok := riderIDFromContext(c)
	if !ok {
		return
	}

	orders, err := mongo.GetOrdersByRider(c.Request.Context(), riderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func AcceptOrder(c *gin.Context) {
	riderID, ok := riderIDFromContext(c)
	if !ok {
		return
	}
	orderID, ok := orderIDFromParam(c)
	if !ok {
		return
	}

	order, err := mongo.AcceptOrder(c.Request.Context(), riderID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// GetOrderLocation returns the delivery destination and contact for an
// order, for the rider's navigation view.
func GetOrderLocation(c *gin.Context) {
	orderID, ok := orderIDFromParam(c)
	if !ok {
		return
	}

	order, err := mongo.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"shipping_address": order.ShippingAddress,
		"customer":         order.ShippingAddress.Name,
		"phone":            order.ShippingAddress.Phone,
		"status":           order.Status,
	}))
}

func UpdateDeliveryStatus(c *gin.Context) {
	riderID, ok := riderIDFromContext(c)
	if !ok {
		return
	}
	orderID, ok := orderIDFromParam(c)
	if !ok {
		return
	}

	var req models.DeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "status", err)
		return
	}

	order, err := mongo.UpdateDeliveryStatus(c.Request.Context(), riderID, orderID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}
