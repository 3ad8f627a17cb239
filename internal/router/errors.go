package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bazario-dev/bazario-api/pkg/global"
	"github.com/bazario-dev/bazario-api/pkg/models"
)

// errorKind maps a domain error onto the HTTP status and stable
// machine-readable code clients key off.
type errorKind struct {
	status  int
	code    string
	message string
}

var errorKinds = []struct {
	sentinel error
	kind     errorKind
}{
	{models.ErrCartEmpty, errorKind{http.StatusBadRequest, "cart_empty", "Cart is empty"}},
	{models.ErrLineNotFound, errorKind{http.StatusNotFound, "line_not_found", "Item not in cart"}},
	{models.ErrProductNotInStore, errorKind{http.StatusBadRequest, "product_not_in_store", "Product does not belong to this store"}},
	{models.ErrInvalidCartLine, errorKind{http.StatusBadRequest, "invalid_cart_line", "Cart contains an invalid or stale product"}},
	{models.ErrInvalidTransition, errorKind{http.StatusBadRequest, "invalid_transition", "Order status cannot change that way"}},
	{models.ErrOrderNotPending, errorKind{http.StatusConflict, "order_not_pending", "Order already accepted or processed"}},
	{models.ErrRiderBusy, errorKind{http.StatusConflict, "rider_busy", "Rider already has an active order"}},
	{models.ErrConflict, errorKind{http.StatusConflict, "conflict", "Concurrent update, please retry"}},
	{models.ErrNotFound, errorKind{http.StatusNotFound, "not_found", "Resource not found"}},
	{models.ErrUpstream, errorKind{http.StatusBadGateway, "upstream_unavailable", "Upstream service unavailable"}},
}

// respondError translates a domain error into the response envelope.
// Unrecognized errors become opaque 500s; their details are logged, and
// echoed to the client only outside production.
func respondError(c *gin.Context, err error) {
	for _, entry := range errorKinds {
		if errors.Is(err, entry.sentinel) {
			c.JSON(entry.kind.status, global.ErrorResponse(entry.kind.message, []global.ValidationError{
				{Field: "request", Message: err.Error(), Code: entry.kind.code},
			}))
			return
		}
	}

	log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	message := "Internal server error"
	if !global.IsProduction() {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, global.ErrorResponse(message, nil))
}

func bindingError(c *gin.Context, field string, err error) {
	c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
		{Field: field, Message: err.Error(), Code: "validation_error"},
	}))
}

func invalidIDError(c *gin.Context, field string) {
	c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid "+field+" format", []global.ValidationError{
		{Field: field, Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
	}))
}
