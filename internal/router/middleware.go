package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bazario-dev/bazario-api/pkg/global"
)

// RequireRole resolves the caller from a bearer token issued by the
// identity service (claims: id, role) and rejects any caller whose role
// does not match. Handlers read the id from the "callerId" context key.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authorization header is missing", nil))
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return global.GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token", nil))
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid token claims", nil))
			c.Abort()
			return
		}

		callerRole, _ := claims["role"].(string)
		if callerRole != role {
			c.JSON(http.StatusForbidden, global.ErrorResponse("Insufficient permissions", nil))
			c.Abort()
			return
		}

		callerID, _ := claims["id"].(string)
		if callerID == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid token claims", nil))
			c.Abort()
			return
		}

		c.Set("callerId", callerID)
		c.Set("callerRole", callerRole)
		c.Next()
	}
}
