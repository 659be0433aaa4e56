package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/epeers/sqglp/internal/models"
	"github.com/gin-gonic/gin"
)

const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token header does not match token.
// An empty token leaves the route open.
func RequireAdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		got := c.GetHeader(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "a valid " + AdminTokenHeader + " header is required",
			})
			return
		}
		c.Next()
	}
}
