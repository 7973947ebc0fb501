package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// RequireAdminKey guards the admin surface with the x-admin-key header.
// An empty configured key disables the surface entirely rather than leaving
// it open.
func RequireAdminKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader("x-admin-key")
		if apiKey == "" || supplied == "" ||
			subtle.ConstantTimeCompare([]byte(supplied), []byte(apiKey)) != 1 {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Invalid admin key"))
			c.Abort()
			return
		}
		c.Next()
	}
}
