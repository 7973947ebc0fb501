package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/internal/auth"
	"github.com/sandy-the-earth/nfc-backend/internal/logger"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// ContextProfileID is the gin context key the auth middleware sets.
const ContextProfileID = "profileID"

// RequireAuth validates the bearer token and stores the owner's profile ID
// on the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Missing bearer token"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			msg := "Invalid token"
			if apperrors.Is(err, auth.ErrTokenExpired) {
				msg = "Token expired"
			}
			apperrors.HandleError(c, apperrors.NewUnauthorizedError(msg))
			c.Abort()
			return
		}

		c.Set(ContextProfileID, claims.ProfileID)
		c.Request = c.Request.WithContext(
			logger.WithProfileID(c.Request.Context(), claims.ProfileID))
		c.Next()
	}
}

// RequireOwner ensures the authenticated owner is acting on their own
// profile. Mounted after RequireAuth on routes carrying an :id param.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetString(ContextProfileID)
		if owner == "" || c.Param("id") != owner {
			apperrors.HandleError(c, apperrors.NewForbiddenError("You do not own this profile"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthedProfileID reads the profile ID set by RequireAuth.
func AuthedProfileID(c *gin.Context) string {
	return c.GetString(ContextProfileID)
}
