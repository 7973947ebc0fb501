package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/internal/handlers"
	"github.com/sandy-the-earth/nfc-backend/internal/middleware"
)

// RegisterRoutes mounts every handler under /api/v1 plus the health probe.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	h.Auth.RegisterRoutes(api)
	h.Public.RegisterRoutes(api)
	h.Profile.RegisterRoutes(api)
	h.Plan.RegisterRoutes(api)
	h.Admin.RegisterRoutes(api)
	h.Files.RegisterRoutes(api)
}
