package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/services"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// AuthHandler serves card activation and owner login.
type AuthHandler struct {
	BaseHandler
	profiles services.ProfileService
	auth     services.AuthService
}

func NewAuthHandler(base BaseHandler, profiles services.ProfileService, auth services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, profiles: profiles, auth: auth}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	grp := r.Group("/auth")
	grp.POST("/activate", h.Activate)
	grp.POST("/login", h.Login)
}

// Activate claims a pending card with owner credentials.
func (h *AuthHandler) Activate(c *gin.Context) {
	var req dto.ActivateRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	profile, err := h.profiles.Activate(req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	// Issue a session right away so activation flows straight into the
	// editor without a second login round-trip.
	session, err := h.auth.Login(dto.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	respondCreated(c, gin.H{
		"profile": profile,
		"token":   session.Token,
	})
}

// Login authenticates an owner by email and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	session, err := h.auth.Login(req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, session)
}
