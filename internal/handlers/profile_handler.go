package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/middleware"
	"github.com/sandy-the-earth/nfc-backend/internal/services"
	"github.com/sandy-the-earth/nfc-backend/internal/storage"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// UploadLimits constrains profile image uploads.
type UploadLimits struct {
	MaxSize      int64
	AllowedTypes []string
}

// ProfileHandler serves the authenticated owner surface: profile content
// management, slug changes, image uploads and insights.
type ProfileHandler struct {
	BaseHandler
	profiles services.ProfileService
	insights services.InsightsService
	files    storage.Storage
	limits   UploadLimits
}

func NewProfileHandler(
	base BaseHandler,
	profiles services.ProfileService,
	insights services.InsightsService,
	files storage.Storage,
	limits UploadLimits,
) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: base,
		profiles:    profiles,
		insights:    insights,
		files:       files,
		limits:      limits,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	grp := r.Group("/profiles", middleware.RequireAuth(), middleware.RequireOwner())
	grp.GET("/:id", h.Get)
	grp.PUT("/:id", h.Update)
	grp.PUT("/:id/slug", h.SetSlug)
	grp.POST("/:id/avatar", h.UploadAvatar)
	grp.POST("/:id/banner", h.UploadBanner)
	grp.GET("/:id/insights", h.GetInsights)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	profile, err := h.profiles.Update(c.Param("id"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, profile)
}

func (h *ProfileHandler) SetSlug(c *gin.Context) {
	var req dto.SetSlugRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.profiles.SetCustomSlug(c.Param("id"), req.Slug); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, gin.H{"slug": strings.ToLower(strings.TrimSpace(req.Slug))})
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	h.uploadImage(c, "avatars", h.profiles.SetAvatarURL)
}

func (h *ProfileHandler) UploadBanner(c *gin.Context) {
	h.uploadImage(c, "banners", h.profiles.SetBannerURL)
}

// uploadImage stores a multipart image and records its public URL through
// the given setter.
func (h *ProfileHandler) uploadImage(c *gin.Context, folder string, set func(id, url string) error) {
	id := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A 'file' form field is required"))
		return
	}
	if h.limits.MaxSize > 0 && fileHeader.Size > h.limits.MaxSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError(
			fmt.Sprintf("File exceeds the %d byte limit", h.limits.MaxSize)))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !h.typeAllowed(contentType) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unsupported file type: "+contentType))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer src.Close()

	path := fmt.Sprintf("%s/%s/%s%s", folder, id, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	if err := h.files.Save(c.Request.Context(), path, src, contentType); err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	url, err := h.files.GetURL(c.Request.Context(), path)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	if err := set(id, url); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, gin.H{"url": url})
}

func (h *ProfileHandler) typeAllowed(contentType string) bool {
	if len(h.limits.AllowedTypes) == 0 {
		return true
	}
	for _, t := range h.limits.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// GetInsights returns the tier-filtered analytics payload for the owner's
// profile.
func (h *ProfileHandler) GetInsights(c *gin.Context) {
	payload, err := h.insights.GetInsights(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, payload)
}
