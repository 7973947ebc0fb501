package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/middleware"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/services"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// AdminHandler serves the back-office surface behind the x-admin-key header:
// card provisioning, profile moderation and subscription management.
type AdminHandler struct {
	BaseHandler
	profiles services.ProfileService
	subs     services.SubscriptionService
	adminKey string
}

func NewAdminHandler(base BaseHandler, profiles services.ProfileService, subs services.SubscriptionService, adminKey string) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		profiles:    profiles,
		subs:        subs,
		adminKey:    adminKey,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	grp := r.Group("/admin", middleware.RequireAdminKey(h.adminKey))

	grp.POST("/profiles", h.CreateProfile)
	grp.GET("/profiles", h.ListProfiles)
	grp.GET("/profiles/export", h.ExportProfiles)
	grp.PATCH("/profiles/:id/status", h.SetStatus)
	grp.PATCH("/profiles/:id/active", h.SetActive)
	grp.DELETE("/profiles/:id", h.DeleteProfile)

	grp.POST("/profiles/:id/subscription", h.AssignSubscription)
	grp.GET("/subscriptions", h.ListSubscriptions)
	grp.GET("/subscriptions/stats", h.SubscriptionStats)
}

// CreateProfile provisions a fresh card: an empty profile holding only a new
// activation code.
func (h *AdminHandler) CreateProfile(c *gin.Context) {
	profile, err := h.profiles.CreatePending()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondCreated(c, profile)
}

func (h *AdminHandler) ListProfiles(c *gin.Context) {
	var q dto.ListProfilesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return
	}
	if err := h.validator.Validate(&q); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 50
	}

	profiles, total, err := h.profiles.List(q)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": profiles,
		"meta": dto.ListMeta{Total: total, Page: q.Page, Limit: q.Limit},
	})
}

// ExportProfiles streams the profile roster as CSV.
func (h *AdminHandler) ExportProfiles(c *gin.Context) {
	data, err := h.profiles.ExportCSV(c.Query("status"), c.Query("search"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="profiles.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *AdminHandler) SetStatus(c *gin.Context) {
	var req dto.SetStatusRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.profiles.SetStatus(c.Param("id"), models.ProfileStatus(req.Status)); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondNoContent(c)
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive toggles the soft-delete flag.
func (h *AdminHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("An 'active' boolean is required"))
		return
	}

	if err := h.profiles.SetActive(c.Param("id"), *req.Active); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondNoContent(c)
}

func (h *AdminHandler) DeleteProfile(c *gin.Context) {
	if err := h.profiles.Delete(c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondNoContent(c)
}

// AssignSubscription upserts a plan for a profile without going through the
// payment gateway. Used for comped and manually sold plans.
func (h *AdminHandler) AssignSubscription(c *gin.Context) {
	var req dto.AssignSubscriptionRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	sub, err := h.subs.Assign(c.Param("id"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, sub)
}

func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.subs.ListAll()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, subs)
}

func (h *AdminHandler) SubscriptionStats(c *gin.Context) {
	stats, err := h.subs.StatsByPlan()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, stats)
}
