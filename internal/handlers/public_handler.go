package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/logger"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/services"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// PublicHandler serves the unauthenticated card surface: the plan-filtered
// profile view plus the visitor-side interaction endpoints.
type PublicHandler struct {
	BaseHandler
	profiles   services.ProfileService
	subs       services.SubscriptionService
	projection services.ProjectionService
	insights   services.InsightsService
	contacts   services.ContactService
}

func NewPublicHandler(
	base BaseHandler,
	profiles services.ProfileService,
	subs services.SubscriptionService,
	projection services.ProjectionService,
	insights services.InsightsService,
	contacts services.ContactService,
) *PublicHandler {
	return &PublicHandler{
		BaseHandler: base,
		profiles:    profiles,
		subs:        subs,
		projection:  projection,
		insights:    insights,
		contacts:    contacts,
	}
}

func (h *PublicHandler) RegisterRoutes(r *gin.RouterGroup) {
	grp := r.Group("/p")
	grp.GET("/:key", h.GetProfile)
	grp.POST("/:key/taps", h.RecordLinkTap)
	grp.POST("/:key/exchange", h.Exchange)
	grp.POST("/:key/saves", h.RecordContactSave)
	grp.POST("/:key/downloads", h.RecordContactDownload)
}

// GetProfile resolves a card by activation code or custom slug and returns
// the plan-filtered view. Every fetch is counted as a view unless the owner
// is previewing (?preview=true).
func (h *PublicHandler) GetProfile(c *gin.Context) {
	key := c.Param("key")

	profile, err := h.profiles.GetPublic(key)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	state := h.subs.StateFor(profile)
	view, err := h.projection.Project(profile, state)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if c.Query("preview") != "true" {
		event := models.ViewEvent{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Industry:  c.Query("industry"),
			Company:   c.Query("company"),
			Location:  c.Query("location"),
		}
		if err := h.insights.TrackView(profile.ID, event); err != nil {
			// The view payload is already built; a tracking failure must
			// not turn the fetch into an error.
			logger.CtxWithError(c.Request.Context(), "view tracking failed", err,
				"profile_id", profile.ID)
		}
	}

	respondOK(c, view)
}

type linkTapRequest struct {
	LinkID string `json:"linkId" binding:"required" validate:"max=120"`
}

// RecordLinkTap counts one tap on a profile link.
func (h *PublicHandler) RecordLinkTap(c *gin.Context) {
	var req linkTapRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.insights.RecordLinkTap(c.Param("key"), req.LinkID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondNoContent(c)
}

// Exchange hands a visitor's contact details to the card owner, consuming
// one unit of the owner's monthly quota.
func (h *PublicHandler) Exchange(c *gin.Context) {
	var req dto.ContactExchangeRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, err := h.contacts.Exchange(c.Param("key"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondCreated(c, result)
}

// RecordContactSave counts a visitor saving the card to their contacts.
func (h *PublicHandler) RecordContactSave(c *gin.Context) {
	if err := h.insights.RecordContactSave(c.Param("key")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondNoContent(c)
}

// RecordContactDownload counts a vCard download.
func (h *PublicHandler) RecordContactDownload(c *gin.Context) {
	if err := h.insights.RecordContactDownload(c.Param("key")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondNoContent(c)
}
