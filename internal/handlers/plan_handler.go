package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/middleware"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
	"github.com/sandy-the-earth/nfc-backend/internal/services"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// PlanHandler serves the public pricing catalog, the owner's subscription
// view and the checkout flow.
type PlanHandler struct {
	BaseHandler
	catalog  plans.Catalog
	subs     services.SubscriptionService
	payments services.PaymentService
}

func NewPlanHandler(base BaseHandler, catalog plans.Catalog, subs services.SubscriptionService, payments services.PaymentService) *PlanHandler {
	return &PlanHandler{BaseHandler: base, catalog: catalog, subs: subs, payments: payments}
}

func (h *PlanHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/plans", h.ListPlans)

	grp := r.Group("/profiles", middleware.RequireAuth(), middleware.RequireOwner())
	grp.GET("/:id/subscription", h.GetSubscription)
	grp.POST("/:id/checkout", h.CreateCheckout)
	grp.POST("/:id/checkout/confirm", h.ConfirmPayment)
}

// ListPlans returns the published pricing catalog.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	respondOK(c, gin.H{
		"version": h.catalog.Version,
		"plans":   h.catalog.Plans,
	})
}

// GetSubscription returns the owner's stored subscription record.
func (h *PlanHandler) GetSubscription(c *gin.Context) {
	sub, err := h.subs.GetForProfile(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, sub)
}

// CreateCheckout opens a payment order for a plan purchase.
func (h *PlanHandler) CreateCheckout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	session, err := h.payments.CreateCheckout(c.Param("id"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondCreated(c, session)
}

// ConfirmPayment verifies the gateway callback and activates the plan.
func (h *PlanHandler) ConfirmPayment(c *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	sub, err := h.payments.ConfirmPayment(c.Param("id"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondOK(c, sub)
}
