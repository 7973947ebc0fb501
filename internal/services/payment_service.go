package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/logger"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
	"github.com/sandy-the-earth/nfc-backend/internal/repositories"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// PaymentConfig carries the gateway credentials.
type PaymentConfig struct {
	KeyID     string
	KeySecret string
	Currency  string
}

type PaymentService interface {
	// CreateCheckout opens a gateway order for a plan purchase. The amount
	// comes from the pricing catalog, never from the client.
	CreateCheckout(profileID string, req dto.CheckoutRequest) (*dto.CheckoutSession, error)

	// ConfirmPayment verifies the gateway signature and activates the
	// purchased subscription.
	ConfirmPayment(profileID string, req dto.ConfirmPaymentRequest) (*models.Subscription, error)
}

type paymentService struct {
	subs    repositories.SubscriptionRepository
	catalog plans.Catalog
	cfg     PaymentConfig
	now     func() time.Time
}

func NewPaymentService(subs repositories.SubscriptionRepository, catalog plans.Catalog, cfg PaymentConfig) PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	return &paymentService{
		subs:    subs,
		catalog: catalog,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *paymentService) CreateCheckout(profileID string, req dto.CheckoutRequest) (*dto.CheckoutSession, error) {
	if !plans.ValidTier(req.Plan) {
		return nil, apperrors.ErrInvalidInput("payment", "Unknown plan: "+req.Plan)
	}
	if !plans.ValidCycle(req.Cycle) {
		return nil, apperrors.ErrInvalidInput("payment", "Unknown billing cycle: "+req.Cycle)
	}

	tier := plans.ParseTier(req.Plan)
	cycle := plans.Cycle(req.Cycle)

	price, ok := s.catalog.Price(tier, cycle)
	if !ok {
		return nil, apperrors.ErrInvalidInput("payment", "No price listed for this plan and cycle")
	}

	session := &dto.CheckoutSession{
		OrderID:  "order_" + uuid.NewString(),
		Amount:   price * 100, // rupees to paise
		Currency: s.cfg.Currency,
		Key:      s.cfg.KeyID,
		Receipt:  fmt.Sprintf("rcpt_%s_%d", profileID, s.now().Unix()),
	}

	logger.Info("checkout created",
		"profile_id", profileID,
		"plan", tier.String(),
		"cycle", string(cycle),
		"order_id", session.OrderID,
	)
	return session, nil
}

func (s *paymentService) ConfirmPayment(profileID string, req dto.ConfirmPaymentRequest) (*models.Subscription, error) {
	if !s.verifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return nil, apperrors.NewUnauthorizedError("Payment signature verification failed")
	}
	if !plans.ValidTier(req.Plan) || !plans.ValidCycle(req.Cycle) {
		return nil, apperrors.ErrInvalidInput("payment", "Unknown plan or billing cycle")
	}

	tier := plans.ParseTier(req.Plan)
	cycle := plans.Cycle(req.Cycle)

	amount := 0
	if price, ok := s.catalog.Price(tier, cycle); ok {
		amount = price
	}

	now := s.now()
	endDate := addMonthsClamped(now, cycle.Months())

	sub := &models.Subscription{
		ProfileID:    profileID,
		Plan:         tier.String(),
		BillingCycle: string(cycle),
		Status:       models.SubscriptionStatusActive,
		ActivatedAt:  &now,
		EndDate:      &endDate,
		PaymentID:    req.PaymentID,
		Amount:       float64(amount),
		Currency:     s.cfg.Currency,
	}

	if err := s.subs.Upsert(sub); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("subscription purchased",
		"profile_id", profileID,
		"plan", tier.String(),
		"payment_id", req.PaymentID,
	)
	return sub, nil
}

// verifySignature checks the gateway's HMAC-SHA256 over "orderID|paymentID",
// the scheme the checkout widget signs with.
func (s *paymentService) verifySignature(orderID, paymentID, signature string) bool {
	if s.cfg.KeySecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
