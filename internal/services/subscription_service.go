package services

import (
	"time"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
	"github.com/sandy-the-earth/nfc-backend/internal/repositories"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// NormalizeSubscription converts a stored subscription record, whatever its
// vintage, into the canonical SubscriptionState. A record is interpretable
// only when plan, cycle and activation date are all present and well-formed;
// anything less degrades to the all-null state rather than erroring; this is
// the primary defense against partially written rows. Pure, no side effects.
func NormalizeSubscription(sub *models.Subscription) dto.SubscriptionState {
	if sub == nil {
		return dto.NoSubscription()
	}
	if !plans.ValidTier(sub.Plan) || !plans.ValidCycle(sub.BillingCycle) {
		return dto.NoSubscription()
	}
	if sub.ActivatedAt == nil || sub.ActivatedAt.IsZero() {
		return dto.NoSubscription()
	}

	plan := plans.ParseTier(sub.Plan).String()
	cycle := string(plans.Cycle(sub.BillingCycle))
	activatedAt := *sub.ActivatedAt
	expiresAt := addMonthsClamped(activatedAt, plans.Cycle(cycle).Months())

	return dto.SubscriptionState{
		Plan:        &plan,
		Cycle:       &cycle,
		ActivatedAt: &activatedAt,
		ExpiresAt:   &expiresAt,
	}
}

// addMonthsClamped adds calendar months preserving the day-of-month where
// the target month permits, clamping to its last day otherwise (Jan 31 + 1
// month = Feb 28/29, not Mar 2). time.AddDate would overflow instead.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	target := time.Date(year, month+time.Month(months), 1, hour, min, sec, t.Nanosecond(), t.Location())
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

type SubscriptionService interface {
	// StateFor derives the canonical subscription state for a profile,
	// expiring a stale record lazily on the way.
	StateFor(profile *models.Profile) dto.SubscriptionState
	GetForProfile(profileID string) (*models.Subscription, error)
	Assign(profileID string, req dto.AssignSubscriptionRequest) (*models.Subscription, error)
	ListAll() ([]models.Subscription, error)
	StatsByPlan() ([]dto.PlanStats, error)
	ExpireOverdue(now time.Time) (int64, error)
}

type subscriptionService struct {
	repo    repositories.SubscriptionRepository
	catalog plans.Catalog
	now     func() time.Time
}

func NewSubscriptionService(repo repositories.SubscriptionRepository, catalog plans.Catalog) SubscriptionService {
	return &subscriptionService{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

func (s *subscriptionService) StateFor(profile *models.Profile) dto.SubscriptionState {
	if profile == nil || profile.Subscription == nil {
		return dto.NoSubscription()
	}

	sub := profile.Subscription
	if sub.Status != models.SubscriptionStatusActive {
		return dto.NoSubscription()
	}

	state := NormalizeSubscription(sub)
	if state.ExpiresAt != nil && s.now().After(*state.ExpiresAt) {
		// Lazy expiry: flip the stored record so the next read is cheap.
		// Best effort; the expiry worker sweeps anything missed here.
		_ = s.repo.UpdateStatus(sub.ProfileID, models.SubscriptionStatusExpired)
		return dto.NoSubscription()
	}
	return state
}

func (s *subscriptionService) GetForProfile(profileID string) (*models.Subscription, error) {
	sub, err := s.repo.FindByProfileID(profileID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

func (s *subscriptionService) Assign(profileID string, req dto.AssignSubscriptionRequest) (*models.Subscription, error) {
	if !plans.ValidTier(req.Plan) {
		return nil, apperrors.ErrInvalidInput("subscription", "Unknown plan: "+req.Plan)
	}
	if !plans.ValidCycle(req.BillingCycle) {
		return nil, apperrors.ErrInvalidInput("subscription", "Unknown billing cycle: "+req.BillingCycle)
	}

	tier := plans.ParseTier(req.Plan)
	cycle := plans.Cycle(req.BillingCycle)

	status := models.SubscriptionStatus(req.Status)
	if status == "" {
		status = models.SubscriptionStatusActive
	}

	amount := req.Amount
	if amount == 0 {
		if price, ok := s.catalog.Price(tier, cycle); ok {
			amount = float64(price)
		}
	}

	now := s.now()
	endDate := addMonthsClamped(now, cycle.Months())
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return nil, apperrors.ErrInvalidInput("subscription", "endDate must be RFC3339")
		}
		endDate = parsed
	}

	sub := &models.Subscription{
		ProfileID:    profileID,
		Plan:         tier.String(),
		BillingCycle: string(cycle),
		Status:       status,
		ActivatedAt:  &now,
		EndDate:      &endDate,
		PaymentID:    "admin_manual",
		Amount:       amount,
		Currency:     "INR",
	}

	if err := s.repo.Upsert(sub); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

func (s *subscriptionService) ListAll() ([]models.Subscription, error) {
	subs, err := s.repo.ListAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

func (s *subscriptionService) StatsByPlan() ([]dto.PlanStats, error) {
	stats, err := s.repo.StatsByPlan()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *subscriptionService) ExpireOverdue(now time.Time) (int64, error) {
	return s.repo.MarkExpired(now)
}
