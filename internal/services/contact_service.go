package services

import (
	"time"

	"gorm.io/datatypes"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/email"
	"github.com/sandy-the-earth/nfc-backend/internal/insights"
	"github.com/sandy-the-earth/nfc-backend/internal/logger"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
	"github.com/sandy-the-earth/nfc-backend/internal/repositories"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

type ContactService interface {
	// Exchange records a visitor handing their details to a card owner,
	// consuming one unit of the owner's monthly quota. The calendar-month
	// reset, the quota check and the increment happen as a unit under the
	// profile row lock.
	Exchange(key string, req dto.ContactExchangeRequest) (*dto.ExchangeResult, error)
}

type contactService struct {
	repo   repositories.ProfileRepository
	subs   SubscriptionService
	mailer email.Provider
	now    func() time.Time
}

func NewContactService(repo repositories.ProfileRepository, subs SubscriptionService, mailer email.Provider) ContactService {
	return &contactService{
		repo:   repo,
		subs:   subs,
		mailer: mailer,
		now:    time.Now,
	}
}

func (s *contactService) Exchange(key string, req dto.ContactExchangeRequest) (*dto.ExchangeResult, error) {
	profile, err := s.repo.FindByKey(key)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if profile.Status != models.ProfileStatusActive {
		return nil, apperrors.ErrNotFound(repositories.ErrProfileNotFound)
	}
	if !profile.IsActive {
		return nil, apperrors.ErrProfileDeactivated
	}

	// The quota depends only on the tier, which cannot change inside the
	// critical section, so the state read happens before taking the lock.
	state := s.subs.StateFor(profile)
	quota := plans.Rules(plans.ParseTier(state.PlanOrDefault())).ContactQuota

	var (
		counter insights.ExchangeCounter
		allowed bool
	)
	err = s.repo.UpdateContactExchanges(profile.ID, func(locked *models.Profile) (datatypes.JSON, bool, error) {
		var reset bool
		counter, allowed, reset = insights.ApplyExchange(
			insights.DecodeCounter(locked.ContactExchanges), quota, s.now())

		// A reset that happened on this call is real state and must land
		// even though the exchange itself is refused, so the refusal is
		// signalled through the captured flag: an error here would roll the
		// reset back.
		if !allowed && !reset {
			return nil, false, nil
		}
		return insights.EncodeCounter(counter), true, nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !allowed {
		return nil, apperrors.ErrQuotaExceeded("contact", "Monthly contact exchange limit reached")
	}

	s.notifyOwner(profile, req)

	return &dto.ExchangeResult{
		Exchanges: counter.Count,
		Limit:     quota,
		Remaining: counter.Remaining(quota),
	}, nil
}

// notifyOwner emails the card owner about the new contact. Fire and forget:
// the exchange is already committed and a mail failure must not undo it.
func (s *contactService) notifyOwner(profile *models.Profile, req dto.ContactExchangeRequest) {
	if s.mailer == nil || profile.OwnerEmail == "" {
		return
	}

	msg := email.BuildContactExchange(profile.OwnerEmail, email.ContactExchangeData{
		OwnerName:    profile.Name,
		VisitorName:  req.Name,
		VisitorEmail: req.Email,
		Message:      req.Message,
		Place:        req.Place,
		Date:         req.Date,
		Event:        req.Event,
	})

	go func() {
		if err := s.mailer.Send(msg); err != nil {
			logger.WithError(err).Warn("contact exchange notification failed",
				"profile_id", profile.ID)
		}
	}()
}
