package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/sandy-the-earth/nfc-backend/internal/insights"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
	"github.com/sandy-the-earth/nfc-backend/internal/repositories"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

type InsightsService interface {
	// GetInsights aggregates a profile's activity history and filters the
	// result down to what the owner's tier may see. Read-only: repeated
	// calls with unchanged data return identical payloads.
	GetInsights(profileID string) (insights.Payload, error)

	// TrackView appends one view event and advances the last-viewed
	// watermark. Called on every public fetch unless preview mode asked
	// not to.
	TrackView(profileID string, event models.ViewEvent) error

	// RecordLinkTap bumps the tap count for one link on a public profile.
	RecordLinkTap(key string, linkID string) error

	RecordContactSave(key string) error
	RecordContactDownload(key string) error
}

type insightsService struct {
	repo repositories.ProfileRepository
	subs SubscriptionService
	now  func() time.Time
}

func NewInsightsService(repo repositories.ProfileRepository, subs SubscriptionService) InsightsService {
	return &insightsService{
		repo: repo,
		subs: subs,
		now:  time.Now,
	}
}

// activityOf decodes a profile's stored JSON columns into the unified
// aggregation input. Absent columns decode to zero values, never errors.
func activityOf(p *models.Profile) insights.Activity {
	return insights.Activity{
		Views:            insights.DecodeViewEvents(p.Views),
		LinkTaps:         insights.DecodeLinkTaps(p.LinkTaps),
		Exchanges:        insights.DecodeCounter(p.ContactExchanges),
		ContactSaves:     p.ContactSaves,
		ContactDownloads: p.ContactDownloads,
		LastViewedAt:     p.LastViewedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (s *insightsService) GetInsights(profileID string) (insights.Payload, error) {
	profile, err := s.repo.FindByID(profileID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !profile.InsightsEnabled {
		return nil, apperrors.ErrInsightsDisabled
	}

	state := s.subs.StateFor(profile)
	summary := insights.Aggregate(activityOf(profile), state)
	return insights.FilterForTier(summary, plans.ParseTier(state.PlanOrDefault())), nil
}

func (s *insightsService) TrackView(profileID string, event models.ViewEvent) error {
	if event.Date.IsZero() {
		event.Date = s.now()
	}

	// Append under the row lock so two concurrent views cannot clobber each
	// other's read-modify-write of the JSON column.
	err := s.repo.WithLock(profileID, func(tx *gorm.DB, profile *models.Profile) error {
		return tx.Model(profile).Updates(map[string]any{
			"views":          insights.AppendViewEvent(profile.Views, event),
			"last_viewed_at": event.Date,
		}).Error
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *insightsService) RecordLinkTap(key string, linkID string) error {
	if linkID == "" {
		return apperrors.ErrInvalidInput("insights", "linkId is required")
	}

	profile, err := s.resolvePublic(key)
	if err != nil {
		return err
	}

	err = s.repo.WithLock(profile.ID, func(tx *gorm.DB, locked *models.Profile) error {
		taps := insights.DecodeLinkTaps(locked.LinkTaps).Increment(linkID)
		return tx.Model(locked).Update("link_taps", insights.EncodeLinkTaps(taps)).Error
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *insightsService) RecordContactSave(key string) error {
	return s.bumpCounter(key, "contact_saves")
}

func (s *insightsService) RecordContactDownload(key string) error {
	return s.bumpCounter(key, "contact_downloads")
}

func (s *insightsService) bumpCounter(key string, column string) error {
	profile, err := s.resolvePublic(key)
	if err != nil {
		return err
	}

	err = s.repo.WithLock(profile.ID, func(tx *gorm.DB, locked *models.Profile) error {
		return tx.Model(locked).Update(column, gorm.Expr(column+" + 1")).Error
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// resolvePublic applies the public-surface gating: pending profiles are not
// found, deactivated profiles are forbidden.
func (s *insightsService) resolvePublic(key string) (*models.Profile, error) {
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
	return profile, nil
}
