package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
	"github.com/sandy-the-earth/nfc-backend/internal/repositories"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// fakeProfileRepo serves a single profile by ID or key. The only write path
// it implements is the contact-exchange counter; everything else is not
// exercised by these tests.
type fakeProfileRepo struct {
	profile *models.Profile
}

func (f *fakeProfileRepo) Create(*models.Profile) error { return errors.New("not implemented") }

func (f *fakeProfileRepo) FindByID(id string) (*models.Profile, error) {
	if f.profile != nil && f.profile.ID == id {
		return f.profile, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) FindByKey(key string) (*models.Profile, error) {
	if f.profile != nil && (f.profile.ActivationCode == key || f.profile.Slug() == key) {
		return f.profile, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) FindByOwnerEmail(string) (*models.Profile, error) {
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) List(dto.ListProfilesQuery) ([]models.Profile, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeProfileRepo) ListAll(string, string) ([]models.Profile, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProfileRepo) Update(*models.Profile) error { return errors.New("not implemented") }

func (f *fakeProfileRepo) SetCustomSlug(string, string) error { return errors.New("not implemented") }

func (f *fakeProfileRepo) SetStatus(string, models.ProfileStatus) error {
	return errors.New("not implemented")
}

func (f *fakeProfileRepo) SetActive(string, bool) error { return errors.New("not implemented") }

func (f *fakeProfileRepo) Delete(string) error { return errors.New("not implemented") }
func (f *fakeProfileRepo) WithLock(string, func(*gorm.DB, *models.Profile) error) error {
	return errors.New("not implemented")
}

func (f *fakeProfileRepo) UpdateContactExchanges(id string, decide func(*models.Profile) (datatypes.JSON, bool, error)) error {
	if f.profile == nil || f.profile.ID != id {
		return repositories.ErrProfileNotFound
	}
	value, write, err := decide(f.profile)
	if err != nil {
		return err
	}
	if write {
		f.profile.ContactExchanges = value
	}
	return nil
}

func insightsFixture(plan string) (*insightsService, *models.Profile) {
	activated := ts(2026, time.March, 1)
	profile := &models.Profile{
		ActivationCode:  "CODE1",
		Status:          models.ProfileStatusActive,
		IsActive:        true,
		InsightsEnabled: true,
		Views: datatypes.JSON(`[
			{"date":"2026-03-01T10:00:00Z","ip":"1.1.1.1","userAgent":"chrome","industry":"fintech","location":"Mumbai"},
			{"date":"2026-03-01T11:00:00Z","ip":"1.1.1.1","userAgent":"chrome"},
			{"date":"2026-03-02T09:00:00Z","ip":"2.2.2.2","userAgent":"safari","industry":"fintech"}
		]`),
		LinkTaps:         datatypes.JSON(`{"github":4,"website":4}`),
		ContactExchanges: datatypes.JSON(`{"count":3,"lastReset":"2026-03-01T00:00:00Z"}`),
		ContactSaves:     2,
	}
	profile.ID = "pid-1"
	if plan != "" {
		profile.Subscription = &models.Subscription{
			ProfileID:    profile.ID,
			Plan:         plan,
			BillingCycle: "monthly",
			Status:       models.SubscriptionStatusActive,
			ActivatedAt:  &activated,
		}
	}

	repo := &fakeProfileRepo{profile: profile}
	subs := &subscriptionService{now: func() time.Time { return ts(2026, time.March, 10) }}
	svc := &insightsService{repo: repo, subs: subs, now: func() time.Time { return ts(2026, time.March, 10) }}
	return svc, profile
}

func TestGetInsightsNovicePayload(t *testing.T) {
	svc, _ := insightsFixture("novice")

	payload, err := svc.GetInsights("pid-1")
	require.NoError(t, err)

	assert.Equal(t, 3, payload["totalViews"])
	assert.Equal(t, 2, payload["uniqueVisitors"])
	assert.Equal(t, 3, payload["contactExchanges"])
	assert.Equal(t, plans.Allowance(20), payload["contactExchangeLimit"])
	assert.Equal(t, plans.Allowance(17), payload["contactExchangeRemaining"])
	assert.NotContains(t, payload, "viewsByIndustry")
	assert.NotContains(t, payload, "topLink")
}

func TestGetInsightsElitePayload(t *testing.T) {
	svc, _ := insightsFixture("elite")

	payload, err := svc.GetInsights("pid-1")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"fintech": 2}, payload["viewsByIndustry"])
	assert.Equal(t, map[string]int{"Mumbai": 1}, payload["viewsByLocation"])
	assert.Equal(t, int64(8), payload["totalLinkTaps"])
	// github and website tie at 4; the earlier document key wins.
	assert.Equal(t, "github", payload["topLink"])
	assert.Equal(t, plans.Unlimited, payload["contactExchangeRemaining"])
}

func TestGetInsightsNoSubscriptionDefaultsToNovice(t *testing.T) {
	svc, _ := insightsFixture("")

	payload, err := svc.GetInsights("pid-1")
	require.NoError(t, err)

	assert.NotContains(t, payload, "viewsByIndustry")
	assert.Equal(t, dto.NoSubscription(), payload["subscription"])
}

func TestGetInsightsDisabled(t *testing.T) {
	svc, profile := insightsFixture("elite")
	profile.InsightsEnabled = false

	_, err := svc.GetInsights("pid-1")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrInsightsDisabled.Code, appErr.Code)
}

func TestGetInsightsUnknownProfile(t *testing.T) {
	svc, _ := insightsFixture("elite")

	_, err := svc.GetInsights("missing")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestResolvePublicGating(t *testing.T) {
	svc, profile := insightsFixture("novice")

	// Pending profiles do not exist publicly.
	profile.Status = models.ProfileStatusPending
	_, err := svc.resolvePublic("CODE1")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	// Deactivated profiles are forbidden, not hidden.
	profile.Status = models.ProfileStatusActive
	profile.IsActive = false
	_, err = svc.resolvePublic("CODE1")
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
