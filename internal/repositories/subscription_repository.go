package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	FindByProfileID(profileID string) (*models.Subscription, error)
	Upsert(sub *models.Subscription) error
	UpdateStatus(profileID string, status models.SubscriptionStatus) error
	ListAll() ([]models.Subscription, error)
	StatsByPlan() ([]dto.PlanStats, error)
	// MarkExpired flips every active subscription whose end date has passed.
	// Called by the expiry worker; the subscription service also expires
	// lazily on read.
	MarkExpired(now time.Time) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) FindByProfileID(profileID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.First(&sub, "profile_id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) Upsert(sub *models.Subscription) error {
	var existing models.Subscription
	err := r.db.First(&existing, "profile_id = ?", sub.ProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(sub).Error
	}
	if err != nil {
		return err
	}

	sub.ID = existing.ID
	sub.CreatedAt = existing.CreatedAt
	return r.db.Save(sub).Error
}

func (r *subscriptionRepository) UpdateStatus(profileID string, status models.SubscriptionStatus) error {
	result := r.db.Model(&models.Subscription{}).
		Where("profile_id = ?", profileID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *subscriptionRepository) ListAll() ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepository) StatsByPlan() ([]dto.PlanStats, error) {
	var stats []dto.PlanStats
	err := r.db.Model(&models.Subscription{}).
		Select("plan, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_revenue").
		Group("plan").
		Order("plan").
		Scan(&stats).Error
	return stats, err
}

func (r *subscriptionRepository) MarkExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Subscription{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", models.SubscriptionStatusActive, now).
		Update("status", models.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}
