package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrSlugTaken           = errors.New("custom slug already taken")
	ErrActivationCodeTaken = errors.New("activation code already taken")
)

type ProfileRepository interface {
	Create(profile *models.Profile) error
	FindByID(id string) (*models.Profile, error)
	// FindByKey resolves either lookup key: activation code or custom slug.
	// Uniqueness of both columns guarantees at most one match.
	FindByKey(key string) (*models.Profile, error)
	FindByOwnerEmail(email string) (*models.Profile, error)
	List(q dto.ListProfilesQuery) ([]models.Profile, int64, error)
	ListAll(status string, search string) ([]models.Profile, error)

	Update(profile *models.Profile) error
	SetCustomSlug(id string, slug string) error
	SetStatus(id string, status models.ProfileStatus) error
	SetActive(id string, active bool) error
	Delete(id string) error

	// WithLock runs fn against the profile row held under FOR UPDATE inside
	// a transaction. This is the only safe way to do the exchange counter's
	// reset-then-increment: two concurrent exchanges must not both observe
	// the stale count.
	WithLock(id string, fn func(tx *gorm.DB, profile *models.Profile) error) error

	// UpdateContactExchanges applies decide to the locked profile row and
	// persists the counter column it returns when write is true. Returning
	// an error from decide rolls the transaction back, so a refused exchange
	// that still needs its calendar reset persisted must report the refusal
	// through its result rather than an error.
	UpdateContactExchanges(id string, decide func(profile *models.Profile) (value datatypes.JSON, write bool, err error)) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *models.Profile) error {
	err := r.db.Create(profile).Error
	if err != nil && isUniqueViolation(err) {
		return ErrActivationCodeTaken
	}
	return err
}

func (r *profileRepository) FindByID(id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("Subscription").First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByKey(key string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("Subscription").
		Where("activation_code = ? OR custom_slug = ?", key, key).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByOwnerEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("Subscription").
		Where("owner_email = ?", email).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(q dto.ListProfilesQuery) ([]models.Profile, int64, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 50
	}

	query := r.buildFilter(q.Status, q.Search)

	var total int64
	if err := query.Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.Profile
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&profiles).Error
	return profiles, total, err
}

func (r *profileRepository) ListAll(status string, search string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.buildFilter(status, search).Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) buildFilter(status string, search string) *gorm.DB {
	query := r.db.Preload("Subscription")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"activation_code ILIKE ? OR owner_email ILIKE ? OR name ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	return query
}

func (r *profileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

func (r *profileRepository) SetCustomSlug(id string, slug string) error {
	result := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("custom_slug", slug)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrSlugTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SetStatus(id string, status models.ProfileStatus) error {
	result := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SetActive(id string, active bool) error {
	result := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) WithLock(id string, fn func(tx *gorm.DB, profile *models.Profile) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&profile, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		if err != nil {
			return err
		}

		profile.UpdatedAt = time.Now()
		return fn(tx, &profile)
	})
}

func (r *profileRepository) UpdateContactExchanges(id string, decide func(profile *models.Profile) (datatypes.JSON, bool, error)) error {
	return r.WithLock(id, func(tx *gorm.DB, profile *models.Profile) error {
		value, write, err := decide(profile)
		if err != nil || !write {
			return err
		}
		return tx.Model(profile).Update("contact_exchanges", value).Error
	})
}

// isUniqueViolation matches the postgres duplicate-key error without pulling
// the driver error types through the repository surface.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(fmt.Sprintf("%v", err), "unique constraint")
}
