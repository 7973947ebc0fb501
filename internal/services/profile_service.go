package services

import (
	"crypto/rand"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/sandy-the-earth/nfc-backend/internal/auth"
	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/logger"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/repositories"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

const activationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const activationCodeLength = 8

type ProfileService interface {
	// CreatePending mints an empty profile holding only a fresh activation
	// code. Admin operation: cards are provisioned before they are sold.
	CreatePending() (*models.Profile, error)

	// Activate claims a pending profile with owner credentials. The
	// pending_activation -> active transition is one-way; a used code is
	// rejected.
	Activate(req dto.ActivateRequest) (*models.Profile, error)

	GetByID(id string) (*models.Profile, error)

	// GetPublic resolves a profile by activation code or custom slug for a
	// public surface: pending profiles are not found, deactivated profiles
	// are forbidden.
	GetPublic(key string) (*models.Profile, error)

	Update(id string, req dto.UpdateProfileRequest) (*models.Profile, error)
	SetCustomSlug(id string, slug string) error
	SetAvatarURL(id string, url string) error
	SetBannerURL(id string, url string) error

	List(q dto.ListProfilesQuery) ([]models.Profile, int64, error)
	SetStatus(id string, status models.ProfileStatus) error
	SetActive(id string, active bool) error
	Delete(id string) error
	ExportCSV(status string, search string) ([]byte, error)
}

type profileService struct {
	repo repositories.ProfileRepository
}

func NewProfileService(repo repositories.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) CreatePending() (*models.Profile, error) {
	// Retry on the unlikely code collision; uniqueness is enforced by the
	// index, not by a pre-check racing other writers.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateActivationCode()
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		profile := &models.Profile{
			ActivationCode: code,
			Status:         models.ProfileStatusPending,
			IsActive:       true,
			Theme:          "light",
		}
		err = s.repo.Create(profile)
		if err == nil {
			logger.Info("profile provisioned", "activation_code", code)
			return profile, nil
		}
		if !apperrors.Is(err, repositories.ErrActivationCodeTaken) {
			return nil, apperrors.InternalError(err)
		}
	}
	return nil, apperrors.InternalError(fmt.Errorf("could not allocate a unique activation code"))
}

func (s *profileService) Activate(req dto.ActivateRequest) (*models.Profile, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrInvalidInput("auth", err.Error())
	}

	profile, err := s.repo.FindByKey(strings.TrimSpace(req.ActivationCode))
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "auth", "Invalid activation code", 404)
		}
		return nil, apperrors.InternalError(err)
	}

	if profile.Status == models.ProfileStatusActive {
		return nil, apperrors.ErrInvalidStatus("auth", "This activation code has already been used")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile.OwnerEmail = strings.ToLower(strings.TrimSpace(req.Email))
	profile.OwnerPasswordHash = hash
	profile.Status = models.ProfileStatusActive

	if err := s.repo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("profile activated", "profile_id", profile.ID)
	return profile, nil
}

func (s *profileService) GetByID(id string) (*models.Profile, error) {
	profile, err := s.repo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *profileService) GetPublic(key string) (*models.Profile, error) {
	profile, err := s.repo.FindByKey(key)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if profile.Status != models.ProfileStatusActive {
		// Unclaimed cards look like missing cards from the outside.
		return nil, apperrors.ErrNotFound(repositories.ErrProfileNotFound)
	}
	if !profile.IsActive {
		return nil, apperrors.ErrProfileDeactivated
	}
	return profile, nil
}

func (s *profileService) Update(id string, req dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	applyString(&profile.Name, req.Name)
	applyString(&profile.Title, req.Title)
	applyString(&profile.Subtitle, req.Subtitle)
	applyString(&profile.Bio, req.Bio)
	applyString(&profile.Location, req.Location)
	applyString(&profile.Phone, req.Phone)
	applyString(&profile.Website, req.Website)
	applyString(&profile.Industry, req.Industry)
	applyString(&profile.CalendlyLink, req.CalendlyLink)
	applyString(&profile.Theme, req.Theme)

	if req.OwnerEmail != nil {
		profile.OwnerEmail = strings.ToLower(strings.TrimSpace(*req.OwnerEmail))
	}
	if req.Tags != nil {
		raw, err := json.Marshal(*req.Tags)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		profile.Tags = datatypes.JSON(raw)
	}
	if req.SocialLinks != nil {
		raw, err := json.Marshal(req.SocialLinks)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		profile.SocialLinks = datatypes.JSON(raw)
	}

	if err := s.repo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *profileService) SetCustomSlug(id string, slug string) error {
	err := s.repo.SetCustomSlug(id, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrProfileNotFound):
			return apperrors.ErrNotFound(err)
		case apperrors.Is(err, repositories.ErrSlugTaken):
			return apperrors.ErrAlreadyExists(err)
		default:
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *profileService) SetAvatarURL(id string, url string) error {
	profile, err := s.GetByID(id)
	if err != nil {
		return err
	}
	profile.AvatarURL = url
	if err := s.repo.Update(profile); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *profileService) SetBannerURL(id string, url string) error {
	profile, err := s.GetByID(id)
	if err != nil {
		return err
	}
	profile.BannerURL = url
	if err := s.repo.Update(profile); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *profileService) List(q dto.ListProfilesQuery) ([]models.Profile, int64, error) {
	profiles, total, err := s.repo.List(q)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return profiles, total, nil
}

func (s *profileService) SetStatus(id string, status models.ProfileStatus) error {
	if status != models.ProfileStatusActive && status != models.ProfileStatusPending {
		return apperrors.ErrInvalidInput("profile", "Invalid status")
	}
	if err := s.repo.SetStatus(id, status); err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *profileService) SetActive(id string, active bool) error {
	if err := s.repo.SetActive(id, active); err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *profileService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *profileService) ExportCSV(status string, search string) ([]byte, error) {
	profiles, err := s.repo.ListAll(status, search)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	header := []string{
		"activationCode", "customSlug", "status", "isActive", "ownerEmail",
		"name", "title", "subtitle", "tags", "location", "phone", "website",
		"instagram", "linkedin", "twitter", "createdAt",
	}
	if err := w.Write(header); err != nil {
		return nil, apperrors.InternalError(err)
	}

	for i := range profiles {
		p := &profiles[i]
		links := p.SocialLinkSet()
		slug := ""
		if p.CustomSlug != nil {
			slug = *p.CustomSlug
		}
		row := []string{
			p.ActivationCode, slug, string(p.Status), fmt.Sprintf("%t", p.IsActive), p.OwnerEmail,
			p.Name, p.Title, p.Subtitle, strings.Join(p.TagList(), ";"), p.Location, p.Phone, p.Website,
			links.Instagram, links.Linkedin, links.Twitter, p.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return []byte(buf.String()), nil
}

// generateActivationCode draws from crypto/rand; the alphabet avoids
// lowercase so codes can never collide with the custom slug namespace.
func generateActivationCode() (string, error) {
	buf := make([]byte, activationCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, activationCodeLength)
	for i, b := range buf {
		code[i] = activationCodeAlphabet[int(b)%len(activationCodeAlphabet)]
	}
	return string(code), nil
}
