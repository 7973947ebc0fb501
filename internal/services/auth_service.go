package services

import (
	"strings"

	"github.com/sandy-the-earth/nfc-backend/internal/auth"
	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/logger"
	"github.com/sandy-the-earth/nfc-backend/internal/repositories"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

type AuthService interface {
	// Login authenticates a profile owner and issues a session token.
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	repo repositories.ProfileRepository
}

func NewAuthService(repo repositories.ProfileRepository) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	profile, err := s.repo.FindByOwnerEmail(email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			// Same message as a bad password so emails cannot be probed.
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, profile.OwnerPasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}
	if !profile.IsActive {
		return nil, apperrors.ErrProfileDeactivated
	}

	token, err := auth.GenerateToken(profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("owner logged in", "profile_id", profile.ID)
	return &dto.LoginResponse{
		Token:     token,
		ProfileID: profile.ID,
	}, nil
}
