package handlers

import (
	"github.com/sandy-the-earth/nfc-backend/internal/config"
	"github.com/sandy-the-earth/nfc-backend/internal/services"
	"github.com/sandy-the-earth/nfc-backend/internal/storage"
	"github.com/sandy-the-earth/nfc-backend/internal/validator"
)

// AppHandlers aggregates every HTTP handler in the application.
type AppHandlers struct {
	Auth    *AuthHandler
	Public  *PublicHandler
	Profile *ProfileHandler
	Plan    *PlanHandler
	Admin   *AdminHandler
	Files   *FilesHandler
}

// NewHandlers wires the handler layer on top of the service container.
func NewHandlers(svc *services.Services, files storage.Storage, cfg *config.Config) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		Auth:   NewAuthHandler(base, svc.Profile, svc.Auth),
		Public: NewPublicHandler(base, svc.Profile, svc.Subscription, svc.Projection, svc.Insights, svc.Contact),
		Profile: NewProfileHandler(base, svc.Profile, svc.Insights, files, UploadLimits{
			MaxSize:      cfg.Upload.MaxSize,
			AllowedTypes: cfg.Upload.AllowedTypes,
		}),
		Plan:  NewPlanHandler(base, svc.Catalog, svc.Subscription, svc.Payment),
		Admin: NewAdminHandler(base, svc.Profile, svc.Subscription, cfg.Admin.APIKey),
		Files: NewFilesHandler(files),
	}
}
