package services

import (
	"gorm.io/gorm"

	"github.com/sandy-the-earth/nfc-backend/internal/config"
	"github.com/sandy-the-earth/nfc-backend/internal/email"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
	"github.com/sandy-the-earth/nfc-backend/internal/repositories"
)

// Services is the wired service layer, built once at startup and handed to
// the handlers.
type Services struct {
	Profile      ProfileService
	Subscription SubscriptionService
	Projection   ProjectionService
	Insights     InsightsService
	Contact      ContactService
	Payment      PaymentService
	Auth         AuthService

	Catalog plans.Catalog
}

// NewServices builds every repository and service against one DB handle.
func NewServices(db *gorm.DB, cfg *config.Config, mailer email.Provider) *Services {
	profileRepo := repositories.NewProfileRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)

	catalog := plans.DefaultCatalog()
	subs := NewSubscriptionService(subRepo, catalog)

	return &Services{
		Profile:      NewProfileService(profileRepo),
		Subscription: subs,
		Projection:   NewProjectionService(),
		Insights:     NewInsightsService(profileRepo, subs),
		Contact:      NewContactService(profileRepo, subs, mailer),
		Payment: NewPaymentService(subRepo, catalog, PaymentConfig{
			KeyID:     cfg.Payment.KeyID,
			KeySecret: cfg.Payment.KeySecret,
			Currency:  cfg.Payment.Currency,
		}),
		Auth:    NewAuthService(profileRepo),
		Catalog: catalog,
	}
}
