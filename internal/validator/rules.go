package validator

import (
	"log"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/sandy-the-earth/nfc-backend/internal/plans"
)

// slugPattern: lowercase alphanumerics and inner hyphens, 3-32 chars. Slugs
// share a lookup namespace with activation codes, so the charset is kept
// strictly narrower than the code alphabet (codes are uppercase).
var slugPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{1,30})[a-z0-9]$`)

// registerCustomRules installs the card-platform validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Startup-time failure: the application must not run with a
			// missing rule.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'slug': custom public slug format
	mustRegister("slug", validateSlug)

	// 'plan': one of the closed tier set
	mustRegister("plan", validatePlan)

	// 'cycle': known billing cycle
	mustRegister("cycle", validateCycle)
}

func validateSlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	return slugPattern.MatchString(value)
}

func validatePlan(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return plans.ValidTier(value)
}

func validateCycle(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return plans.ValidCycle(value)
}
