package services

import (
	"time"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// fieldOrder lists every gateable content field once, in a stable order.
// Elite passes all of them through; lower tiers pass the subset their rule
// allows. Adding a profile field means adding exactly one accessor here.
var fieldOrder = []string{
	"name", "title", "subtitle", "tags", "phone", "socialLinks",
	"bio", "location", "industry", "website", "calendlyLink",
	"exclusiveBadge",
}

// fieldValue resolves one content field with an explicit empty value when
// the source record has nothing, so consumers never need null checks for a
// field their tier is entitled to.
func fieldValue(p *models.Profile, name string) any {
	switch name {
	case "name":
		return p.Name
	case "title":
		return p.Title
	case "subtitle":
		return p.Subtitle
	case "tags":
		return p.TagList()
	case "phone":
		return p.Phone
	case "socialLinks":
		links := p.SocialLinkSet()
		return dto.SocialLinks{
			Instagram: links.Instagram,
			Linkedin:  links.Linkedin,
			Twitter:   links.Twitter,
		}
	case "bio":
		return p.Bio
	case "location":
		return p.Location
	case "industry":
		return p.Industry
	case "website":
		return p.Website
	case "calendlyLink":
		return p.CalendlyLink
	case "exclusiveBadge":
		if p.ExclusiveBadge == nil {
			return ""
		}
		return *p.ExclusiveBadge
	}
	return nil
}

// ProjectionService builds the plan-filtered public view of a profile.
type ProjectionService interface {
	// Project assumes the caller already established the profile is active;
	// the deactivated check is a boundary concern handled before this call.
	Project(profile *models.Profile, state dto.SubscriptionState) (dto.PublicProfile, error)
}

type projectionService struct{}

func NewProjectionService() ProjectionService {
	return &projectionService{}
}

func (s *projectionService) Project(profile *models.Profile, state dto.SubscriptionState) (dto.PublicProfile, error) {
	if profile == nil {
		return nil, apperrors.ErrNotFound(nil)
	}

	tier := plans.ParseTier(state.PlanOrDefault())
	rule := plans.Rules(tier)

	out := dto.PublicProfile{}

	// Common fields first: every tier gets these.
	out["slug"] = profile.Slug()
	out["bannerUrl"] = profile.BannerURL
	out["avatarUrl"] = profile.AvatarURL
	out["theme"] = themeOrDefault(profile.Theme)
	out["createdAt"] = profile.CreatedAt.UTC().Format(time.RFC3339)
	out["email"] = profile.OwnerEmail

	for _, name := range fieldOrder {
		if rule.AllowsField(name) {
			out[name] = fieldValue(profile, name)
		}
	}

	// The subscription block is always the normalized form. The raw stored
	// record never leaks through, Elite included.
	out["subscription"] = state

	return out, nil
}

func themeOrDefault(theme string) string {
	if theme == "" {
		return "light"
	}
	return theme
}
