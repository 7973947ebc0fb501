package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Profile is an NFC-card-linked digital business card. The activity history
// (views, link taps, contact exchanges) is embedded as JSON columns the same
// way the card reader writes it, and is decoded through the adapters in
// internal/insights.
type Profile struct {
	BaseModel
	ActivationCode string        `gorm:"uniqueIndex;not null" json:"activationCode"`
	CustomSlug     *string       `gorm:"uniqueIndex" json:"customSlug,omitempty"`
	Status         ProfileStatus `gorm:"type:varchar(32);default:'pending_activation';index" json:"status"`

	// IsActive is the soft-delete flag. Independent of Status: a claimed
	// profile can be deactivated and reactivated without losing data.
	IsActive bool `gorm:"default:true" json:"isActive"`

	OwnerEmail        string `gorm:"index" json:"ownerEmail,omitempty"`
	OwnerPasswordHash string `json:"-"`

	// Visuals
	BannerURL string `json:"bannerUrl"`
	AvatarURL string `json:"avatarUrl"`
	Theme     string `gorm:"default:'light'" json:"theme"`

	// Identity / content
	Name         string         `json:"name"`
	Title        string         `json:"title"`
	Subtitle     string         `json:"subtitle"`
	Bio          string         `json:"bio"`
	Location     string         `json:"location"`
	Phone        string         `json:"phone"`
	Website      string         `json:"website"`
	Industry     string         `json:"industry"`
	CalendlyLink string         `json:"calendlyLink"`
	Tags         datatypes.JSON `gorm:"type:jsonb" json:"tags"`        // ["founder","fintech"]
	SocialLinks  datatypes.JSON `gorm:"type:jsonb" json:"socialLinks"` // {"instagram":"","linkedin":"","twitter":""}

	ExclusiveBadge *string `json:"exclusiveBadge,omitempty"`

	// Analytics
	InsightsEnabled  bool           `gorm:"default:true" json:"insightsEnabled"`
	Views            datatypes.JSON `gorm:"type:jsonb" json:"-"` // append-only []ViewEvent
	LinkTaps         datatypes.JSON `gorm:"type:jsonb" json:"-"` // ordered link -> count, see insights.LinkTapList
	ContactExchanges datatypes.JSON `gorm:"type:jsonb" json:"-"` // {"count":n,"lastReset":ts}
	ContactSaves     int            `gorm:"default:0" json:"-"`
	ContactDownloads int            `gorm:"default:0" json:"-"`
	LastViewedAt     *time.Time     `json:"-"`

	Subscription *Subscription `gorm:"foreignKey:ProfileID" json:"subscription,omitempty"`
}

// ViewEvent is one public fetch of the profile. Appended in request order,
// which is also chronological order.
type ViewEvent struct {
	Date      time.Time `json:"date"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	Industry  string    `json:"industry,omitempty"`
	Company   string    `json:"company,omitempty"`
	Location  string    `json:"location,omitempty"`
}

// SocialLinks is the decoded form of the socialLinks column.
type SocialLinks struct {
	Instagram string `json:"instagram"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
}

// Slug returns the public identifier: the custom slug when one is set,
// otherwise the activation code. Every surface exposing a "slug" goes
// through here.
func (p *Profile) Slug() string {
	if p.CustomSlug != nil && *p.CustomSlug != "" {
		return *p.CustomSlug
	}
	return p.ActivationCode
}

// TagList decodes the tags column. Missing or invalid data decodes to an
// empty slice, never nil, so projections always render a JSON array.
func (p *Profile) TagList() []string {
	tags := []string{}
	if len(p.Tags) == 0 {
		return tags
	}
	if err := json.Unmarshal(p.Tags, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// SocialLinkSet decodes the socialLinks column into its complete shape.
func (p *Profile) SocialLinkSet() SocialLinks {
	var links SocialLinks
	if len(p.SocialLinks) == 0 {
		return links
	}
	_ = json.Unmarshal(p.SocialLinks, &links)
	return links
}
