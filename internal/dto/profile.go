package dto

// SocialLinks is the public shape of the social link block. Always complete:
// missing links render as empty strings, never as absent keys.
type SocialLinks struct {
	Instagram string `json:"instagram"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
}

// PublicProfile is the plan-filtered projection of a profile. It is a keyed
// map rather than a fixed struct because the *set of keys* is the contract:
// a field the tier cannot see is omitted entirely, while an allowed-but-empty
// field is present with an explicit empty value.
type PublicProfile map[string]any

// UpdateProfileRequest carries the owner-editable content fields. Pointers
// distinguish "not sent" from "clear this field".
type UpdateProfileRequest struct {
	Name         *string      `json:"name" validate:"omitempty,max=120"`
	Title        *string      `json:"title" validate:"omitempty,max=120"`
	Subtitle     *string      `json:"subtitle" validate:"omitempty,max=200"`
	Bio          *string      `json:"bio" validate:"omitempty,max=2000"`
	Location     *string      `json:"location" validate:"omitempty,max=120"`
	Phone        *string      `json:"phone" validate:"omitempty,max=32"`
	Website      *string      `json:"website" validate:"omitempty,max=300"`
	Industry     *string      `json:"industry" validate:"omitempty,max=120"`
	CalendlyLink *string      `json:"calendlyLink" validate:"omitempty,max=300"`
	Theme        *string      `json:"theme" validate:"omitempty,oneof=light dark classic chrome"`
	Tags         *[]string    `json:"tags" validate:"omitempty,max=20,dive,max=40"`
	SocialLinks  *SocialLinks `json:"socialLinks"`
	OwnerEmail   *string      `json:"ownerEmail" validate:"omitempty,email"`
}

// SetSlugRequest sets or changes the custom slug.
type SetSlugRequest struct {
	Slug string `json:"slug" binding:"required" validate:"slug"`
}

// ExchangeResult reports quota consumption after a successful exchange.
// Limit and Remaining are -1 for unlimited tiers and serialize as "Unlimited".
type ExchangeResult struct {
	Exchanges int `json:"contactExchanges"`
	Limit     any `json:"contactExchangeLimit"`
	Remaining any `json:"contactExchangeRemaining"`
}

// ContactExchangeRequest is a visitor handing their details to the card owner.
type ContactExchangeRequest struct {
	Name    string `json:"name" binding:"required" validate:"max=120"`
	Email   string `json:"email" binding:"required" validate:"email"`
	Message string `json:"message" validate:"omitempty,max=2000"`
	Place   string `json:"place" validate:"omitempty,max=200"`
	Date    string `json:"date" validate:"omitempty,max=40"`
	Event   string `json:"event" validate:"omitempty,max=200"`
}
