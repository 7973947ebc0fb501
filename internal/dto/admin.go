package dto

// ListProfilesQuery filters the admin profile listing.
type ListProfilesQuery struct {
	Status string `form:"status" validate:"omitempty,oneof=active pending_activation"`
	Search string `form:"search" validate:"omitempty,max=120"`
	Page   int    `form:"page" validate:"omitempty,gte=1"`
	Limit  int    `form:"limit" validate:"omitempty,gte=1,lte=200"`
}

// ListMeta is the pagination envelope.
type ListMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// SetStatusRequest flips the activation status of a profile (admin only).
type SetStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"oneof=active pending_activation"`
}

// PlanStats is one row of the admin subscription breakdown.
type PlanStats struct {
	Plan         string  `json:"plan"`
	Count        int64   `json:"count"`
	TotalRevenue float64 `json:"totalRevenue"`
}
