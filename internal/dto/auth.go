package dto

// ActivateRequest claims a pending profile with owner credentials.
type ActivateRequest struct {
	ActivationCode string `json:"activationCode" binding:"required" validate:"min=4,max=32"`
	Email          string `json:"email" binding:"required" validate:"email"`
	Password       string `json:"password" binding:"required" validate:"min=8,max=72"`
}

// LoginRequest authenticates a profile owner.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token     string `json:"token"`
	ProfileID string `json:"profileId"`
}
