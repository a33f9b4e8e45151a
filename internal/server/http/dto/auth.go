package dto

import "time"

// UserResponse is the public view of an account.
type UserResponse struct {
	ID            int64     `json:"id"`
	DiscordID     string    `json:"discordId"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	Avatar        string    `json:"avatar,omitempty"`
	Email         string    `json:"email,omitempty"`
	Credits       float64   `json:"credits"`
	ReferralCode  string    `json:"referralCode"`
	ReferredBy    *int64    `json:"referredBy,omitempty"`
	Role          string    `json:"userType"`
	LastLogin     time.Time `json:"lastLogin"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
