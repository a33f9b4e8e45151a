package dto

import "time"

// CreditEntryResponse is one ledger movement.
type CreditEntryResponse struct {
	ID        int64     `json:"id"`
	Delta     float64   `json:"delta"`
	Balance   float64   `json:"balance"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RedemptionResponse describes a redemption request.
type RedemptionResponse struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	RewardID     int64      `json:"rewardId"`
	RewardName   string     `json:"rewardName"`
	CreditCost   float64    `json:"creditCost"`
	Status       string     `json:"status"`
	AdminRemarks string     `json:"adminRemarks,omitempty"`
	ProcessedBy  *int64     `json:"processedBy,omitempty"`
	RequestedAt  time.Time  `json:"redeemedAt"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
}

// RedeemResponse is returned after a successful submission.
type RedeemResponse struct {
	Message      string  `json:"message"`
	RedemptionID int64   `json:"redemptionId"`
	Credits      float64 `json:"newCredits"`
}

// ProcessRedemptionRequest carries an admin decision.
type ProcessRedemptionRequest struct {
	Status       string `json:"status"`
	AdminRemarks string `json:"adminRemarks"`
}

// RoleRequest changes a user's role.
type RoleRequest struct {
	Role string `json:"newType"`
}

// CreditsRequest adjusts a user's balance.
type CreditsRequest struct {
	Delta float64 `json:"amount"`
	Note  string  `json:"note"`
}

// CreditsResponse returns the balance after an adjustment.
type CreditsResponse struct {
	Credits float64 `json:"credits"`
}
