package model

import "time"

// RewardCategory groups redeemable rewards.
type RewardCategory string

const (
	RewardCategorySubscriptions RewardCategory = "Subscriptions"
	RewardCategoryAssets        RewardCategory = "Assets"
	RewardCategoryBoosts        RewardCategory = "Boosts"
	RewardCategoryRoles         RewardCategory = "Roles"
	RewardCategoryOther         RewardCategory = "Other"
)

// Valid reports whether c is a known category.
func (c RewardCategory) Valid() bool {
	switch c {
	case RewardCategorySubscriptions, RewardCategoryAssets, RewardCategoryBoosts,
		RewardCategoryRoles, RewardCategoryOther:
		return true
	}
	return false
}

// Reward can be exchanged for credits.
type Reward struct {
	ID          int64
	Name        string
	Description string
	Image       string
	CreditCost  float64
	Category    RewardCategory
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RedemptionStatus is one-way: Pending moves to Approved or Rejected only.
type RedemptionStatus string

const (
	RedemptionStatusPending  RedemptionStatus = "Pending"
	RedemptionStatusApproved RedemptionStatus = "Approved"
	RedemptionStatusRejected RedemptionStatus = "Rejected"
)

// IsDecision reports whether s is a terminal admin decision.
func (s RedemptionStatus) IsDecision() bool {
	return s == RedemptionStatusApproved || s == RedemptionStatusRejected
}

// Redemption holds credits debited for a reward until an admin decides on it.
type Redemption struct {
	ID           int64
	UserID       int64
	RewardID     int64
	RewardName   string
	CreditCost   float64
	Status       RedemptionStatus
	AdminRemarks string
	ProcessedBy  *int64
	RequestedAt  time.Time
	ProcessedAt  *time.Time
}
