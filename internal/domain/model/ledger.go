package model

import "time"

// CreditReason explains a balance movement.
type CreditReason string

const (
	CreditReasonRedemption CreditReason = "redemption"
	CreditReasonRefund     CreditReason = "refund"
	CreditReasonReferral   CreditReason = "referral"
	CreditReasonAdjustment CreditReason = "adjustment"
)

// CreditEntry is one applied balance delta.
type CreditEntry struct {
	ID        int64
	UserID    int64
	Delta     float64
	Balance   float64
	Reason    CreditReason
	Reference string
	CreatedAt time.Time
}
