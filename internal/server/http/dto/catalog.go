package dto

import "time"

// ProductRequest creates or replaces a catalog entry.
type ProductRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Price           float64  `json:"price"`
	DiscountPrice   *float64 `json:"discountPrice"`
	Image           string   `json:"image"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Featured        bool     `json:"isFeatured"`
}

// ProductResponse describes a catalog entry.
type ProductResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription,omitempty"`
	Price           float64   `json:"price"`
	DiscountPrice   *float64  `json:"discountPrice,omitempty"`
	Image           string    `json:"image"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	Featured        bool      `json:"isFeatured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RewardRequest creates or replaces a reward.
type RewardRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CreditCost  float64 `json:"creditCost"`
	Category    string  `json:"category"`
	Available   *bool   `json:"isAvailable"`
}

// RewardResponse describes a reward.
type RewardResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreditCost  float64   `json:"creditCost"`
	Category    string    `json:"category"`
	Available   bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AnnouncementRequest creates or replaces an announcement.
type AnnouncementRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Severity string `json:"severity"`
	Active   *bool  `json:"isActive"`
}

// AnnouncementResponse describes an announcement.
type AnnouncementResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Severity  string    `json:"severity"`
	Active    bool      `json:"isActive"`
	AuthorID  int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
