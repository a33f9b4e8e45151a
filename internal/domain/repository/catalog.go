package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductRepository manages the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, query model.ProductQuery) ([]model.Product, error)
}

// RewardRepository manages redeemable rewards.
type RewardRepository interface {
	Create(ctx context.Context, reward *model.Reward) error
	Update(ctx context.Context, reward *model.Reward) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Reward, error)
	List(ctx context.Context, availableOnly bool) ([]model.Reward, error)
}

// AnnouncementRepository manages broadcast announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	Update(ctx context.Context, announcement *model.Announcement) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Announcement, error)
	List(ctx context.Context, activeOnly bool) ([]model.Announcement, error)
}
