package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// RedemptionRepository describes persistence of reward redemptions.
type RedemptionRepository interface {
	Create(ctx context.Context, redemption *model.Redemption) error
	GetByID(ctx context.Context, id int64) (*model.Redemption, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Redemption, error)
	// Resolve persists the admin decision of a pending redemption.
	Resolve(ctx context.Context, redemption *model.Redemption) error
	ListByUser(ctx context.Context, userID int64) ([]model.Redemption, error)
	List(ctx context.Context) ([]model.Redemption, error)
}
