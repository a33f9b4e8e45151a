package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Order, error)
	GetForUser(ctx context.Context, id, userID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, includeHidden bool) ([]model.Order, error)
	// UpdateFulfilment persists status, remarks and the referral-paid flag.
	UpdateFulfilment(ctx context.Context, order *model.Order) error
	SetHidden(ctx context.Context, id int64, hidden bool) error
}
