package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CreditRepository stores the append-only history of balance movements.
type CreditRepository interface {
	Append(ctx context.Context, entry *model.CreditEntry) error
	ListByUser(ctx context.Context, userID int64) ([]model.CreditEntry, error)
}
