package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByIDForUpdate locks the user row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*model.User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*model.User, error)
	GetByReferralCode(ctx context.Context, code string) (*model.User, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	SetCredits(ctx context.Context, id int64, credits float64) error
	SetRole(ctx context.Context, id int64, role model.Role) error
	List(ctx context.Context) ([]model.User, error)
}
