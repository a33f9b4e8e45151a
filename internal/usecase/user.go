package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// UserUseCase exposes profile and administration operations on users.
type UserUseCase struct {
	store  repository.Store
	ledger *LedgerUseCase
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(store repository.Store, ledger *LedgerUseCase) *UserUseCase {
	return &UserUseCase{store: store, ledger: ledger}
}

// Profile returns the authoritative user record.
func (u *UserUseCase) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := u.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns all users.
func (u *UserUseCase) List(ctx context.Context) ([]model.User, error) {
	return u.store.Users().List(ctx)
}

// SetRole changes the user's role.
func (u *UserUseCase) SetRole(ctx context.Context, userID int64, role model.Role) error {
	if !role.Valid() {
		return domainErrors.ErrInvalidInput
	}
	if err := u.store.Users().SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrUserNotFound
		}
		return err
	}
	return nil
}

// PromoteByDiscordID sets the role of the account linked to a Discord id.
func (u *UserUseCase) PromoteByDiscordID(ctx context.Context, discordID string, role model.Role) (*model.User, error) {
	user, err := u.store.Users().GetByDiscordID(ctx, discordID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, err
	}
	if err := u.SetRole(ctx, user.ID, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// AdjustCredits applies a manual balance correction.
func (u *UserUseCase) AdjustCredits(ctx context.Context, userID int64, delta float64, note string) (float64, error) {
	if delta == 0 {
		return 0, domainErrors.ErrInvalidInput
	}
	return u.ledger.ApplyCreditDelta(ctx, userID, delta, model.CreditReasonAdjustment, note)
}

// CreditHistory lists the user's balance movements.
func (u *UserUseCase) CreditHistory(ctx context.Context, userID int64) ([]model.CreditEntry, error) {
	return u.ledger.History(ctx, userID)
}
