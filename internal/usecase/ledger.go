package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// creditPlaces is the precision credits are stored with.
const creditPlaces = 2

// LedgerUseCase is the single point of mutation for credit balances.
type LedgerUseCase struct {
	store repository.Store
	locks *userLocks
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(store repository.Store) *LedgerUseCase {
	return &LedgerUseCase{store: store, locks: newUserLocks()}
}

// ApplyCreditDelta adds delta to the user's balance and returns the new balance.
// A debit that would make the balance negative fails with ErrInsufficientCredits
// and leaves the balance untouched.
func (u *LedgerUseCase) ApplyCreditDelta(ctx context.Context, userID int64, delta float64, reason model.CreditReason, reference string) (float64, error) {
	var balance float64
	err := u.withUserTx(ctx, userID, func(ctx context.Context, repos repository.Factory) error {
		var err error
		balance, err = applyDelta(ctx, repos, userID, delta, reason, reference)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// History lists balance movements of the user, newest first.
func (u *LedgerUseCase) History(ctx context.Context, userID int64) ([]model.CreditEntry, error) {
	return u.store.Credits().ListByUser(ctx, userID)
}

// withUserTx holds the user's in-process lock for the whole transaction.
// The row lock taken by applyDelta serializes writers across processes.
func (u *LedgerUseCase) withUserTx(ctx context.Context, userID int64, fn func(ctx context.Context, repos repository.Factory) error) error {
	unlock := u.locks.lock(userID)
	defer unlock()
	return u.store.WithinTx(ctx, fn)
}

// applyDelta must run inside a transaction.
func applyDelta(ctx context.Context, repos repository.Factory, userID int64, delta float64, reason model.CreditReason, reference string) (float64, error) {
	user, err := repos.Users().GetByIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return 0, domainErrors.ErrUserNotFound
		}
		return 0, err
	}

	next := decimal.NewFromFloat(user.Credits).Add(decimal.NewFromFloat(delta)).Round(creditPlaces)
	if next.IsNegative() {
		return 0, domainErrors.ErrInsufficientCredits
	}
	balance := next.InexactFloat64()

	if err := repos.Users().SetCredits(ctx, userID, balance); err != nil {
		return 0, err
	}
	entry := &model.CreditEntry{
		UserID:    userID,
		Delta:     decimal.NewFromFloat(delta).Round(creditPlaces).InexactFloat64(),
		Balance:   balance,
		Reason:    reason,
		Reference: reference,
	}
	if err := repos.Credits().Append(ctx, entry); err != nil {
		return 0, err
	}
	return balance, nil
}

// referralShare returns total*percentage/100 rounded to credit precision.
func referralShare(total, percentage float64) float64 {
	return decimal.NewFromFloat(total).
		Mul(decimal.NewFromFloat(percentage)).
		Div(decimal.NewFromInt(100)).
		Round(creditPlaces).
		InexactFloat64()
}
