package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// RedemptionReceipt is returned to the user after a successful submission.
type RedemptionReceipt struct {
	RedemptionID int64
	Balance      float64
}

// RedemptionUseCase exchanges credits for rewards subject to admin approval.
type RedemptionUseCase struct {
	store    repository.Store
	ledger   *LedgerUseCase
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewRedemptionUseCase constructs RedemptionUseCase.
func NewRedemptionUseCase(store repository.Store, ledger *LedgerUseCase, notifier Notifier, logger *slog.Logger) *RedemptionUseCase {
	return &RedemptionUseCase{store: store, ledger: ledger, notifier: notifier, logger: logger, now: time.Now}
}

// Submit debits the reward cost and records a pending redemption.
func (u *RedemptionUseCase) Submit(ctx context.Context, userID, rewardID int64) (*RedemptionReceipt, error) {
	var (
		redemption *model.Redemption
		user       *model.User
		balance    float64
	)
	err := u.ledger.withUserTx(ctx, userID, func(ctx context.Context, repos repository.Factory) error {
		reward, err := repos.Rewards().GetByID(ctx, rewardID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrRewardUnavailable
			}
			return err
		}
		if !reward.Available {
			return domainErrors.ErrRewardUnavailable
		}

		user, err = repos.Users().GetByIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrUserNotFound
			}
			return err
		}
		if user.Credits < reward.CreditCost {
			return domainErrors.ErrInsufficientCredits
		}

		balance, err = applyDelta(ctx, repos, userID, -reward.CreditCost, model.CreditReasonRedemption, fmt.Sprintf("reward:%d", reward.ID))
		if err != nil {
			return err
		}

		redemption = &model.Redemption{
			UserID:      userID,
			RewardID:    reward.ID,
			RewardName:  reward.Name,
			CreditCost:  reward.CreditCost,
			Status:      model.RedemptionStatusPending,
			RequestedAt: u.now(),
		}
		return repos.Redemptions().Create(ctx, redemption)
	})
	if err != nil {
		return nil, err
	}

	for _, n := range redemptionRequestedMessages(redemption, user, balance, u.now()) {
		u.notifier.Notify(n)
	}

	return &RedemptionReceipt{RedemptionID: redemption.ID, Balance: balance}, nil
}

// Process records the admin decision. Rejection refunds the snapshotted cost.
func (u *RedemptionUseCase) Process(ctx context.Context, redemptionID int64, decision model.RedemptionStatus, adminID int64, remarks string) (*model.Redemption, error) {
	if !decision.IsDecision() {
		return nil, domainErrors.ErrInvalidStatus
	}

	current, err := u.store.Redemptions().GetByID(ctx, redemptionID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrRedemptionNotFound
		}
		return nil, err
	}

	var processed *model.Redemption
	err = u.ledger.withUserTx(ctx, current.UserID, func(ctx context.Context, repos repository.Factory) error {
		r, err := repos.Redemptions().GetByIDForUpdate(ctx, redemptionID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrRedemptionNotFound
			}
			return err
		}
		if r.Status != model.RedemptionStatusPending {
			return domainErrors.ErrAlreadyProcessed
		}

		processedAt := u.now()
		r.Status = decision
		r.AdminRemarks = remarks
		r.ProcessedBy = &adminID
		r.ProcessedAt = &processedAt
		if err := repos.Redemptions().Resolve(ctx, r); err != nil {
			return err
		}

		if decision == model.RedemptionStatusRejected {
			if _, err := applyDelta(ctx, repos, r.UserID, r.CreditCost, model.CreditReasonRefund, fmt.Sprintf("redemption:%d", r.ID)); err != nil {
				return err
			}
		}
		processed = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if user, err := u.store.Users().GetByID(ctx, processed.UserID); err != nil {
		u.logger.Warn("skip redemption notification", slog.Int64("redemption_id", processed.ID), slog.String("error", err.Error()))
	} else {
		u.notifier.Notify(redemptionProcessedMessage(processed, user, u.now()))
	}

	return processed, nil
}

// History returns redemptions of the user, newest first.
func (u *RedemptionUseCase) History(ctx context.Context, userID int64) ([]model.Redemption, error) {
	return u.store.Redemptions().ListByUser(ctx, userID)
}

// List returns all redemptions, newest first.
func (u *RedemptionUseCase) List(ctx context.Context) ([]model.Redemption, error) {
	return u.store.Redemptions().List(ctx)
}
