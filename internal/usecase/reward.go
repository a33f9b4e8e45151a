package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// RewardUseCase manages redeemable rewards.
type RewardUseCase struct {
	rewards repository.RewardRepository
}

// NewRewardUseCase constructs RewardUseCase.
func NewRewardUseCase(store repository.Store) *RewardUseCase {
	return &RewardUseCase{rewards: store.Rewards()}
}

// ListAvailable returns rewards users can currently redeem.
func (u *RewardUseCase) ListAvailable(ctx context.Context) ([]model.Reward, error) {
	return u.rewards.List(ctx, true)
}

// ListAll returns every reward.
func (u *RewardUseCase) ListAll(ctx context.Context) ([]model.Reward, error) {
	return u.rewards.List(ctx, false)
}

// Get returns a single reward.
func (u *RewardUseCase) Get(ctx context.Context, id int64) (*model.Reward, error) {
	r, err := u.rewards.GetByID(ctx, id)
	return r, rewardErr(err)
}

// Create validates and stores a reward.
func (u *RewardUseCase) Create(ctx context.Context, r *model.Reward) error {
	if err := validateReward(r); err != nil {
		return err
	}
	return u.rewards.Create(ctx, r)
}

// Update replaces the editable fields of a reward. Pending redemptions keep
// their snapshotted cost.
func (u *RewardUseCase) Update(ctx context.Context, r *model.Reward) error {
	if err := validateReward(r); err != nil {
		return err
	}
	return rewardErr(u.rewards.Update(ctx, r))
}

// Delete removes a reward.
func (u *RewardUseCase) Delete(ctx context.Context, id int64) error {
	return rewardErr(u.rewards.Delete(ctx, id))
}

func validateReward(r *model.Reward) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Category == "" {
		r.Category = model.RewardCategoryOther
	}
	if r.Name == "" || r.CreditCost < 0 || !r.Category.Valid() {
		return domainErrors.ErrInvalidInput
	}
	return nil
}

func rewardErr(err error) error {
	if errors.Is(err, domainErrors.ErrNotFound) {
		return domainErrors.ErrRewardNotFound
	}
	return err
}
