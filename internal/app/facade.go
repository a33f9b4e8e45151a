package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthCheck probes one backing service.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// FacadeParams lists the use cases combined by StorefrontFacade.
type FacadeParams struct {
	fx.In

	Auth          *usecase.AuthUseCase
	Users         *usecase.UserUseCase
	Ledger        *usecase.LedgerUseCase
	Orders        *usecase.OrderUseCase
	Redemptions   *usecase.RedemptionUseCase
	Products      *usecase.ProductUseCase
	Rewards       *usecase.RewardUseCase
	Announcements *usecase.AnnouncementUseCase
	Checks        []HealthCheck `group:"health"`
}

// StorefrontFacade adapts use cases to the operations exposed over HTTP.
type StorefrontFacade struct {
	auth          *usecase.AuthUseCase
	users         *usecase.UserUseCase
	ledger        *usecase.LedgerUseCase
	orders        *usecase.OrderUseCase
	redemptions   *usecase.RedemptionUseCase
	products      *usecase.ProductUseCase
	rewards       *usecase.RewardUseCase
	announcements *usecase.AnnouncementUseCase
	checks        []HealthCheck
}

// NewStorefrontFacade constructs the facade.
func NewStorefrontFacade(p FacadeParams) *StorefrontFacade {
	return &StorefrontFacade{
		auth:          p.Auth,
		users:         p.Users,
		ledger:        p.Ledger,
		orders:        p.Orders,
		redemptions:   p.Redemptions,
		products:      p.Products,
		rewards:       p.Rewards,
		announcements: p.Announcements,
		checks:        p.Checks,
	}
}

func (f *StorefrontFacade) LoginURL(ctx context.Context, referralCode string) (string, error) {
	return f.auth.BeginLogin(ctx, referralCode)
}

func (f *StorefrontFacade) CompleteLogin(ctx context.Context, code, state string) (string, *model.User, error) {
	result, err := f.auth.CompleteLogin(ctx, code, state)
	if err != nil {
		return "", nil, err
	}
	return result.Token, result.User, nil
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, token string) (*model.User, error) {
	return f.auth.Authenticate(ctx, token)
}

func (f *StorefrontFacade) Logout(ctx context.Context, token string) error {
	return f.auth.Logout(ctx, token)
}

func (f *StorefrontFacade) Products(ctx context.Context, query model.ProductQuery) ([]model.Product, error) {
	return f.products.List(ctx, query)
}

func (f *StorefrontFacade) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	return f.products.Featured(ctx)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *StorefrontFacade) AvailableRewards(ctx context.Context) ([]model.Reward, error) {
	return f.rewards.ListAvailable(ctx)
}

func (f *StorefrontFacade) ActiveAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return f.announcements.ListActive(ctx)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.users.Profile(ctx, userID)
}

func (f *StorefrontFacade) CreditHistory(ctx context.Context, userID int64) ([]model.CreditEntry, error) {
	return f.ledger.History(ctx, userID)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, userID int64, lines []model.OrderLine, referralCode string) (*model.Order, error) {
	return f.orders.Place(ctx, userID, lines, referralCode)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListForUser(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.GetForUser(ctx, userID, orderID)
}

func (f *StorefrontFacade) Redeem(ctx context.Context, userID, rewardID int64) (int64, float64, error) {
	receipt, err := f.redemptions.Submit(ctx, userID, rewardID)
	if err != nil {
		return 0, 0, err
	}
	return receipt.RedemptionID, receipt.Balance, nil
}

func (f *StorefrontFacade) Redemptions(ctx context.Context, userID int64) ([]model.Redemption, error) {
	return f.redemptions.History(ctx, userID)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context, viewer model.Role) ([]model.Order, error) {
	return f.orders.ListAll(ctx, viewer)
}

func (f *StorefrontFacade) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, remarks *string, actor *model.User) (*model.Order, error) {
	return f.orders.SetStatus(ctx, orderID, status, remarks, actor)
}

func (f *StorefrontFacade) SetOrderVisibility(ctx context.Context, orderID int64, hidden bool) error {
	return f.orders.SetVisibility(ctx, orderID, hidden)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, p *model.Product) error {
	return f.products.Create(ctx, p)
}

// UpdateProduct replaces p and reloads it so timestamps reflect storage.
func (f *StorefrontFacade) UpdateProduct(ctx context.Context, p *model.Product) error {
	if err := f.products.Update(ctx, p); err != nil {
		return err
	}
	fresh, err := f.products.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *fresh
	return nil
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.products.Delete(ctx, id)
}

func (f *StorefrontFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.users.List(ctx)
}

func (f *StorefrontFacade) SetUserRole(ctx context.Context, userID int64, role model.Role) error {
	return f.users.SetRole(ctx, userID, role)
}

func (f *StorefrontFacade) AdjustCredits(ctx context.Context, userID int64, delta float64, note string) (float64, error) {
	return f.users.AdjustCredits(ctx, userID, delta, note)
}

func (f *StorefrontFacade) AllRewards(ctx context.Context) ([]model.Reward, error) {
	return f.rewards.ListAll(ctx)
}

func (f *StorefrontFacade) Reward(ctx context.Context, id int64) (*model.Reward, error) {
	return f.rewards.Get(ctx, id)
}

func (f *StorefrontFacade) CreateReward(ctx context.Context, r *model.Reward) error {
	return f.rewards.Create(ctx, r)
}

// UpdateReward replaces r and reloads it so timestamps reflect storage.
func (f *StorefrontFacade) UpdateReward(ctx context.Context, r *model.Reward) error {
	if err := f.rewards.Update(ctx, r); err != nil {
		return err
	}
	fresh, err := f.rewards.Get(ctx, r.ID)
	if err != nil {
		return err
	}
	*r = *fresh
	return nil
}

func (f *StorefrontFacade) DeleteReward(ctx context.Context, id int64) error {
	return f.rewards.Delete(ctx, id)
}

func (f *StorefrontFacade) AllAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return f.announcements.ListAll(ctx)
}

func (f *StorefrontFacade) CreateAnnouncement(ctx context.Context, a *model.Announcement, authorID int64) error {
	return f.announcements.Create(ctx, a, authorID)
}

func (f *StorefrontFacade) UpdateAnnouncement(ctx context.Context, a *model.Announcement) error {
	return f.announcements.Update(ctx, a)
}

func (f *StorefrontFacade) DeleteAnnouncement(ctx context.Context, id int64) error {
	return f.announcements.Delete(ctx, id)
}

func (f *StorefrontFacade) AllRedemptions(ctx context.Context) ([]model.Redemption, error) {
	return f.redemptions.List(ctx)
}

func (f *StorefrontFacade) ProcessRedemption(ctx context.Context, id int64, decision model.RedemptionStatus, adminID int64, remarks string) (*model.Redemption, error) {
	return f.redemptions.Process(ctx, id, decision, adminID, remarks)
}

// HealthCheck runs every registered probe and joins their failures.
func (f *StorefrontFacade) HealthCheck(ctx context.Context) error {
	var errs []error
	for _, check := range f.checks {
		if err := check.Check(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", check.Name, err))
		}
	}
	return errors.Join(errs...)
}
