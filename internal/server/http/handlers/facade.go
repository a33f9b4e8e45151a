package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	LoginURL(ctx context.Context, referralCode string) (string, error)
	CompleteLogin(ctx context.Context, code, state string) (string, *model.User, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
}

// CatalogFacade exposes the public storefront.
type CatalogFacade interface {
	Products(ctx context.Context, query model.ProductQuery) ([]model.Product, error)
	FeaturedProducts(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	AvailableRewards(ctx context.Context) ([]model.Reward, error)
	ActiveAnnouncements(ctx context.Context) ([]model.Announcement, error)
}

// AccountFacade serves the signed in customer.
type AccountFacade interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	CreditHistory(ctx context.Context, userID int64) ([]model.CreditEntry, error)
	Redeem(ctx context.Context, userID, rewardID int64) (int64, float64, error)
	Redemptions(ctx context.Context, userID int64) ([]model.Redemption, error)
}

// OrderFacade covers customer and staff order operations.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, lines []model.OrderLine, referralCode string) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	AllOrders(ctx context.Context, viewer model.Role) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, remarks *string, actor *model.User) (*model.Order, error)
	SetOrderVisibility(ctx context.Context, orderID int64, hidden bool) error
}

// AdminFacade groups admin-only management operations.
type AdminFacade interface {
	CreateProduct(ctx context.Context, p *model.Product) error
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	Users(ctx context.Context) ([]model.User, error)
	SetUserRole(ctx context.Context, userID int64, role model.Role) error
	AdjustCredits(ctx context.Context, userID int64, delta float64, note string) (float64, error)

	AllRewards(ctx context.Context) ([]model.Reward, error)
	Reward(ctx context.Context, id int64) (*model.Reward, error)
	CreateReward(ctx context.Context, r *model.Reward) error
	UpdateReward(ctx context.Context, r *model.Reward) error
	DeleteReward(ctx context.Context, id int64) error

	AllAnnouncements(ctx context.Context) ([]model.Announcement, error)
	CreateAnnouncement(ctx context.Context, a *model.Announcement, authorID int64) error
	UpdateAnnouncement(ctx context.Context, a *model.Announcement) error
	DeleteAnnouncement(ctx context.Context, id int64) error

	AllRedemptions(ctx context.Context) ([]model.Redemption, error)
	ProcessRedemption(ctx context.Context, id int64, decision model.RedemptionStatus, adminID int64, remarks string) (*model.Redemption, error)
}

// HealthFacade reports backing service availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	AccountFacade
	OrderFacade
	AdminFacade
	HealthFacade
}
