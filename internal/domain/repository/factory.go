package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Credits() CreditRepository
	Orders() OrderRepository
	Products() ProductRepository
	Rewards() RewardRepository
	Redemptions() RedemptionRepository
	Announcements() AnnouncementRepository
}

// Transactor runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Factory) error) error
}

// Store combines non-transactional repository access with transactions.
type Store interface {
	Factory
	Transactor
}
