package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

const uniqueViolation = "23505"

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// repositories binds repository implementations to a querier.
type repositories struct {
	db querier
}

func (r repositories) Users() repository.UserRepository             { return &userRepository{db: r.db} }
func (r repositories) Credits() repository.CreditRepository         { return &creditRepository{db: r.db} }
func (r repositories) Orders() repository.OrderRepository           { return &orderRepository{db: r.db} }
func (r repositories) Products() repository.ProductRepository       { return &productRepository{db: r.db} }
func (r repositories) Rewards() repository.RewardRepository         { return &rewardRepository{db: r.db} }
func (r repositories) Redemptions() repository.RedemptionRepository { return &redemptionRepository{db: r.db} }
func (r repositories) Announcements() repository.AnnouncementRepository {
	return &announcementRepository{db: r.db}
}

// Factory methods for domain repositories outside of a transaction.
func (s *Storage) Users() repository.UserRepository             { return repositories{s.pool}.Users() }
func (s *Storage) Credits() repository.CreditRepository         { return repositories{s.pool}.Credits() }
func (s *Storage) Orders() repository.OrderRepository           { return repositories{s.pool}.Orders() }
func (s *Storage) Products() repository.ProductRepository       { return repositories{s.pool}.Products() }
func (s *Storage) Rewards() repository.RewardRepository         { return repositories{s.pool}.Rewards() }
func (s *Storage) Redemptions() repository.RedemptionRepository { return repositories{s.pool}.Redemptions() }
func (s *Storage) Announcements() repository.AnnouncementRepository {
	return repositories{s.pool}.Announcements()
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            discord_id TEXT UNIQUE NOT NULL,
            username TEXT NOT NULL,
            discriminator TEXT NOT NULL DEFAULT '',
            avatar TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            credits NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (credits >= 0),
            referral_code TEXT UNIQUE NOT NULL,
            referred_by BIGINT REFERENCES users(id) ON DELETE SET NULL,
            role TEXT NOT NULL DEFAULT 'Client',
            last_login TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS credit_entries (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            delta NUMERIC(14,2) NOT NULL,
            balance NUMERIC(14,2) NOT NULL,
            reason TEXT NOT NULL,
            reference TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            long_description TEXT NOT NULL DEFAULT '',
            price NUMERIC(14,2) NOT NULL CHECK (price >= 0),
            discount_price NUMERIC(14,2),
            image TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL,
            tags TEXT[] NOT NULL DEFAULT '{}',
            featured BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            number TEXT UNIQUE NOT NULL,
            items JSONB NOT NULL,
            total_amount NUMERIC(14,2) NOT NULL,
            status TEXT NOT NULL,
            delivery_address TEXT NOT NULL,
            referral_code TEXT NOT NULL DEFAULT '',
            referrer_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
            referral_paid BOOLEAN NOT NULL DEFAULT FALSE,
            admin_remarks TEXT NOT NULL DEFAULT '',
            hidden_from_staff BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS rewards (
            id BIGSERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            image TEXT NOT NULL DEFAULT '',
            credit_cost NUMERIC(14,2) NOT NULL CHECK (credit_cost >= 0),
            category TEXT NOT NULL DEFAULT 'Other',
            available BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS redemptions (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            reward_id BIGINT NOT NULL,
            reward_name TEXT NOT NULL,
            credit_cost NUMERIC(14,2) NOT NULL,
            status TEXT NOT NULL,
            admin_remarks TEXT NOT NULL DEFAULT '',
            processed_by BIGINT REFERENCES users(id) ON DELETE SET NULL,
            requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            processed_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS announcements (
            id BIGSERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            content TEXT NOT NULL,
            severity TEXT NOT NULL DEFAULT 'info',
            active BOOLEAN NOT NULL DEFAULT TRUE,
            author_id BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_credit_entries_user ON credit_entries(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
		`CREATE INDEX IF NOT EXISTS idx_redemptions_user ON redemptions(user_id, requested_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Warn("rollback failed", slog.String("error", rbErr.Error()))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// WithinTx runs fn with repositories bound to one transaction.
func (s *Storage) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Factory) error) error {
	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, repositories{db: tx})
	})
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	return err
}

func uniqueOrErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domainErrors.ErrAlreadyExists
	}
	return err
}

func affected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

var _ repository.Store = (*Storage)(nil)
