package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type userRepository struct {
	db querier
}

const userColumns = `id, discord_id, username, discriminator, avatar, email, credits,
                     referral_code, referred_by, role, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.DiscordID, &u.Username, &u.Discriminator, &u.Avatar, &u.Email, &u.Credits,
		&u.ReferralCode, &u.ReferredBy, &u.Role, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	const query = `INSERT INTO users (discord_id, username, discriminator, avatar, email, credits, referral_code, referred_by, role, last_login)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, u.DiscordID, u.Username, u.Discriminator, u.Avatar, u.Email, u.Credits,
		u.ReferralCode, u.ReferredBy, u.Role, u.LastLogin).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return uniqueOrErr(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1 FOR UPDATE`, id))
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE discord_id=$1`, discordID))
}

func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code=$1`, code))
}

func (r *userRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE referral_code=$1)`, code).Scan(&exists)
	return exists, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, u *model.User) error {
	const query = `UPDATE users SET username=$1, discriminator=$2, avatar=$3, email=$4, last_login=$5, updated_at=NOW()
                   WHERE id=$6`
	return affected(r.db.Exec(ctx, query, u.Username, u.Discriminator, u.Avatar, u.Email, u.LastLogin, u.ID))
}

func (r *userRepository) SetCredits(ctx context.Context, id int64, credits float64) error {
	return affected(r.db.Exec(ctx, `UPDATE users SET credits=$1, updated_at=NOW() WHERE id=$2`, credits, id))
}

func (r *userRepository) SetRole(ctx context.Context, id int64, role model.Role) error {
	return affected(r.db.Exec(ctx, `UPDATE users SET role=$1, updated_at=NOW() WHERE id=$2`, role, id))
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type creditRepository struct {
	db querier
}

func (r *creditRepository) Append(ctx context.Context, e *model.CreditEntry) error {
	const query = `INSERT INTO credit_entries (user_id, delta, balance, reason, reference)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, e.UserID, e.Delta, e.Balance, e.Reason, e.Reference).Scan(&e.ID, &e.CreatedAt)
}

func (r *creditRepository) ListByUser(ctx context.Context, userID int64) ([]model.CreditEntry, error) {
	const query = `SELECT id, user_id, delta, balance, reason, reference, created_at
                   FROM credit_entries WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CreditEntry
	for rows.Next() {
		var e model.CreditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Delta, &e.Balance, &e.Reason, &e.Reference, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
