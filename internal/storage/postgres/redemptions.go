package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type redemptionRepository struct {
	db querier
}

const redemptionColumns = `id, user_id, reward_id, reward_name, credit_cost, status, admin_remarks, processed_by,
                           requested_at, processed_at`

func scanRedemption(row pgx.Row) (*model.Redemption, error) {
	var rd model.Redemption
	err := row.Scan(&rd.ID, &rd.UserID, &rd.RewardID, &rd.RewardName, &rd.CreditCost, &rd.Status, &rd.AdminRemarks,
		&rd.ProcessedBy, &rd.RequestedAt, &rd.ProcessedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &rd, nil
}

func (r *redemptionRepository) list(ctx context.Context, query string, args ...any) ([]model.Redemption, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Redemption
	for rows.Next() {
		rd, err := scanRedemption(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *redemptionRepository) Create(ctx context.Context, rd *model.Redemption) error {
	const query = `INSERT INTO redemptions (user_id, reward_id, reward_name, credit_cost, status, requested_at)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id`
	return r.db.QueryRow(ctx, query, rd.UserID, rd.RewardID, rd.RewardName, rd.CreditCost, rd.Status, rd.RequestedAt).Scan(&rd.ID)
}

func (r *redemptionRepository) GetByID(ctx context.Context, id int64) (*model.Redemption, error) {
	return scanRedemption(r.db.QueryRow(ctx, `SELECT `+redemptionColumns+` FROM redemptions WHERE id=$1`, id))
}

func (r *redemptionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Redemption, error) {
	return scanRedemption(r.db.QueryRow(ctx, `SELECT `+redemptionColumns+` FROM redemptions WHERE id=$1 FOR UPDATE`, id))
}

func (r *redemptionRepository) Resolve(ctx context.Context, rd *model.Redemption) error {
	const query = `UPDATE redemptions SET status=$1, admin_remarks=$2, processed_by=$3, processed_at=$4
                   WHERE id=$5 AND status=$6`
	return affected(r.db.Exec(ctx, query, rd.Status, rd.AdminRemarks, rd.ProcessedBy, rd.ProcessedAt, rd.ID, model.RedemptionStatusPending))
}

func (r *redemptionRepository) ListByUser(ctx context.Context, userID int64) ([]model.Redemption, error) {
	return r.list(ctx, `SELECT `+redemptionColumns+` FROM redemptions WHERE user_id=$1 ORDER BY requested_at DESC`, userID)
}

func (r *redemptionRepository) List(ctx context.Context) ([]model.Redemption, error) {
	return r.list(ctx, `SELECT `+redemptionColumns+` FROM redemptions ORDER BY requested_at DESC`)
}
