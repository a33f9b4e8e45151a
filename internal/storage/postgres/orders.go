package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type orderRepository struct {
	db querier
}

const orderColumns = `id, user_id, number, items, total_amount, status, delivery_address, referral_code,
                      referrer_id, referral_paid, admin_remarks, hidden_from_staff, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &o.Number, &items, &o.TotalAmount, &o.Status, &o.DeliveryAddress, &o.ReferralCode,
		&o.ReferrerID, &o.ReferralPaid, &o.AdminRemarks, &o.HiddenFromStaff, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	const query = `INSERT INTO orders (user_id, number, items, total_amount, status, delivery_address, referral_code, referrer_id)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, created_at, updated_at`
	err = r.db.QueryRow(ctx, query, o.UserID, o.Number, items, o.TotalAmount, o.Status, o.DeliveryAddress,
		o.ReferralCode, o.ReferrerID).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	return uniqueOrErr(err)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
}

func (r *orderRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	return scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, id))
}

func (r *orderRepository) GetForUser(ctx context.Context, id, userID int64) (*model.Order, error) {
	return scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 AND user_id=$2`, id, userID))
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *orderRepository) List(ctx context.Context, includeHidden bool) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE ($1 OR NOT hidden_from_staff) ORDER BY created_at DESC`, includeHidden)
}

func (r *orderRepository) UpdateFulfilment(ctx context.Context, o *model.Order) error {
	const query = `UPDATE orders SET status=$1, admin_remarks=$2, referral_paid=$3, updated_at=NOW() WHERE id=$4`
	return affected(r.db.Exec(ctx, query, o.Status, o.AdminRemarks, o.ReferralPaid, o.ID))
}

func (r *orderRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	return affected(r.db.Exec(ctx, `UPDATE orders SET hidden_from_staff=$1, updated_at=NOW() WHERE id=$2`, hidden, id))
}
