package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type productRepository struct {
	db querier
}

const productColumns = `id, name, description, long_description, price, discount_price, image, category, tags,
                        featured, created_at, updated_at`

var productOrder = map[model.ProductSort]string{
	model.ProductSortNewest:    "created_at DESC, id DESC",
	model.ProductSortPriceLow:  "price ASC, id",
	model.ProductSortPriceHigh: "price DESC, id",
	model.ProductSortNameAZ:    "name ASC",
	model.ProductSortNameZA:    "name DESC",
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.LongDescription, &p.Price, &p.DiscountPrice, &p.Image,
		&p.Category, &p.Tags, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	const query = `INSERT INTO products (name, description, long_description, price, discount_price, image, category, tags, featured)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, p.Name, p.Description, p.LongDescription, p.Price, p.DiscountPrice, p.Image,
		p.Category, tagsOrEmpty(p.Tags), p.Featured).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return uniqueOrErr(err)
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	const query = `UPDATE products SET name=$1, description=$2, long_description=$3, price=$4, discount_price=$5,
                   image=$6, category=$7, tags=$8, featured=$9, updated_at=NOW()
                   WHERE id=$10`
	tag, err := r.db.Exec(ctx, query, p.Name, p.Description, p.LongDescription, p.Price, p.DiscountPrice, p.Image,
		p.Category, tagsOrEmpty(p.Tags), p.Featured, p.ID)
	return affected(tag, uniqueOrErr(err))
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id))
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
}

func (r *productRepository) List(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	var (
		where []string
		args  []any
	)
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if q.Category != "" {
		args = append(args, q.Category)
		where = append(where, fmt.Sprintf("category=$%d", len(args)))
	}
	if q.Featured {
		where = append(where, "featured")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	order, ok := productOrder[q.Sort]
	if !ok {
		order = productOrder[model.ProductSortNewest]
	}
	query += " ORDER BY " + order
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rewardRepository struct {
	db querier
}

const rewardColumns = `id, name, description, image, credit_cost, category, available, created_at, updated_at`

func scanReward(row pgx.Row) (*model.Reward, error) {
	var rw model.Reward
	err := row.Scan(&rw.ID, &rw.Name, &rw.Description, &rw.Image, &rw.CreditCost, &rw.Category, &rw.Available,
		&rw.CreatedAt, &rw.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &rw, nil
}

func (r *rewardRepository) Create(ctx context.Context, rw *model.Reward) error {
	const query = `INSERT INTO rewards (name, description, image, credit_cost, category, available)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, rw.Name, rw.Description, rw.Image, rw.CreditCost, rw.Category, rw.Available).
		Scan(&rw.ID, &rw.CreatedAt, &rw.UpdatedAt)
	return uniqueOrErr(err)
}

func (r *rewardRepository) Update(ctx context.Context, rw *model.Reward) error {
	const query = `UPDATE rewards SET name=$1, description=$2, image=$3, credit_cost=$4, category=$5, available=$6,
                   updated_at=NOW() WHERE id=$7`
	tag, err := r.db.Exec(ctx, query, rw.Name, rw.Description, rw.Image, rw.CreditCost, rw.Category, rw.Available, rw.ID)
	return affected(tag, uniqueOrErr(err))
}

func (r *rewardRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM rewards WHERE id=$1`, id))
}

func (r *rewardRepository) GetByID(ctx context.Context, id int64) (*model.Reward, error) {
	return scanReward(r.db.QueryRow(ctx, `SELECT `+rewardColumns+` FROM rewards WHERE id=$1`, id))
}

func (r *rewardRepository) List(ctx context.Context, availableOnly bool) ([]model.Reward, error) {
	rows, err := r.db.Query(ctx, `SELECT `+rewardColumns+` FROM rewards WHERE ($1 = FALSE OR available) ORDER BY credit_cost ASC, id`, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reward
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type announcementRepository struct {
	db querier
}

const announcementColumns = `id, title, content, severity, active, author_id, created_at, updated_at`

func scanAnnouncement(row pgx.Row) (*model.Announcement, error) {
	var a model.Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Severity, &a.Active, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *announcementRepository) Create(ctx context.Context, a *model.Announcement) error {
	const query = `INSERT INTO announcements (title, content, severity, active, author_id)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query, a.Title, a.Content, a.Severity, a.Active, a.AuthorID).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *announcementRepository) Update(ctx context.Context, a *model.Announcement) error {
	const query = `UPDATE announcements SET title=$1, content=$2, severity=$3, active=$4, updated_at=NOW()
                   WHERE id=$5
                   RETURNING author_id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, a.Title, a.Content, a.Severity, a.Active, a.ID).Scan(&a.AuthorID, &a.CreatedAt, &a.UpdatedAt)
	return notFound(err)
}

func (r *announcementRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM announcements WHERE id=$1`, id))
}

func (r *announcementRepository) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	return scanAnnouncement(r.db.QueryRow(ctx, `SELECT `+announcementColumns+` FROM announcements WHERE id=$1`, id))
}

func (r *announcementRepository) List(ctx context.Context, activeOnly bool) ([]model.Announcement, error) {
	rows, err := r.db.Query(ctx, `SELECT `+announcementColumns+` FROM announcements WHERE ($1 = FALSE OR active) ORDER BY created_at DESC`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
