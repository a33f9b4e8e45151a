package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const featuredLimit = 6

// ProductUseCase serves the product catalog.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(store repository.Store) *ProductUseCase {
	return &ProductUseCase{products: store.Products()}
}

// List applies search, category filter and sort to the catalog.
func (u *ProductUseCase) List(ctx context.Context, query model.ProductQuery) ([]model.Product, error) {
	query.Search = strings.TrimSpace(query.Search)
	switch query.Sort {
	case model.ProductSortNewest, model.ProductSortPriceLow, model.ProductSortPriceHigh,
		model.ProductSortNameAZ, model.ProductSortNameZA:
	default:
		query.Sort = model.ProductSortNewest
	}
	if query.Category != "" && !query.Category.Valid() {
		return nil, domainErrors.ErrInvalidInput
	}
	return u.products.List(ctx, query)
}

// Featured returns the newest featured products.
func (u *ProductUseCase) Featured(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx, model.ProductQuery{Featured: true, Limit: featuredLimit})
}

// Get returns a single product.
func (u *ProductUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := u.products.GetByID(ctx, id)
	return p, productErr(err)
}

// Create validates and stores a new product.
func (u *ProductUseCase) Create(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return u.products.Create(ctx, p)
}

// Update replaces the editable fields of a product.
func (u *ProductUseCase) Update(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return productErr(u.products.Update(ctx, p))
}

// Delete removes a product. Existing orders keep their snapshots.
func (u *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return productErr(u.products.Delete(ctx, id))
}

func validateProduct(p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || p.Price < 0 || !p.Category.Valid() {
		return domainErrors.ErrInvalidInput
	}
	if p.DiscountPrice != nil && *p.DiscountPrice < 0 {
		return domainErrors.ErrInvalidInput
	}
	return nil
}

func productErr(err error) error {
	if errors.Is(err, domainErrors.ErrNotFound) {
		return domainErrors.ErrProductNotFound
	}
	return err
}
