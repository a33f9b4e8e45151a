package model

import "time"

// ProductCategory groups catalog entries.
type ProductCategory string

const (
	ProductCategorySubscriptions ProductCategory = "Subscriptions"
	ProductCategoryBoosts        ProductCategory = "Boosts"
	ProductCategoryBots          ProductCategory = "Bots"
	ProductCategoryAssets        ProductCategory = "Assets"
	ProductCategoryServices      ProductCategory = "Services"
	ProductCategoryRoles         ProductCategory = "Roles"
)

// Valid reports whether c is a known category.
func (c ProductCategory) Valid() bool {
	switch c {
	case ProductCategorySubscriptions, ProductCategoryBoosts, ProductCategoryBots,
		ProductCategoryAssets, ProductCategoryServices, ProductCategoryRoles:
		return true
	}
	return false
}

// Product is a catalog entry.
type Product struct {
	ID              int64
	Name            string
	Description     string
	LongDescription string
	Price           float64
	DiscountPrice   *float64
	Image           string
	Category        ProductCategory
	Tags            []string
	Featured        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectivePrice returns the discount price when set, the list price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// ProductSort selects catalog ordering.
type ProductSort string

const (
	ProductSortNewest    ProductSort = ""
	ProductSortPriceLow  ProductSort = "price-low"
	ProductSortPriceHigh ProductSort = "price-high"
	ProductSortNameAZ    ProductSort = "name-az"
	ProductSortNameZA    ProductSort = "name-za"
)

// ProductQuery filters the public catalog listing.
type ProductQuery struct {
	Search   string
	Category ProductCategory
	Sort     ProductSort
	Featured bool
	Limit    int
}
