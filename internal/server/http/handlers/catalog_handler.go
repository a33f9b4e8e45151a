package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CatalogHandler serves public storefront listings.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Products handles GET /api/products.
func (h *CatalogHandler) Products(c *gin.Context) {
	query := model.ProductQuery{
		Search: firstQuery(c, "searchTerm", "search"),
		Sort:   model.ProductSort(firstQuery(c, "sortOption", "sort")),
	}
	if category := firstQuery(c, "filterOption", "category"); !strings.EqualFold(category, "all") {
		query.Category = model.ProductCategory(category)
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			badRequest(c)
			return
		}
		query.Limit = limit
	}

	products, err := h.facade.Products(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(products, toProductResponse))
}

// Featured handles GET /api/products/featured.
func (h *CatalogHandler) Featured(c *gin.Context) {
	products, err := h.facade.FeaturedProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(products, toProductResponse))
}

// Product handles GET /api/products/:id.
func (h *CatalogHandler) Product(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// Rewards handles GET /api/rewards.
func (h *CatalogHandler) Rewards(c *gin.Context) {
	rewards, err := h.facade.AvailableRewards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(rewards, toRewardResponse))
}

// Announcements handles GET /api/announcements.
func (h *CatalogHandler) Announcements(c *gin.Context) {
	items, err := h.facade.ActiveAnnouncements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(items, toAnnouncementResponse))
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			return v
		}
	}
	return ""
}
