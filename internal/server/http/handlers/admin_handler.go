package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// AdminHandler exposes catalog, user and redemption management.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	product := fromProductRequest(req)
	if err := h.facade.CreateProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*product))
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	product := fromProductRequest(req)
	product.ID = id
	if err := h.facade.UpdateProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		response = append(response, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, response)
}

// SetRole handles PATCH /api/admin/users/:id/role.
func (h *AdminHandler) SetRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.facade.SetUserRole(c.Request.Context(), id, model.Role(req.Role)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustCredits handles POST /api/admin/users/:id/credits.
func (h *AdminHandler) AdjustCredits(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	balance, err := h.facade.AdjustCredits(c.Request.Context(), id, req.Delta, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreditsResponse{Credits: balance})
}

// Rewards handles GET /api/admin/rewards.
func (h *AdminHandler) Rewards(c *gin.Context) {
	rewards, err := h.facade.AllRewards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(rewards, toRewardResponse))
}

// Reward handles GET /api/admin/rewards/:id.
func (h *AdminHandler) Reward(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reward, err := h.facade.Reward(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRewardResponse(*reward))
}

// CreateReward handles POST /api/admin/rewards.
func (h *AdminHandler) CreateReward(c *gin.Context) {
	var req dto.RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	reward := fromRewardRequest(req)
	if err := h.facade.CreateReward(c.Request.Context(), reward); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRewardResponse(*reward))
}

// UpdateReward handles PUT /api/admin/rewards/:id.
func (h *AdminHandler) UpdateReward(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	reward := fromRewardRequest(req)
	reward.ID = id
	if err := h.facade.UpdateReward(c.Request.Context(), reward); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRewardResponse(*reward))
}

// DeleteReward handles DELETE /api/admin/rewards/:id.
func (h *AdminHandler) DeleteReward(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteReward(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Announcements handles GET /api/admin/announcements.
func (h *AdminHandler) Announcements(c *gin.Context) {
	items, err := h.facade.AllAnnouncements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(items, toAnnouncementResponse))
}

// CreateAnnouncement handles POST /api/admin/announcements.
func (h *AdminHandler) CreateAnnouncement(c *gin.Context) {
	var req dto.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	announcement := fromAnnouncementRequest(req)
	if err := h.facade.CreateAnnouncement(c.Request.Context(), announcement, CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAnnouncementResponse(*announcement))
}

// UpdateAnnouncement handles PUT /api/admin/announcements/:id.
func (h *AdminHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	announcement := fromAnnouncementRequest(req)
	announcement.ID = id
	if err := h.facade.UpdateAnnouncement(c.Request.Context(), announcement); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAnnouncementResponse(*announcement))
}

// DeleteAnnouncement handles DELETE /api/admin/announcements/:id.
func (h *AdminHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Redemptions handles GET /api/admin/redemptions.
func (h *AdminHandler) Redemptions(c *gin.Context) {
	items, err := h.facade.AllRedemptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(items, toRedemptionResponse))
}

// ProcessRedemption handles PATCH /api/admin/redemptions/:id.
func (h *AdminHandler) ProcessRedemption(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProcessRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	redemption, err := h.facade.ProcessRedemption(c.Request.Context(), id, model.RedemptionStatus(req.Status), CurrentUserID(c), req.AdminRemarks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRedemptionResponse(*redemption))
}
