package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// AccountHandler serves the signed in customer's profile, ledger and redemptions.
type AccountHandler struct {
	facade AccountFacade
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// Profile handles GET /api/profile.
func (h *AccountHandler) Profile(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// CreditHistory handles GET /api/credits/history.
func (h *AccountHandler) CreditHistory(c *gin.Context) {
	entries, err := h.facade.CreditHistory(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(entries, toCreditEntryResponse))
}

// Redeem handles POST /api/rewards/:id/redeem.
func (h *AccountHandler) Redeem(c *gin.Context) {
	rewardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	redemptionID, balance, err := h.facade.Redeem(c.Request.Context(), CurrentUserID(c), rewardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RedeemResponse{
		Message:      "Redemption request submitted.",
		RedemptionID: redemptionID,
		Credits:      balance,
	})
}

// Redemptions handles GET /api/redemptions.
func (h *AccountHandler) Redemptions(c *gin.Context) {
	items, err := h.facade.Redemptions(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(items, toRedemptionResponse))
}
