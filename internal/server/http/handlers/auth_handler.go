package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// AuthSettings controls where the OAuth callback sends the browser.
type AuthSettings struct {
	FrontendURL string
	TokenTTL    time.Duration
}

// AuthHandler runs the Discord login flow and logout.
type AuthHandler struct {
	facade   AuthFacade
	settings AuthSettings
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, settings AuthSettings) *AuthHandler {
	return &AuthHandler{facade: facade, settings: settings}
}

// Login handles GET /auth/discord/login.
func (h *AuthHandler) Login(c *gin.Context) {
	ref := c.Query("referral_code")
	if ref == "" {
		ref = c.Query("ref")
	}
	target, err := h.facade.LoginURL(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Callback handles GET /auth/discord/callback.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if c.Query("error") != "" || code == "" {
		h.redirectError(c, "discord_auth_denied")
		return
	}

	token, _, err := h.facade.CompleteLogin(c.Request.Context(), code, state)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, domainErrors.ErrUnauthenticated) {
			h.redirectError(c, "auth_failed")
			return
		}
		h.redirectError(c, "internal_server_error")
		return
	}

	middleware.SetAuthCookie(c, token, int(h.settings.TokenTTL.Seconds()), h.secure())
	c.Redirect(http.StatusFound, h.settings.FrontendURL+"/dashboard?loggedIn=true")
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.TokenContextKey)
	if err := h.facade.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	middleware.ClearAuthCookie(c, h.secure())
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully!"})
}

func (h *AuthHandler) redirectError(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, h.settings.FrontendURL+"/login?error="+url.QueryEscape(reason))
}

func (h *AuthHandler) secure() bool {
	return strings.HasPrefix(h.settings.FrontendURL, "https://")
}
