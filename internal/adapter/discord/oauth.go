package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	cdnURL         = "https://cdn.discordapp.com"
	requestTimeout = 10 * time.Second
)

var scopes = []string{"identify", "email"}

// OAuthClient runs the Discord authorization code flow.
type OAuthClient struct {
	oauth      *oauth2.Config
	apiURL     string
	httpClient *http.Client
	logger     *slog.Logger
}

type profile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Email         string `json:"email"`
}

// NewOAuthClient creates an OAuth client for the configured Discord application.
func NewOAuthClient(cfg config.DiscordConfig, logger *slog.Logger) (*OAuthClient, error) {
	parsed, err := url.Parse(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("parse discord api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("discord api url must be absolute")
	}
	api := strings.TrimRight(parsed.String(), "/")
	return &OAuthClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   api + "/oauth2/authorize",
				TokenURL:  api + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiURL: api,
		logger: logger,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

// AuthCodeURL returns the consent page URL carrying state.
func (c *OAuthClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for a token and loads the profile.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*model.ExternalIdentity, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/users/@me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("discord profile request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("fetch profile: %s", resp.Status)
	}

	var p profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("profile without id")
	}
	return &model.ExternalIdentity{
		ID:            p.ID,
		Username:      p.Username,
		Discriminator: p.Discriminator,
		Avatar:        avatarURL(p.ID, p.Avatar),
		Email:         p.Email,
	}, nil
}

func avatarURL(userID, hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("%s/avatars/%s/%s.png", cdnURL, userID, hash)
}
