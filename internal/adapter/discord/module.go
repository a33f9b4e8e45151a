package discord

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Module provides the Discord identity provider and message sender.
var Module = fx.Options(
	fx.Provide(
		newOAuthClient,
		newSender,
		func(c *OAuthClient) usecase.IdentityProvider { return c },
	),
)

func newOAuthClient(cfg *config.Config, logger *slog.Logger) (*OAuthClient, error) {
	return NewOAuthClient(cfg.Discord, logger)
}

func newSender(cfg *config.Config, logger *slog.Logger) *Sender {
	return NewSender(cfg.BotAPIURL, cfg.BotAPISecret, logger)
}
