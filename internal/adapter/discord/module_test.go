package discord

import (
	"testing"

	"github.com/polkiloo/storefront/internal/config"
)

func TestProvidersUseConfig(t *testing.T) {
	cfg := &config.Config{
		Discord:      config.DiscordConfig{ClientID: "client", APIURL: "https://discord.test/api"},
		BotAPIURL:    "https://bot.test/send-dm",
		BotAPISecret: "secret",
	}

	client, err := newOAuthClient(cfg, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.apiURL != "https://discord.test/api" {
		t.Fatalf("unexpected api url: %s", client.apiURL)
	}

	sender := newSender(cfg, testLogger())
	if sender.botURL != cfg.BotAPIURL || sender.botSecret != "secret" {
		t.Fatalf("sender not configured from config: %+v", sender)
	}
}

func TestNewOAuthClientProviderRejectsBadURL(t *testing.T) {
	cfg := &config.Config{Discord: config.DiscordConfig{APIURL: "relative/path"}}
	if _, err := newOAuthClient(cfg, testLogger()); err == nil {
		t.Fatal("expected error")
	}
}
