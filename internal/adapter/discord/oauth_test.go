package discord

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/polkiloo/storefront/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newDiscordServer(t *testing.T, profileStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.Form.Get("code") != "good" || r.Form.Get("client_id") != "client" || r.Form.Get("grant_type") != "authorization_code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(profileStatus)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":            "1234",
			"username":      "neo",
			"discriminator": "0",
			"avatar":        "abc",
			"email":         "neo@example.com",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewOAuthClientValidatesURL(t *testing.T) {
	if _, err := NewOAuthClient(config.DiscordConfig{APIURL: "://bad"}, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewOAuthClient(config.DiscordConfig{APIURL: "/relative"}, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestAuthCodeURL(t *testing.T) {
	client, err := NewOAuthClient(config.DiscordConfig{
		ClientID:    "client",
		RedirectURI: "http://localhost/auth/discord/callback",
		APIURL:      "https://discord.test/api/",
	}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := url.Parse(client.AuthCodeURL("state-1"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Host != "discord.test" || parsed.Path != "/api/oauth2/authorize" {
		t.Fatalf("unexpected authorize url: %s", parsed)
	}
	q := parsed.Query()
	if q.Get("state") != "state-1" || q.Get("client_id") != "client" || q.Get("scope") != "identify email" || q.Get("response_type") != "code" {
		t.Fatalf("unexpected query: %v", q)
	}
}

func TestExchange(t *testing.T) {
	srv := newDiscordServer(t, http.StatusOK)
	client, err := NewOAuthClient(config.DiscordConfig{ClientID: "client", ClientSecret: "secret", APIURL: srv.URL}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identity, err := client.Exchange(context.Background(), "good")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if identity.ID != "1234" || identity.Username != "neo" || identity.Email != "neo@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if identity.Avatar != "https://cdn.discordapp.com/avatars/1234/abc.png" {
		t.Fatalf("unexpected avatar: %s", identity.Avatar)
	}

	if _, err := client.Exchange(context.Background(), "bad"); err == nil || !strings.Contains(err.Error(), "exchange code") {
		t.Fatalf("expected exchange error, got %v", err)
	}
}

func TestExchangeProfileFailure(t *testing.T) {
	srv := newDiscordServer(t, http.StatusInternalServerError)
	client, err := NewOAuthClient(config.DiscordConfig{ClientID: "client", APIURL: srv.URL}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Exchange(context.Background(), "good"); err == nil || !strings.Contains(err.Error(), "fetch profile") {
		t.Fatalf("expected profile error, got %v", err)
	}
}

func TestAvatarURL(t *testing.T) {
	if avatarURL("1", "") != "" {
		t.Fatal("missing hash must produce empty url")
	}
}
