package router

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/test/apptest"
)

var _ handlers.StorefrontFacade = (*app.StorefrontFacade)(nil)

func testConfig() *config.Config {
	return &config.Config{FrontendURL: "http://front.test", TokenTTL: time.Hour}
}

func call(t *testing.T, engine http.Handler, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRouteGating(t *testing.T) {
	env := apptest.New(apptest.Options{})
	_, client := env.SeedUser(t, "client", model.RoleClient, 0)
	_, staff := env.SeedUser(t, "staff", model.RoleStaff, 0)
	_, admin := env.SeedUser(t, "admin", model.RoleAdmin, 0)
	engine := Setup(env.Facade, testConfig(), testhelpers.DiscardLogger())

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health", http.MethodGet, "/healthz", "", http.StatusOK},
		{"public products", http.MethodGet, "/api/products", "", http.StatusOK},
		{"public featured", http.MethodGet, "/api/products/featured", "", http.StatusOK},
		{"public rewards", http.MethodGet, "/api/rewards", "", http.StatusOK},
		{"public announcements", http.MethodGet, "/api/announcements", "", http.StatusOK},
		{"profile anonymous", http.MethodGet, "/api/profile", "", http.StatusUnauthorized},
		{"profile bad token", http.MethodGet, "/api/profile", "garbage", http.StatusUnauthorized},
		{"profile client", http.MethodGet, "/api/profile", client, http.StatusOK},
		{"orders client", http.MethodGet, "/api/orders", client, http.StatusOK},
		{"staff orders as client", http.MethodGet, "/api/admin/orders", client, http.StatusForbidden},
		{"staff orders as staff", http.MethodGet, "/api/admin/orders", staff, http.StatusOK},
		{"staff orders as admin", http.MethodGet, "/api/admin/orders", admin, http.StatusOK},
		{"users as staff", http.MethodGet, "/api/admin/users", staff, http.StatusForbidden},
		{"users as admin", http.MethodGet, "/api/admin/users", admin, http.StatusOK},
		{"rewards admin list", http.MethodGet, "/api/admin/rewards", admin, http.StatusOK},
		{"redemptions as client", http.MethodGet, "/api/admin/redemptions", client, http.StatusForbidden},
		{"logout anonymous", http.MethodPost, "/auth/logout", "", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/api/nowhere", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if resp := call(t, engine, tc.method, tc.path, tc.token); resp.Code != tc.want {
				t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, resp.Code)
			}
		})
	}
}

func TestSetupAuthFlowRoutes(t *testing.T) {
	env := apptest.New(apptest.Options{})
	engine := Setup(env.Facade, testConfig(), testhelpers.DiscardLogger())

	resp := call(t, engine, http.MethodGet, "/auth/discord/login?ref=ABCDEFGH", "")
	if resp.Code != http.StatusFound || !strings.HasPrefix(resp.Header().Get("Location"), "https://provider.test/") {
		t.Fatalf("expected redirect to provider, got %d %q", resp.Code, resp.Header().Get("Location"))
	}

	resp = call(t, engine, http.MethodGet, "/auth/discord/callback?error=access_denied", "")
	if got := resp.Header().Get("Location"); got != "http://front.test/login?error=discord_auth_denied" {
		t.Fatalf("unexpected callback redirect %q", got)
	}
}

func TestSetupCookieAuthAndCORS(t *testing.T) {
	env := apptest.New(apptest.Options{})
	_, token := env.SeedUser(t, "client", model.RoleClient, 12)
	engine := Setup(env.Facade, testConfig(), testhelpers.DiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: "storefront_token", Value: token})
	req.Header.Set("Origin", "http://front.test")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected cookie auth to succeed, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://front.test" {
		t.Fatalf("expected CORS origin header, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials to be allowed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://evil.test")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected foreign origin to be rejected, got %d", resp.Code)
	}
}

func TestSetupCompressesResponses(t *testing.T) {
	env := apptest.New(apptest.Options{})
	_, token := env.SeedUser(t, "client", model.RoleClient, 12)
	engine := Setup(env.Facade, testConfig(), testhelpers.DiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got headers %v", resp.Header())
	}

	reader, err := gzip.NewReader(bytes.NewReader(resp.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var profile struct {
		Username string  `json:"username"`
		Credits  float64 `json:"credits"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Username != "client" || profile.Credits != 12 {
		t.Fatalf("unexpected profile %+v", profile)
	}
}
