package di

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/storage/session"
	"github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

type healthChecks struct {
	fx.In

	Checks []app.HealthCheck `group:"health"`
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		Discord:         config.DiscordConfig{ClientID: "id", ClientSecret: "secret", APIURL: "https://discord.test/api"},
		FrontendURL:     "http://localhost:3000",
		NotifyTimeout:   time.Second,
		NotifyWorkers:   1,
		NotifyQueueSize: 1,
		ShutdownTimeout: time.Millisecond,
	}

	var (
		facade     *app.StorefrontFacade
		server     *http.Server
		dispatcher *worker.Dispatcher
		checks     []string
	)
	fxApp := fx.New(
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(test.DiscardLogger()),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(&session.Store{}),
			fx.Replace(fx.Annotate(test.NewMemoryStore(), fx.As(new(repository.Store)))),
			fx.Replace(fx.Annotate(test.NewSessionStoreStub(), fx.As(new(usecase.SessionStore)))),
			fx.NopLogger,
		),
		fx.Populate(&facade, &server, &dispatcher),
		fx.Invoke(func(h healthChecks) {
			for _, c := range h.Checks {
				checks = append(checks, c.Name)
			}
		}),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if facade == nil || dispatcher == nil {
		t.Fatal("expected storefront facade and dispatcher instances")
	}
	if server == nil || server.Addr != ":0" || server.Handler == nil {
		t.Fatalf("unexpected http server %+v", server)
	}
	if len(checks) != 2 {
		t.Fatalf("expected postgres and redis health checks, got %v", checks)
	}
}

func TestModuleRejectsInvalidDiscordURL(t *testing.T) {
	cfg := &config.Config{
		RunAddress:  ":0",
		DatabaseURI: "postgres://stub",
		JWTSecret:   "secret",
		Discord:     config.DiscordConfig{APIURL: "://bad"},
	}

	fxApp := fx.New(
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(test.DiscardLogger()),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(&session.Store{}),
			fx.Replace(fx.Annotate(test.NewMemoryStore(), fx.As(new(repository.Store)))),
			fx.Replace(fx.Annotate(test.NewSessionStoreStub(), fx.As(new(usecase.SessionStore)))),
			fx.NopLogger,
		),
		fx.Invoke(func(*app.StorefrontFacade) {}),
	)
	if fxApp.Err() == nil {
		t.Fatal("expected invalid discord api url to fail graph construction")
	}
}
