// Package apptest assembles an in-memory storefront for HTTP-level tests.
package apptest

import (
	"context"
	"testing"
	"time"

	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Env bundles the facade with the stubs behind it.
type Env struct {
	Store    *test.MemoryStore
	Notifier *test.NotifierStub
	Sessions *test.SessionStoreStub
	Tokens   *auth.JWTStrategy
	Health   error
	Facade   *app.StorefrontFacade
}

// Options tune the assembled environment.
type Options struct {
	Provider           usecase.IdentityProvider
	ReferralPercentage float64
	StartingCredits    float64
}

// New builds every use case on top of a MemoryStore.
func New(opts Options) *Env {
	if opts.Provider == nil {
		opts.Provider = test.IdentityProviderStub{}
	}
	env := &Env{
		Store:    test.NewMemoryStore(),
		Notifier: &test.NotifierStub{},
		Sessions: test.NewSessionStoreStub(),
		Tokens:   auth.NewJWTStrategy("test-secret", auth.Options{TTL: time.Hour}),
	}
	logger := test.DiscardLogger()

	ledger := usecase.NewLedgerUseCase(env.Store)
	authUC := usecase.NewAuthUseCase(env.Store, opts.Provider, env.Sessions, env.Tokens, env.Notifier, logger,
		usecase.AuthSettings{StartingCredits: opts.StartingCredits})
	orderUC := usecase.NewOrderUseCase(env.Store, ledger, env.Notifier, logger,
		usecase.OrderSettings{ReferralPercentage: opts.ReferralPercentage})
	check := app.HealthCheck{
		Name:  "memory",
		Check: func(context.Context) error { return env.Health },
	}

	env.Facade = app.NewStorefrontFacade(app.FacadeParams{
		Auth:          authUC,
		Users:         usecase.NewUserUseCase(env.Store, ledger),
		Ledger:        ledger,
		Orders:        orderUC,
		Redemptions:   usecase.NewRedemptionUseCase(env.Store, ledger, env.Notifier, logger),
		Products:      usecase.NewProductUseCase(env.Store),
		Rewards:       usecase.NewRewardUseCase(env.Store),
		Announcements: usecase.NewAnnouncementUseCase(env.Store),
		Checks:        []app.HealthCheck{check},
	})
	return env
}

// SeedUser stores a user with role and credits and returns its id and token.
func (e *Env) SeedUser(t *testing.T, name string, role model.Role, credits float64) (int64, string) {
	t.Helper()
	id := e.Store.SeedUser(model.User{
		DiscordID:    "discord-" + name,
		Username:     name,
		Role:         role,
		Credits:      credits,
		ReferralCode: referralCode(name),
	})
	token, err := e.Tokens.IssueToken(id)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return id, token
}

func referralCode(name string) string {
	code := []byte("XXXXXXXX")
	for i := 0; i < len(name) && i < len(code); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		code[i] = c
	}
	return string(code)
}
