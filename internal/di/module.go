package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/adapter/discord"
	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/logger"
	"github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/server/http/router"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/storage/session"
	"github.com/polkiloo/storefront/internal/usecase"
)

const healthGroup = `group:"health"`

// Module assembles the full storefront graph. Extra options are appended last
// so callers can replace any component.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		session.Module,
		discord.Module,
		usecase.Module,
		fx.Provide(
			fx.Annotate(postgresHealth, fx.ResultTags(healthGroup)),
			fx.Annotate(sessionHealth, fx.ResultTags(healthGroup)),
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

func postgresHealth(s *postgres.Storage) app.HealthCheck {
	return app.HealthCheck{Name: "postgres", Check: s.HealthCheck}
}

func sessionHealth(s *session.Store) app.HealthCheck {
	return app.HealthCheck{Name: "redis", Check: s.HealthCheck}
}
