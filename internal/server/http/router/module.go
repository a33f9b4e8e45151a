package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
)

// Module builds the gin engine on top of the application facade.
var Module = fx.Provide(
	Setup,
	func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f },
)
