package config

import "go.uber.org/fx"

// Module exposes configuration loader for fx graphs. Callers supply Args.
var Module = fx.Provide(Load)
