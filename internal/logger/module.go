package logger

import "go.uber.org/fx"

// Module wires slog logger configured from application config.
var Module = fx.Provide(fromConfig)
