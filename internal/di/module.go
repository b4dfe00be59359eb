package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/gymrat/internal/app"
	"github.com/polkiloo/gymrat/internal/config"
	"github.com/polkiloo/gymrat/internal/domain/repository"
	"github.com/polkiloo/gymrat/internal/logger"
	"github.com/polkiloo/gymrat/internal/metrics"
	"github.com/polkiloo/gymrat/internal/server/http/handlers"
	"github.com/polkiloo/gymrat/internal/server/http/router"
	"github.com/polkiloo/gymrat/internal/storage"
	"github.com/polkiloo/gymrat/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		storage.Module,
		usecase.Module,
		fx.Provide(
			func(m *metrics.Metrics) usecase.Recorder { return m },
			func(g repository.Gateway) app.HealthChecker { return g },
			func(f *app.GymFacade) handlers.GymFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
