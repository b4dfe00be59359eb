package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/gymrat/internal/config"
	"github.com/polkiloo/gymrat/internal/domain/repository"
	"github.com/polkiloo/gymrat/internal/storage/postgres"
	"github.com/polkiloo/gymrat/internal/storage/rest"
)

// Module wires the configured persistence gateway and its repositories.
var Module = fx.Options(
	fx.Provide(newGateway),
	fx.Provide(
		func(g repository.Gateway) repository.MemberRepository { return g.Members() },
		func(g repository.Gateway) repository.PaymentRepository { return g.Payments() },
	),
	fx.Invoke(registerLifecycle),
)

type gatewayParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

var openPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (repository.Gateway, error) {
	storage, err := postgres.New(ctx, dsn, logger)
	if err != nil {
		return nil, err
	}
	return storage, nil
}

var openREST = func(cfg *config.Config, logger *slog.Logger) (repository.Gateway, error) {
	client, err := rest.New(cfg.StoreURL, cfg.StoreKey, cfg.StoreTimeout, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newGateway(p gatewayParams) (repository.Gateway, error) {
	logger := p.Logger.With(slog.String("backend", p.Config.StoreBackend))

	var (
		gateway repository.Gateway
		err     error
	)
	switch p.Config.StoreBackend {
	case config.BackendPostgres:
		gateway, err = openPostgres(p.Ctx, p.Config.DatabaseURI, logger)
	case config.BackendREST:
		gateway, err = openREST(p.Config, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", p.Config.StoreBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", p.Config.StoreBackend, err)
	}

	logger.Info("store connected")
	return gateway, nil
}

func registerLifecycle(lc fx.Lifecycle, gateway repository.Gateway) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			gateway.Close()
			return nil
		},
	})
}
