package main

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/indubai/portal-api/infrastructure/cache/redis"
	"github.com/indubai/portal-api/infrastructure/database/postgres"
	"github.com/indubai/portal-api/infrastructure/integrator/zoho"
	"github.com/indubai/portal-api/infrastructure/integrator/zoho/zohoclient"
	"github.com/indubai/portal-api/infrastructure/repository"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/scheduler"
	"github.com/indubai/portal-api/internal/usecases/summarizing"
	"github.com/indubai/portal-api/pkg/clock"
)

// app holds the components shared by the serve and sync commands.
type app struct {
	db         *postgres.Connection
	redis      *goredis.Client
	zoho       zoho.ZohoIntegrator
	summarizer summarizing.Summarizer
	snapshots  repository.ZohoSnapshotRepository
	syncer     *scheduler.ZohoSnapshotSyncService
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing redis client")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing postgres connection")
		}
	}
}

// newZoho builds the Zoho integrator. The token cache is shared through Redis when
// REDIS_ADDR is set.
func newZoho(ctx context.Context, cfg *config.Config, clk clock.Clock) (zoho.ZohoIntegrator, *goredis.Client, error) {
	rdb, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}

	var store zohoclient.TokenStore
	if rdb != nil {
		store = redis.NewTokenStore(rdb, cfg.Redis.TokenPrefix, clk)
		logrus.WithField("addr", cfg.Redis.Addr).Info("Zoho token cache shared through redis")
	}

	tokens := zohoclient.NewTokenManager(cfg, nil, clk, store)
	client := zohoclient.NewClient(cfg, nil)

	return zoho.New(cfg, client, tokens), rdb, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clk := clock.SystemClock{}

	db, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	zohoService, rdb, err := newZoho(ctx, cfg, clk)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	clientRepo := repository.NewClientRepository(db)
	snapshotRepo := repository.NewZohoSnapshotRepository(db)
	summarizer := summarizing.NewService(cfg, zohoService, clk)

	syncer := scheduler.NewZohoSnapshotSyncService(clientRepo, snapshotRepo, zohoService, summarizer, cfg, clk)

	return &app{
		db:         db,
		redis:      rdb,
		zoho:       zohoService,
		summarizer: summarizer,
		snapshots:  snapshotRepo,
		syncer:     syncer,
	}, nil
}
