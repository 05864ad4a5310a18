package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"energy-marketplace/config"
	"energy-marketplace/internal/adapter/ledger"
	"energy-marketplace/internal/adapter/metrics"
	"energy-marketplace/internal/adapter/storage/memory"
	redisStorage "energy-marketplace/internal/adapter/storage/redis"
	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/internal/service"
	"energy-marketplace/pkg/logger"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	market  domain.Market
	ledger  *ledger.Client
	redis   *goredis.Client // nil when redis is disabled
	metrics *metrics.Prometheus

	exclusions ports.ExclusionStore
	attempts   ports.AttemptStore
	cache      ports.SnapshotCache // nil when redis is disabled
	marketSvc  *service.MarketService

	health  []ports.HealthChecker
	closers []func()
}

// newApp loads the config and connects the ledger and, when enabled, Redis.
// One-shot commands keep stdout for their output and log to stderr.
func newApp(ctx context.Context, oneShot bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if oneShot && !cfg.Log.Pretty {
		log = logger.NewWithWriter(cfg.Log.Level, os.Stderr)
	}

	a := &app{
		cfg: cfg,
		log: log,
		market: domain.Market{
			PackageID:     cfg.Network.PackageID(),
			Module:        cfg.Network.Module,
			MarketplaceID: cfg.Network.MarketplaceID,
		},
		metrics: metrics.NewPrometheus(),
	}
	if a.market.MarketplaceID == "" {
		a.log.Warn().Str("network", cfg.Network.Name).Msg("marketplace id not configured, every action will fail")
	}

	a.ledger, err = ledger.Dial(ctx, cfg.Ledger.RPCURL, ledger.Config{
		RequestsPerSecond: cfg.Ledger.RequestsPerSecond,
		Burst:             cfg.Ledger.Burst,
		MaxPages:          cfg.Ledger.MaxPages,
		FinalityTimeout:   cfg.Ledger.FinalityTimeout,
		PollInterval:      cfg.Ledger.PollInterval,
	}, logger.Component(a.log, "ledger"))
	if err != nil {
		return nil, fmt.Errorf("dial ledger: %w", err)
	}
	a.closers = append(a.closers, a.ledger.Close)
	a.health = append(a.health, ledger.NewHealthCheck(a.ledger))

	if err := a.connectStores(ctx); err != nil {
		a.close()
		return nil, err
	}
	a.exclusions = service.NewSessionExclusions(a.exclusions, logger.Component(a.log, "exclusions"))

	aggregator := service.NewListingAggregator(a.ledger, a.market, cfg.Ledger.EventLimit, a.metrics, logger.Component(a.log, "aggregator"))
	a.marketSvc = service.NewMarketService(a.ledger, aggregator, a.exclusions, a.cache, a.market, service.MarketServiceConfig{
		EventLimit:     cfg.Ledger.EventLimit,
		ResponseBudget: cfg.Server.ResponseBudget,
		SnapshotTTL:    cfg.Cache.SnapshotTTL,
	}, logger.Component(a.log, "market"))
	return a, nil
}

// connectStores picks Redis-backed session stores when Redis is enabled and
// in-process ones otherwise.
func (a *app) connectStores(ctx context.Context) error {
	if !a.cfg.Redis.Enabled {
		a.exclusions = memory.NewExclusionStore(a.cfg.Exclusion.Capacity)
		a.attempts = memory.NewAttemptStore()
		return nil
	}

	rdb, err := redisStorage.NewClient(ctx, a.cfg.Redis, a.log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	a.redis = rdb
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	a.health = append(a.health, redisStorage.NewHealthCheck(rdb))

	// Session state lives under a per-boot namespace: sessions start idle after a
	// restart, so their exclusions and attempt marks must not carry over.
	boot := uuid.NewString()[:8]
	a.exclusions = redisStorage.NewExclusionStore(rdb, boot, a.cfg.Exclusion.Capacity, a.cfg.Exclusion.TTL)
	a.attempts = redisStorage.NewAttemptStore(rdb, boot, a.cfg.Session.Expiry)
	a.cache = redisStorage.NewSnapshotCache(rdb, a.cfg.Network.Name)
	a.log.Info().Str("boot", boot).Msg("redis session stores enabled")
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// shutdownTimeout bounds graceful shutdown of the HTTP server and background work.
const shutdownTimeout = 10 * time.Second
