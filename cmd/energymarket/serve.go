package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpHandler "energy-marketplace/internal/adapter/http/handler"
	"energy-marketplace/internal/adapter/http/middleware"
	"energy-marketplace/internal/adapter/ledger"
	"energy-marketplace/internal/adapter/storage/postgres"
	redisStorage "energy-marketplace/internal/adapter/storage/redis"
	"energy-marketplace/internal/adapter/wallet"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/internal/service"
	"energy-marketplace/pkg/logger"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the marketplace HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// pruneInterval is how often idle sessions are dropped.
const pruneInterval = 5 * time.Minute

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()
	cfg, log := a.cfg, a.log

	// The ledger client executes what the wallet signs.
	bridge, err := wallet.Dial(ctx, cfg.Wallet.BridgeURL, a.ledger, logger.Component(log, "wallet"))
	if err != nil {
		return fmt.Errorf("dial wallet bridge: %w", err)
	}
	defer bridge.Close()

	deps := service.ControllerDeps{
		Wallet:     bridge,
		Finality:   a.ledger,
		Exclusions: a.exclusions,
		Metrics:    a.metrics,
		Market:     a.market,
	}

	if cfg.Database.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		deps.Journal = postgres.NewJournalRepo(pool)
		a.health = append(a.health, postgres.NewHealthCheck(pool))
	}

	if cfg.Webhook.URL != "" {
		notifier := service.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Secret,
			service.NewHMACSignatureService(), &http.Client{Timeout: 10 * time.Second},
			logger.Component(log, "webhook"))
		defer notifier.Close()
		deps.Notifier = notifier
	}

	cascade := service.NewRefetchCascade(a.marketSvc, cfg.Cascade.Intervals, a.metrics, logger.Component(log, "cascade"))
	defer cascade.Close()
	deps.Cascade = cascade

	secret := cfg.Session.Secret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		log.Warn().Msg("session.secret not set, using a random secret: tokens will not survive a restart")
	}
	tokenSvc := service.NewJWTTokenService(secret, cfg.Session.Expiry, cfg.Session.Issuer)

	bootstrap := service.NewProfileBootstrapper(a.marketSvc, a.attempts, logger.Component(log, "bootstrap"))
	sessions := service.NewSessionManager(deps, tokenSvc, a.marketSvc, bootstrap, logger.Component(log, "sessions"))
	go sessions.RunPruner(ctx, pruneInterval, cfg.Session.Expiry)

	var limiter middleware.Limiter
	if a.redis != nil {
		limiter = redisStorage.NewRateLimitStore(a.redis, "")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Market:         a.marketSvc,
		Actions:        sessions,
		TokenSvc:       tokenSvc,
		RateLimitStore: limiter,
		Metrics:        a.metrics,
		HealthCheckers: a.health,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("network", cfg.Network.Name).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Let in-flight actions reach a terminal state before their collaborators close.
	done := make(chan struct{})
	go func() {
		sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn().Msg("actions still in flight at shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

var (
	_ ports.WalletConnector     = (*wallet.Bridge)(nil)
	_ ports.TransactionExecutor = (*ledger.Client)(nil)
	_ ports.FinalityWaiter      = (*ledger.Client)(nil)
)
