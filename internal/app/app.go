package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sipalaciosv/dupe/internal/adapter/blob"
	"github.com/sipalaciosv/dupe/internal/adapter/postgres"
	dupepg "github.com/sipalaciosv/dupe/internal/adapter/postgres/dupe"
	expeditionpg "github.com/sipalaciosv/dupe/internal/adapter/postgres/expedition"
	grouppg "github.com/sipalaciosv/dupe/internal/adapter/postgres/group"
	offerpg "github.com/sipalaciosv/dupe/internal/adapter/postgres/offer"
	originalpg "github.com/sipalaciosv/dupe/internal/adapter/postgres/original"
	storepg "github.com/sipalaciosv/dupe/internal/adapter/postgres/store"
	tokenpg "github.com/sipalaciosv/dupe/internal/adapter/postgres/token"
	userpg "github.com/sipalaciosv/dupe/internal/adapter/postgres/user"
	votepg "github.com/sipalaciosv/dupe/internal/adapter/postgres/vote"
	"github.com/sipalaciosv/dupe/internal/adapter/provider/google"
	jwtauth "github.com/sipalaciosv/dupe/internal/auth"
	"github.com/sipalaciosv/dupe/internal/config"
	authsvc "github.com/sipalaciosv/dupe/internal/service/auth"
	dupesvc "github.com/sipalaciosv/dupe/internal/service/dupe"
	expeditionsvc "github.com/sipalaciosv/dupe/internal/service/expedition"
	groupsvc "github.com/sipalaciosv/dupe/internal/service/group"
	offersvc "github.com/sipalaciosv/dupe/internal/service/offer"
	originalsvc "github.com/sipalaciosv/dupe/internal/service/original"
	storesvc "github.com/sipalaciosv/dupe/internal/service/store"
	usersvc "github.com/sipalaciosv/dupe/internal/service/user"
	votesvc "github.com/sipalaciosv/dupe/internal/service/vote"
	"github.com/sipalaciosv/dupe/internal/transport/middleware"
	"github.com/sipalaciosv/dupe/internal/transport/rest"
)

// tokenCleanupInterval is how often expired refresh tokens are purged.
const tokenCleanupInterval = time.Hour

// Run is the application entry point. It loads configuration, connects to
// the database, runs migrations, wires repositories, services, and handlers,
// and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	blobs, err := blob.NewFSStore(cfg.Blob)
	if err != nil {
		return fmt.Errorf("init blob store: %w", err)
	}

	users := userpg.New(pool)
	tokens := tokenpg.New(pool)
	groups := grouppg.New(pool)
	originals := originalpg.New(pool)
	dupes := dupepg.New(pool)
	votes := votepg.New(pool)
	offers := offerpg.New(pool)
	expeditions := expeditionpg.New(pool)
	stores := storepg.New(pool)
	txm := postgres.NewTxManager(pool)

	oauth := google.NewVerifier(
		cfg.Auth.GoogleClientID,
		cfg.Auth.GoogleClientSecret,
		cfg.Auth.GoogleRedirectURI,
		logger,
	)
	jwt := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, tokens, oauth, jwt, cfg.Auth)
	userService := usersvc.NewService(logger, users)
	groupService := groupsvc.NewService(logger, groups, users, txm)
	originalService := originalsvc.NewService(logger, originals, groups, blobs)
	dupeService := dupesvc.NewService(logger, dupes, originals, groups, blobs)
	voteService := votesvc.NewService(logger, votes, dupes, originals, groups)
	offerService := offersvc.NewService(logger, offers, dupes, groups)
	expeditionService := expeditionsvc.NewService(logger, expeditions, groups)
	storeService := storesvc.NewService(logger, stores, groups)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	mux := rest.NewRouter(rest.Handlers{
		Auth:       rest.NewAuthHandler(authService, logger),
		User:       rest.NewUserHandler(userService, logger),
		Group:      rest.NewGroupHandler(groupService, logger),
		Original:   rest.NewOriginalHandler(originalService, logger),
		Dupe:       rest.NewDupeHandler(dupeService, logger),
		Vote:       rest.NewVoteHandler(voteService, logger),
		Offer:      rest.NewOfferHandler(offerService, logger),
		Expedition: rest.NewExpeditionHandler(expeditionService, logger),
		Store:      rest.NewStoreHandler(storeService, logger),
		Public:     rest.NewPublicHandler(groupService, originalService, dupeService, logger),
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Metrics:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		BlobDir:    blobs.Dir(),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Logger(logger),
		metrics.Instrument(),
		limiter.Limit(cfg.Server.RatePerMinute),
		middleware.Auth(authService),
	)(mux)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go cleanupTokensLoop(ctx, logger, authService)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// cleanupTokensLoop periodically purges expired and revoked refresh tokens.
func cleanupTokensLoop(ctx context.Context, logger *slog.Logger, svc *authsvc.Service) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := svc.CleanupExpiredTokens(ctx)
			if err != nil {
				logger.Warn("token cleanup failed", slog.String("error", err.Error()))
				continue
			}
			if deleted > 0 {
				logger.Info("cleaned up refresh tokens", slog.Int("deleted", deleted))
			}
		}
	}
}
