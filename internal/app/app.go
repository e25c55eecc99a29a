package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mbecker/reloquiz/internal/auth"
	"github.com/mbecker/reloquiz/internal/auth/jwt"
	"github.com/mbecker/reloquiz/internal/config"
	"github.com/mbecker/reloquiz/internal/db/repository"
	"github.com/mbecker/reloquiz/internal/logging"
	"github.com/mbecker/reloquiz/internal/quiz"
	"github.com/mbecker/reloquiz/internal/quota"
	"github.com/mbecker/reloquiz/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	userRepo := repository.NewUserRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	ruleRepo := repository.NewRuleRepository(pool, logger)
	responseRepo := repository.NewResponseRepository(pool)

	wechatClient := auth.NewWeChatClient(cfg.WeChat.AppID, cfg.WeChat.AppSecret, nil)
	authSvc := auth.NewService(userRepo, wechatClient, auth.ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			Secret: []byte(cfg.Security.JWTSecret),
			TTL:    cfg.Security.TokenTTL,
			Issuer: cfg.Name,
		},
		DevLogin: cfg.Env != "production",
	}, logger)
	authHandlers := auth.NewHTTPHandlers(authSvc, logger)

	limiter := quota.NewLimiter(redisClient, quota.Options{
		Enabled:       cfg.Quota.DailyLimitEnabled,
		DailyAttempts: cfg.Quota.DailyAttempts,
	}, logger)
	rewarder := quota.NewShareRewarder(userRepo, limiter, logger)
	quotaHandlers := quota.NewHTTPHandlers(rewarder, logger)

	ruleCache := quiz.NewRuleCache(ruleRepo, redisClient, cfg.Quiz.RuleCacheTTL, logger)
	quizSvc := quiz.NewService(questionRepo, ruleCache, responseRepo, limiter, quiz.ServiceOptions{
		RetryAttempts: cfg.Quiz.StoreRetryAttempts,
		RetryBackoff:  cfg.Quiz.StoreRetryBackoff,
	}, logger)
	quizHandlers := quiz.NewHTTPHandlers(quizSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, authSvc, authHandlers, quizHandlers, quotaHandlers)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
