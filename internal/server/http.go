package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mbecker/reloquiz/internal/auth"
	"github.com/mbecker/reloquiz/internal/config"
	"github.com/mbecker/reloquiz/internal/logging"
	"github.com/mbecker/reloquiz/internal/quiz"
	"github.com/mbecker/reloquiz/internal/quota"
)

// NewHTTPServer wires base routes (health, metrics) and the
// questionnaire API for the service.
func NewHTTPServer(
	cfg *config.App,
	logger zerolog.Logger,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	authSvc *auth.Service,
	authHandlers *auth.HTTPHandlers,
	quizHandlers *quiz.HTTPHandlers,
	quotaHandlers *quota.HTTPHandlers,
) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDependencies(r.Context(), pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/auth/wechat/login", authHandlers.WeChatLogin)
	if cfg.Env != "production" {
		mux.HandleFunc("/v1/auth/dev/login", authHandlers.DevLogin)
	}

	requireAuth := auth.RequireAuth(authSvc, logger)
	mux.Handle("/v1/questionnaire", requireAuth(http.HandlerFunc(quizHandlers.GetQuestionnaire)))
	mux.Handle("/v1/questionnaire/permission", requireAuth(http.HandlerFunc(quizHandlers.CheckPermission)))
	mux.Handle("/v1/responses", requireAuth(http.HandlerFunc(quizHandlers.Submit)))
	mux.Handle("/v1/responses/", requireAuth(http.HandlerFunc(quizHandlers.GetResponse)))
	mux.Handle("/v1/share/reward", requireAuth(http.HandlerFunc(quotaHandlers.ShareReward)))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: withRequestLogger(logger, mux),
	}
}

// withRequestLogger tags every request with an id and stores the scoped
// logger in the request context.
func withRequestLogger(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logger.With().
			Str("request_id", uuid.NewString()).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		ctx := logging.IntoContext(r.Context(), reqLogger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return redisClient.Ping(ctx).Err()
}
