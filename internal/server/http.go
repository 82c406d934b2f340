package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizhub/trivia-api/internal/config"
	"github.com/quizhub/trivia-api/internal/quiz"
	"github.com/quizhub/trivia-api/internal/trivia"
)

// NewHTTPServer wires all routes for the API service. Method patterns let the
// mux answer 405 natively for unmatched methods on known paths.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, triviaHandlers *trivia.HTTPHandlers, quizHandlers *quiz.HTTPHandlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /categories", triviaHandlers.GetCategories)
	mux.HandleFunc("GET /categories/{id}/questions", triviaHandlers.CategoryQuestions)
	mux.HandleFunc("GET /questions", triviaHandlers.ListQuestions)
	mux.HandleFunc("POST /questions", triviaHandlers.CreateOrSearchQuestions)
	mux.HandleFunc("DELETE /questions/{id}", triviaHandlers.DeleteQuestion)
	mux.HandleFunc("POST /quizzes", quizHandlers.Play)

	handler := RequestID(logger, CORS(cfg.CORS, Metrics(mux)))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}
