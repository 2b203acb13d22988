package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xcarvalho/leadtrack/internal/config"
	"github.com/xcarvalho/leadtrack/internal/infra/database"
	"github.com/xcarvalho/leadtrack/internal/infra/http/handlers"
	"github.com/xcarvalho/leadtrack/internal/infra/http/middleware"
	"github.com/xcarvalho/leadtrack/internal/logger"
	"github.com/xcarvalho/leadtrack/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer log.Sync()

	// A corrupt storage file is fatal here: writing over it would be
	// silent data loss.
	repo := database.NewLeadFileRepository(cfg.DataFile)
	store, err := usecase.NewLeadStore(context.Background(), repo)
	if err != nil {
		log.Fatal("failed to load lead storage", zap.String("file", cfg.DataFile), zap.Error(err))
	}

	leadHandler := handlers.NewLeadHandler(store, log)
	statsHandler := handlers.NewStatsHandler(store)
	exportHandler := handlers.NewExportHandler(store, log)
	healthHandler := handlers.NewHealthHandler(cfg.DataFile)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/health", healthHandler.Handle)
	r.Route("/api/leads", func(r chi.Router) {
		r.Get("/", leadHandler.List)
		r.Post("/", leadHandler.Create)
		r.Get("/{id}", leadHandler.Get)
		r.Put("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
	})
	r.Get("/api/stats", statsHandler.GetStats)
	r.Get("/api/tags", statsHandler.GetTags)
	r.Get("/api/export", exportHandler.Export)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Info("lead tracker listening", zap.String("addr", addr), zap.String("data_file", cfg.DataFile))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
