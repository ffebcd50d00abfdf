package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wattonenergy/enersim/internal/config"
	"github.com/wattonenergy/enersim/internal/db"
	"github.com/wattonenergy/enersim/internal/insights"
	"github.com/wattonenergy/enersim/internal/migrations"
	"github.com/wattonenergy/enersim/internal/seed"
	"github.com/wattonenergy/enersim/internal/store"
)

type server struct {
	auth     *authService
	db       *sql.DB
	store    *store.Store
	insights *insights.Generator
	logger   *zap.Logger
}

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
		stats, err := seed.Run(database)
		if err != nil {
			logger.Fatal("failed to seed demo portfolio", zap.Error(err))
		}
		if stats.Inserts > 0 {
			logger.Info("seeded demo portfolio", zap.Int("inserts", stats.Inserts))
		}
	}

	srv := &server{
		auth:     newAuthService(cfg.JWTSecret, cfg.ConsultantEmail, cfg.ConsultantPassword),
		db:       database,
		store:    store.New(database),
		insights: insights.NewGenerator(cfg.GeminiAPIKey),
		logger:   logger,
	}

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/login", s.handleLogin)
	r.Get("/api/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/api/simulations", s.handleSimulate)
		r.Post("/api/simulations/recalculate", s.handleRecalculate)
		r.Post("/api/simulations/prescriptive", s.handlePrescriptive)
		r.Post("/api/insights", s.handleInsights)
		r.Get("/api/market", s.handleMarket)
		r.Post("/api/clients", s.handleClientSave)
		r.Get("/api/clients", s.handleClientList)
		r.Get("/api/clients/{id}", s.handleClientGet)
		r.Delete("/api/clients/{id}", s.handleClientDelete)
	})

	return r
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsDev() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
