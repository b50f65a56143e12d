package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/config"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/handlers"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/middleware"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/response"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/warehouse"
	"github.com/eyeonits/finapp-personal-finance-tracker/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	if err != nil {
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, logger.NewJSONLineHandler)

	wh, err := warehouse.New(context.Background(), cfg.WarehouseProject, cfg.WarehouseDataset)
	exitOnError("warehouse client failed", err, log)
	defer wh.Close()

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = log
	deps.ResponseHandler = response.New(log)
	deps.DashboardSvc = wh

	dsh := handlers.NewDashboardHandlers(deps)
	hh := handlers.NewHealthHandlers(deps)

	lm := middleware.NewLoggerMiddleware(log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Get("/health", hh.Health)
	r.Mount("/dashboard", dsh.DashboardRoutes())

	log.Info("dashboard listening", "addr", cfg.ListenAddr)
	err = http.ListenAndServe(cfg.ListenAddr, r)
	exitOnError("server start failed", err, log)
}
