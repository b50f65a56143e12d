package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/bootstrap"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/config"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/handlers"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/middleware"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/response"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/router"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/services"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/store"
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
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.DB)
	tstore := store.NewTransactionStore(bs.DB)
	rstore := store.NewRecurringStore(bs.DB)
	istore := store.NewImportStore(bs.DB)

	// services
	userv := services.NewUserService(ustore)
	tserv := services.NewTransactionService(tstore)
	rserv := services.NewRecurringService(rstore)
	iserv := services.NewImportService(tstore, istore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.UserSvc = userv
	deps.TransactionSvc = tserv
	deps.RecurringSvc = rserv
	deps.ImportSvc = iserv

	// router
	auth := middleware.NewMiddleware(bs.JWKS)
	r := router.NewRouter(deps, auth)

	bs.Log.Info("api listening", "addr", cfg.ListenAddr)
	err = http.ListenAndServe(cfg.ListenAddr, r)
	exitOnError("server start failed", err, bs.Log)
}
