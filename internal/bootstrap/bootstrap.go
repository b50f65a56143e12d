package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/MicahParks/keyfunc"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/config"
	"github.com/eyeonits/finapp-personal-finance-tracker/pkg/logger"
)

type Bootstrap struct {
	Log  *slog.Logger
	DB   *sql.DB
	JWKS *keyfunc.JWKS
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewJSONLineHandler)
	bs.DB, err = InitSQLite(cfg.DatabasePath)
	if err != nil {
		return bs, err
	}
	bs.JWKS, err = InitJWKS(cfg.JWKSURL, cfg.JWKSRefresh, bs.Log)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.JWKS != nil {
		bs.JWKS.EndBackground()
	}
	if bs.DB != nil {
		bs.DB.Close()
	}
}
