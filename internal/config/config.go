package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is loaded from an optional TOML file (CONFIGFILE) with environment
// variables taking precedence over file values.
type Config struct {
	ListenAddr   string `toml:"listen_addr"`
	LogLevel     string `toml:"log_level"`
	DatabasePath string `toml:"database_path"`

	JWKSURL            string        `toml:"jwks_url"`
	JWKSRefreshMinutes int           `toml:"jwks_refresh_minutes"`
	JWKSRefresh        time.Duration `toml:"-"`

	WarehouseProject string `toml:"warehouse_project"`
	WarehouseDataset string `toml:"warehouse_dataset"`
}

func New() (*Config, error) {
	cfg := &Config{
		ListenAddr:         ":8080",
		LogLevel:           "info",
		DatabasePath:       "finapp.db",
		JWKSRefreshMinutes: 60,
	}

	if path := os.Getenv("CONFIGFILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	overrideString(&cfg.ListenAddr, "LISTENADDR")
	overrideString(&cfg.LogLevel, "LOGLEVEL")
	overrideString(&cfg.DatabasePath, "DATABASEPATH")
	overrideString(&cfg.JWKSURL, "JWKSURL")
	overrideInt(&cfg.JWKSRefreshMinutes, "JWKSREFRESHMINUTES")
	overrideString(&cfg.WarehouseProject, "WAREHOUSEPROJECT")
	overrideString(&cfg.WarehouseDataset, "WAREHOUSEDATASET")

	cfg.JWKSRefresh = time.Duration(cfg.JWKSRefreshMinutes) * time.Minute
	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
