package bootstrap

import (
	"database/sql"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/store"
)

// InitSQLite opens the database and applies migrations.
func InitSQLite(path string) (*sql.DB, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
