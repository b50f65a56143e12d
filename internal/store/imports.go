package store

import (
	"context"
	"database/sql"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
)

type importStore struct {
	db *sql.DB
}

func NewImportStore(db *sql.DB) *importStore {
	return &importStore{db: db}
}

// InsertHistory appends one audit row. History rows are never mutated.
func (s *importStore) InsertHistory(ctx context.Context, h *models.ImportHistory) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_history (import_id, user_id, import_type, account_id, filename,
			rows_total, rows_inserted, rows_skipped, status, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ImportID, h.UserID, h.ImportType, h.AccountID, nullString(h.Filename),
		h.RowsTotal, h.RowsInserted, h.RowsSkipped, h.Status, nullString(h.ErrorMessage),
		nowText())
	return err
}

func (s *importStore) ListHistory(ctx context.Context, userID string, limit, offset int) ([]*models.ImportHistory, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT import_id, user_id, import_type, account_id, filename,
			rows_total, rows_inserted, rows_skipped, status, error_message, created_at
		FROM import_history WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*models.ImportHistory
	for rows.Next() {
		var h models.ImportHistory
		var filename, errorMessage sql.NullString
		var createdAt string

		err := rows.Scan(&h.ImportID, &h.UserID, &h.ImportType, &h.AccountID, &filename,
			&h.RowsTotal, &h.RowsInserted, &h.RowsSkipped, &h.Status, &errorMessage, &createdAt)
		if err != nil {
			return nil, err
		}

		h.Filename = stringPtr(filename)
		h.ErrorMessage = stringPtr(errorMessage)
		h.CreatedAt = parseTime(createdAt)
		history = append(history, &h)
	}
	return history, rows.Err()
}
