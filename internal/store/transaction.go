package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
)

type transactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *transactionStore {
	return &transactionStore{db: db}
}

const transactionColumns = `transaction_id, user_id, transaction_date, post_date, description,
	category, type, amount, memo, account_id, source, created_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var t models.Transaction
	var txDate, postDate, amount, createdAt, updatedAt string
	var category, txType, memo sql.NullString

	err := row.Scan(&t.TransactionID, &t.UserID, &txDate, &postDate, &t.Description,
		&category, &txType, &amount, &memo, &t.AccountID, &t.Source, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.TransactionDate = parseDate(txDate)
	t.PostDate = parseDate(postDate)
	t.Amount = parseAmount(amount)
	t.Category = stringPtr(category)
	t.Type = stringPtr(txType)
	t.Memo = stringPtr(memo)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

// ExistingIDs returns the subset of ids already persisted for this user.
// One round trip regardless of batch size.
func (s *transactionStore) ExistingIDs(ctx context.Context, userID string, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(ids) == 0 {
		return existing, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT transaction_id FROM transactions WHERE user_id = ? AND transaction_id IN (`+placeholders+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = struct{}{}
	}
	return existing, rows.Err()
}

// InsertBatch persists transactions inside a single database transaction so
// an import batch commits all rows or none.
func (s *transactionStore) InsertBatch(ctx context.Context, txs []*models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.PrepareContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := nowText()
	for _, t := range txs {
		created := now
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.UTC().Format(time.RFC3339)
		}
		_, err := stmt.ExecContext(ctx,
			t.TransactionID, t.UserID, t.TransactionDate.String(), t.PostDate.String(),
			t.Description, nullString(t.Category), nullString(t.Type), t.Amount.String(),
			nullString(t.Memo), t.AccountID, t.Source, created, now)
		if err != nil {
			return err
		}
	}

	return dbtx.Commit()
}

func (s *transactionStore) Get(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = ? AND transaction_id = ?`,
		userID, transactionID)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (s *transactionStore) Query(ctx context.Context, userID string, q dto.TransactionQuery) ([]*models.Transaction, int, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}

	if q.StartDate != nil {
		where = append(where, "transaction_date >= ?")
		args = append(args, q.StartDate.String())
	}
	if q.EndDate != nil {
		where = append(where, "transaction_date <= ?")
		args = append(args, q.EndDate.String())
	}
	if q.Description != nil {
		where = append(where, "LOWER(description) LIKE ?")
		args = append(args, "%"+strings.ToLower(*q.Description)+"%")
	}
	if q.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *q.Category)
	}
	if q.AccountID != nil {
		where = append(where, "account_id = ?")
		args = append(args, *q.AccountID)
	}
	// Amounts are stored as text, so range filters compare numerically.
	if q.AmountMin != nil {
		where = append(where, "CAST(amount AS REAL) >= ?")
		args = append(args, q.AmountMin.InexactFloat64())
	}
	if q.AmountMax != nil {
		where = append(where, "CAST(amount AS REAL) <= ?")
		args = append(args, q.AmountMax.InexactFloat64())
	}

	clause := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, q.Offset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE `+clause+`
		 ORDER BY transaction_date DESC, transaction_id LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	return txs, total, rows.Err()
}

// Update applies the non-nil fields and reports whether a row matched.
func (s *transactionStore) Update(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (bool, error) {
	set := []string{"updated_at = ?"}
	args := []any{nowText()}

	if req.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Type != nil {
		set = append(set, "type = ?")
		args = append(args, *req.Type)
	}
	if req.Amount != nil {
		set = append(set, "amount = ?")
		args = append(args, req.Amount.String())
	}
	if req.Memo != nil {
		set = append(set, "memo = ?")
		args = append(args, *req.Memo)
	}

	args = append(args, userID, transactionID)
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET `+strings.Join(set, ", ")+` WHERE user_id = ? AND transaction_id = ?`,
		args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *transactionStore) Delete(ctx context.Context, userID, transactionID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND transaction_id = ?`,
		userID, transactionID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
