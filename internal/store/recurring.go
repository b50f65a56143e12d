package store

import (
	"context"
	"database/sql"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
)

type recurringStore struct {
	db *sql.DB
}

func NewRecurringStore(db *sql.DB) *recurringStore {
	return &recurringStore{db: db}
}

const paymentColumns = `payment_id, user_id, name, description, amount, frequency, due_day,
	category, payee, account_id, start_date, end_date, is_active, reminder_days, auto_pay,
	notes, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.RecurringPayment, error) {
	var p models.RecurringPayment
	var amount, startDate, createdAt, updatedAt string
	var description, category, payee, accountID, endDate, notes sql.NullString
	var dueDay sql.NullInt64
	var isActive, autoPay int

	err := row.Scan(&p.PaymentID, &p.UserID, &p.Name, &description, &amount, &p.Frequency,
		&dueDay, &category, &payee, &accountID, &startDate, &endDate, &isActive,
		&p.ReminderDays, &autoPay, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Description = stringPtr(description)
	p.Amount = parseAmount(amount)
	p.DueDay = intPtr(dueDay)
	p.Category = stringPtr(category)
	p.Payee = stringPtr(payee)
	p.AccountID = stringPtr(accountID)
	p.StartDate = parseDate(startDate)
	p.EndDate = datePtr(endDate)
	p.IsActive = isActive == 1
	p.AutoPay = autoPay == 1
	p.Notes = stringPtr(notes)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *recurringStore) CreatePayment(ctx context.Context, p *models.RecurringPayment) error {
	now := nowText()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recurring_payments (`+paymentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PaymentID, p.UserID, p.Name, nullString(p.Description), p.Amount.String(),
		p.Frequency, nullInt(p.DueDay), nullString(p.Category), nullString(p.Payee),
		nullString(p.AccountID), p.StartDate.String(), nullDate(p.EndDate),
		boolInt(p.IsActive), p.ReminderDays, boolInt(p.AutoPay), nullString(p.Notes),
		now, now)
	return err
}

func (s *recurringStore) GetPayment(ctx context.Context, userID, paymentID string) (*models.RecurringPayment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM recurring_payments WHERE user_id = ? AND payment_id = ?`,
		userID, paymentID)

	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (s *recurringStore) ListPayments(ctx context.Context, userID string, q dto.RecurringPaymentQuery) ([]*models.RecurringPayment, int, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}

	if q.IsActive != nil {
		where = append(where, "is_active = ?")
		args = append(args, boolInt(*q.IsActive))
	}
	if q.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *q.Category)
	}
	if q.Frequency != nil {
		where = append(where, "frequency = ?")
		args = append(args, *q.Frequency)
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recurring_payments WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, q.Offset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM recurring_payments WHERE `+clause+`
		 ORDER BY name, payment_id LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []*models.RecurringPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, total, rows.Err()
}

// ActivePayments returns every active recurring payment for the user, used
// by the summary aggregator.
func (s *recurringStore) ActivePayments(ctx context.Context, userID string) ([]*models.RecurringPayment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM recurring_payments WHERE user_id = ? AND is_active = 1 ORDER BY name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.RecurringPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *recurringStore) UpdatePayment(ctx context.Context, userID, paymentID string, req dto.UpdateRecurringPaymentRequest) (bool, error) {
	set := []string{"updated_at = ?"}
	args := []any{nowText()}

	if req.Name != nil {
		set = append(set, "name = ?")
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		set = append(set, "description = ?")
		args = append(args, strings.TrimSpace(*req.Description))
	}
	if req.Amount != nil {
		set = append(set, "amount = ?")
		args = append(args, req.Amount.String())
	}
	if req.Frequency != nil {
		set = append(set, "frequency = ?")
		args = append(args, *req.Frequency)
	}
	if req.DueDay != nil {
		set = append(set, "due_day = ?")
		args = append(args, *req.DueDay)
	}
	if req.Category != nil {
		set = append(set, "category = ?")
		args = append(args, strings.TrimSpace(*req.Category))
	}
	if req.Payee != nil {
		set = append(set, "payee = ?")
		args = append(args, strings.TrimSpace(*req.Payee))
	}
	if req.AccountID != nil {
		set = append(set, "account_id = ?")
		args = append(args, *req.AccountID)
	}
	if req.IsActive != nil {
		set = append(set, "is_active = ?")
		args = append(args, boolInt(*req.IsActive))
	}
	if req.EndDate != nil {
		set = append(set, "end_date = ?")
		args = append(args, req.EndDate.String())
	}
	if req.ReminderDays != nil {
		set = append(set, "reminder_days = ?")
		args = append(args, *req.ReminderDays)
	}
	if req.AutoPay != nil {
		set = append(set, "auto_pay = ?")
		args = append(args, boolInt(*req.AutoPay))
	}
	if req.Notes != nil {
		set = append(set, "notes = ?")
		args = append(args, strings.TrimSpace(*req.Notes))
	}

	args = append(args, userID, paymentID)
	res, err := s.db.ExecContext(ctx,
		`UPDATE recurring_payments SET `+strings.Join(set, ", ")+` WHERE user_id = ? AND payment_id = ?`,
		args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *recurringStore) DeletePayment(ctx context.Context, userID, paymentID string) (bool, error) {
	// Records first, then the payment itself.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM payment_records WHERE user_id = ? AND payment_id = ?`,
		userID, paymentID); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM recurring_payments WHERE user_id = ? AND payment_id = ?`,
		userID, paymentID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

// ---- payment records ----

const recordColumns = `record_id, payment_id, user_id, due_date, status, amount_due,
	paid_date, amount_paid, transaction_id, notes, created_at, updated_at`

func scanRecord(row interface{ Scan(...any) error }) (*models.PaymentRecord, error) {
	var r models.PaymentRecord
	var dueDate, amountDue, createdAt, updatedAt string
	var paidDate, amountPaid, transactionID, notes sql.NullString

	err := row.Scan(&r.RecordID, &r.PaymentID, &r.UserID, &dueDate, &r.Status, &amountDue,
		&paidDate, &amountPaid, &transactionID, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	r.DueDate = parseDate(dueDate)
	r.AmountDue = parseAmount(amountDue)
	r.PaidDate = datePtr(paidDate)
	r.AmountPaid = amountPtr(amountPaid)
	r.TransactionID = stringPtr(transactionID)
	r.Notes = stringPtr(notes)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

func (s *recurringStore) CreateRecord(ctx context.Context, r *models.PaymentRecord) error {
	now := nowText()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RecordID, r.PaymentID, r.UserID, r.DueDate.String(), r.Status,
		r.AmountDue.String(), nullDate(r.PaidDate), nullAmount(r.AmountPaid),
		nullString(r.TransactionID), nullString(r.Notes), now, now)
	return err
}

func (s *recurringStore) GetRecord(ctx context.Context, userID, recordID string) (*models.PaymentRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM payment_records WHERE user_id = ? AND record_id = ?`,
		userID, recordID)

	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

func (s *recurringStore) ListRecords(ctx context.Context, userID string, q dto.PaymentRecordQuery) ([]*models.PaymentRecord, int, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}

	if q.PaymentID != nil {
		where = append(where, "payment_id = ?")
		args = append(args, *q.PaymentID)
	}
	if q.Status != nil {
		where = append(where, "status = ?")
		args = append(args, *q.Status)
	}
	if q.StartDate != nil {
		where = append(where, "due_date >= ?")
		args = append(args, q.StartDate.String())
	}
	if q.EndDate != nil {
		where = append(where, "due_date <= ?")
		args = append(args, q.EndDate.String())
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payment_records WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, q.Offset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM payment_records WHERE `+clause+`
		 ORDER BY due_date, record_id LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []*models.PaymentRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, r)
	}
	return records, total, rows.Err()
}

// Upcoming returns pending records with due dates in [from, to], ascending.
func (s *recurringStore) Upcoming(ctx context.Context, userID string, from, to civil.Date) ([]*models.PaymentRecord, error) {
	return s.pendingBetween(ctx, userID,
		`due_date >= ? AND due_date <= ?`, from.String(), to.String())
}

// Overdue returns pending records with due dates before the given day,
// ascending.
func (s *recurringStore) Overdue(ctx context.Context, userID string, before civil.Date) ([]*models.PaymentRecord, error) {
	return s.pendingBetween(ctx, userID, `due_date < ?`, before.String())
}

func (s *recurringStore) pendingBetween(ctx context.Context, userID, dateClause string, dateArgs ...any) ([]*models.PaymentRecord, error) {
	args := append([]any{userID}, dateArgs...)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM payment_records
		 WHERE user_id = ? AND status = 'pending' AND `+dateClause+`
		 ORDER BY due_date, record_id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.PaymentRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// MarkPaid stamps a pending record paid. Reports whether a row matched;
// records that already left pending do not match, keeping transitions
// one-way.
func (s *recurringStore) MarkPaid(ctx context.Context, userID, recordID string, paidDate civil.Date, amountPaid decimal.Decimal, transactionID *string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE payment_records
		SET status = 'paid', paid_date = ?, amount_paid = ?, transaction_id = ?, updated_at = ?
		WHERE user_id = ? AND record_id = ? AND status = 'pending'`,
		paidDate.String(), amountPaid.String(), nullString(transactionID), nowText(),
		userID, recordID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MarkSkipped transitions a pending record to skipped, optionally attaching
// notes. Records that already left pending do not match.
func (s *recurringStore) MarkSkipped(ctx context.Context, userID, recordID string, notes *string) (bool, error) {
	set := `status = 'skipped', updated_at = ?`
	args := []any{nowText()}
	if notes != nil {
		set += `, notes = ?`
		args = append(args, *notes)
	}
	args = append(args, userID, recordID)

	res, err := s.db.ExecContext(ctx,
		`UPDATE payment_records SET `+set+` WHERE user_id = ? AND record_id = ? AND status = 'pending'`, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
