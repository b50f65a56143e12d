package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/metrics"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/schedule"
	"github.com/eyeonits/finapp-personal-finance-tracker/pkg/logger"
)

// summaryWindowDays is the upcoming window the summary rollup looks at.
const summaryWindowDays = 30

// weeksPerMonth approximates how many weekly occurrences land in one month.
var weeksPerMonth = decimal.NewFromFloat(4.33)

type recurringStore interface {
	CreatePayment(ctx context.Context, p *models.RecurringPayment) error
	GetPayment(ctx context.Context, userID, paymentID string) (*models.RecurringPayment, error)
	ListPayments(ctx context.Context, userID string, q dto.RecurringPaymentQuery) ([]*models.RecurringPayment, int, error)
	ActivePayments(ctx context.Context, userID string) ([]*models.RecurringPayment, error)
	UpdatePayment(ctx context.Context, userID, paymentID string, req dto.UpdateRecurringPaymentRequest) (bool, error)
	DeletePayment(ctx context.Context, userID, paymentID string) (bool, error)

	CreateRecord(ctx context.Context, r *models.PaymentRecord) error
	GetRecord(ctx context.Context, userID, recordID string) (*models.PaymentRecord, error)
	ListRecords(ctx context.Context, userID string, q dto.PaymentRecordQuery) ([]*models.PaymentRecord, int, error)
	Upcoming(ctx context.Context, userID string, from, to civil.Date) ([]*models.PaymentRecord, error)
	Overdue(ctx context.Context, userID string, before civil.Date) ([]*models.PaymentRecord, error)
	MarkPaid(ctx context.Context, userID, recordID string, paidDate civil.Date, amountPaid decimal.Decimal, transactionID *string) (bool, error)
	MarkSkipped(ctx context.Context, userID, recordID string, notes *string) (bool, error)
}

type recurringService struct {
	store recurringStore
	today func() civil.Date
}

func NewRecurringService(store recurringStore) *recurringService {
	return &recurringService{
		store: store,
		today: func() civil.Date { return civil.DateOf(time.Now().UTC()) },
	}
}

var validFrequencies = map[string]struct{}{
	models.FrequencyWeekly:    {},
	models.FrequencyMonthly:   {},
	models.FrequencyQuarterly: {},
	models.FrequencyYearly:    {},
}

func validateDueDay(frequency string, dueDay *int) error {
	if dueDay == nil {
		return nil
	}
	if frequency == models.FrequencyWeekly {
		if *dueDay < 1 || *dueDay > 7 {
			return errs.NewValidationError("due_day must be between 1 and 7 for weekly payments")
		}
		return nil
	}
	if *dueDay < 1 || *dueDay > 31 {
		return errs.NewValidationError("due_day must be between 1 and 31")
	}
	return nil
}

func (s *recurringService) CreatePayment(ctx context.Context, userID string, req dto.CreateRecurringPaymentRequest) (*models.RecurringPayment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.NewValidationError("name cannot be empty")
	}
	if !req.Amount.IsPositive() {
		return nil, errs.NewValidationError("amount must be greater than zero")
	}
	if _, ok := validFrequencies[req.Frequency]; !ok {
		return nil, errs.NewValidationError("invalid frequency: " + req.Frequency)
	}
	if err := validateDueDay(req.Frequency, req.DueDay); err != nil {
		return nil, err
	}
	if !req.StartDate.IsValid() {
		return nil, errs.NewValidationError("start_date is required")
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, errs.NewValidationError("end_date cannot be before start_date")
	}

	reminderDays := 3
	if req.ReminderDays != nil {
		if *req.ReminderDays < 0 {
			return nil, errs.NewValidationError("reminder_days cannot be negative")
		}
		reminderDays = *req.ReminderDays
	}

	payment := &models.RecurringPayment{
		PaymentID:    uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Description:  req.Description,
		Amount:       req.Amount,
		Frequency:    req.Frequency,
		DueDay:       req.DueDay,
		Category:     req.Category,
		Payee:        req.Payee,
		AccountID:    req.AccountID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsActive:     true,
		ReminderDays: reminderDays,
		AutoPay:      req.AutoPay,
		Notes:        req.Notes,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, errs.NewDatabaseError("create recurring payment", err)
	}
	return s.GetPayment(ctx, userID, payment.PaymentID)
}

func (s *recurringService) GetPayment(ctx context.Context, userID, paymentID string) (*models.RecurringPayment, error) {
	payment, err := s.store.GetPayment(ctx, userID, paymentID)
	if err != nil {
		return nil, errs.NewDatabaseError("get recurring payment", err)
	}
	if payment == nil {
		return nil, errs.NewNotFoundError("recurring payment not found: " + paymentID)
	}
	return payment, nil
}

func (s *recurringService) ListPayments(ctx context.Context, userID string, q dto.RecurringPaymentQuery) (dto.RecurringPaymentListResult, error) {
	if q.Frequency != nil {
		if _, ok := validFrequencies[*q.Frequency]; !ok {
			return dto.RecurringPaymentListResult{}, errs.NewValidationError("invalid frequency: " + *q.Frequency)
		}
	}
	if q.Limit <= 0 {
		q.Limit = 100
	}

	payments, total, err := s.store.ListPayments(ctx, userID, q)
	if err != nil {
		return dto.RecurringPaymentListResult{}, errs.NewDatabaseError("list recurring payments", err)
	}
	return dto.RecurringPaymentListResult{
		Payments: payments,
		Total:    total,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, nil
}

func (s *recurringService) UpdatePayment(ctx context.Context, userID, paymentID string, req dto.UpdateRecurringPaymentRequest) (*models.RecurringPayment, error) {
	existing, err := s.GetPayment(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, errs.NewValidationError("name cannot be empty")
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, errs.NewValidationError("amount must be greater than zero")
	}

	// due_day is validated against the frequency the payment will have
	// after the update, not the one it had before.
	frequency := existing.Frequency
	if req.Frequency != nil {
		if _, ok := validFrequencies[*req.Frequency]; !ok {
			return nil, errs.NewValidationError("invalid frequency: " + *req.Frequency)
		}
		frequency = *req.Frequency
	}
	dueDay := existing.DueDay
	if req.DueDay != nil {
		dueDay = req.DueDay
	}
	if err := validateDueDay(frequency, dueDay); err != nil {
		return nil, err
	}

	if req.ReminderDays != nil && *req.ReminderDays < 0 {
		return nil, errs.NewValidationError("reminder_days cannot be negative")
	}
	if req.EndDate != nil && req.EndDate.Before(existing.StartDate) {
		return nil, errs.NewValidationError("end_date cannot be before start_date")
	}

	matched, err := s.store.UpdatePayment(ctx, userID, paymentID, req)
	if err != nil {
		return nil, errs.NewDatabaseError("update recurring payment", err)
	}
	if !matched {
		return nil, errs.NewNotFoundError("recurring payment not found: " + paymentID)
	}
	return s.GetPayment(ctx, userID, paymentID)
}

func (s *recurringService) DeletePayment(ctx context.Context, userID, paymentID string) error {
	matched, err := s.store.DeletePayment(ctx, userID, paymentID)
	if err != nil {
		return errs.NewDatabaseError("delete recurring payment", err)
	}
	if !matched {
		return errs.NewNotFoundError("recurring payment not found: " + paymentID)
	}
	return nil
}

// GenerateRecords lazily materializes pending records for the payment's
// projected due dates over the next monthsAhead months. Dates that already
// have a record are left alone, so calling this twice with the same window
// creates nothing the second time.
func (s *recurringService) GenerateRecords(ctx context.Context, userID, paymentID string, monthsAhead int) ([]*models.PaymentRecord, error) {
	if monthsAhead <= 0 {
		monthsAhead = 3
	}

	payment, err := s.GetPayment(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	windowEnd := schedule.AddMonths(today, monthsAhead)
	if payment.EndDate != nil && payment.EndDate.Before(windowEnd) {
		windowEnd = *payment.EndDate
	}

	windowStart := today
	if payment.StartDate.After(windowStart) {
		windowStart = payment.StartDate
	}

	existing, _, err := s.store.ListRecords(ctx, userID, dto.PaymentRecordQuery{
		PaymentID: &paymentID,
		StartDate: &windowStart,
		EndDate:   &windowEnd,
		Limit:     1000,
	})
	if err != nil {
		return nil, errs.NewDatabaseError("list payment records", err)
	}
	covered := make(map[civil.Date]struct{}, len(existing))
	for _, r := range existing {
		covered[r.DueDate] = struct{}{}
	}

	dueDates := schedule.ProjectDueDates(schedule.Payment{
		Frequency: payment.Frequency,
		DueDay:    payment.DueDay,
		StartDate: payment.StartDate,
		EndDate:   payment.EndDate,
		IsActive:  payment.IsActive,
	}, windowStart, windowEnd)

	var created []*models.PaymentRecord
	for _, due := range dueDates {
		if _, ok := covered[due]; ok {
			continue
		}
		record := &models.PaymentRecord{
			RecordID:  uuid.NewString(),
			PaymentID: paymentID,
			UserID:    userID,
			DueDate:   due,
			Status:    models.StatusPending,
			AmountDue: payment.Amount,
		}
		if err := s.store.CreateRecord(ctx, record); err != nil {
			return nil, errs.NewDatabaseError("create payment record", err)
		}
		created = append(created, record)
	}

	if len(created) > 0 {
		metrics.RecordsGenerated.Add(float64(len(created)))
		logger.FromContext(ctx).Info("payment records generated",
			"payment_id", paymentID, "count", len(created))
	}
	return created, nil
}

func (s *recurringService) GetRecord(ctx context.Context, userID, recordID string) (*models.PaymentRecord, error) {
	record, err := s.store.GetRecord(ctx, userID, recordID)
	if err != nil {
		return nil, errs.NewDatabaseError("get payment record", err)
	}
	if record == nil {
		return nil, errs.NewNotFoundError("payment record not found: " + recordID)
	}
	return record, nil
}

func (s *recurringService) ListRecords(ctx context.Context, userID string, q dto.PaymentRecordQuery) ([]*models.PaymentRecord, int, error) {
	records, total, err := s.store.ListRecords(ctx, userID, q)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list payment records", err)
	}
	return records, total, nil
}

func (s *recurringService) MarkPaid(ctx context.Context, userID, recordID string, req dto.MarkPaidRequest) (*models.PaymentRecord, error) {
	if !req.AmountPaid.IsPositive() {
		return nil, errs.NewValidationError("amount_paid must be greater than zero")
	}
	if !req.PaidDate.IsValid() {
		return nil, errs.NewValidationError("paid_date is required")
	}

	matched, err := s.store.MarkPaid(ctx, userID, recordID, req.PaidDate, req.AmountPaid, req.TransactionID)
	if err != nil {
		return nil, errs.NewDatabaseError("mark payment record paid", err)
	}
	if !matched {
		return nil, errs.NewNotFoundError("payment record not found: " + recordID)
	}
	return s.GetRecord(ctx, userID, recordID)
}

func (s *recurringService) Skip(ctx context.Context, userID, recordID string, req dto.SkipRequest) (*models.PaymentRecord, error) {
	matched, err := s.store.MarkSkipped(ctx, userID, recordID, req.Notes)
	if err != nil {
		return nil, errs.NewDatabaseError("skip payment record", err)
	}
	if !matched {
		return nil, errs.NewNotFoundError("payment record not found: " + recordID)
	}
	return s.GetRecord(ctx, userID, recordID)
}

func (s *recurringService) ListUpcoming(ctx context.Context, userID string, daysAhead int) ([]*models.PaymentRecord, error) {
	if daysAhead <= 0 {
		daysAhead = summaryWindowDays
	}
	today := s.today()
	records, err := s.store.Upcoming(ctx, userID, today, today.AddDays(daysAhead))
	if err != nil {
		return nil, errs.NewDatabaseError("list upcoming payment records", err)
	}
	return records, nil
}

func (s *recurringService) ListOverdue(ctx context.Context, userID string) ([]*models.PaymentRecord, error) {
	records, err := s.store.Overdue(ctx, userID, s.today())
	if err != nil {
		return nil, errs.NewDatabaseError("list overdue payment records", err)
	}
	return records, nil
}

// Summary rolls every active payment up to a monthly-equivalent total and
// attaches 30-day upcoming and overdue rollups. Intermediate math keeps full
// precision; rounding to two places happens once, here at the boundary.
func (s *recurringService) Summary(ctx context.Context, userID string) (dto.PaymentSummary, error) {
	payments, err := s.store.ActivePayments(ctx, userID)
	if err != nil {
		return dto.PaymentSummary{}, errs.NewDatabaseError("list active recurring payments", err)
	}

	monthly := decimal.Zero
	for _, p := range payments {
		switch p.Frequency {
		case models.FrequencyYearly:
			monthly = monthly.Add(p.Amount.Div(decimal.NewFromInt(12)))
		case models.FrequencyQuarterly:
			monthly = monthly.Add(p.Amount.Mul(decimal.NewFromInt(4)).Div(decimal.NewFromInt(12)))
		case models.FrequencyWeekly:
			monthly = monthly.Add(p.Amount.Mul(weeksPerMonth).Div(decimal.NewFromInt(12)))
		case models.FrequencyMonthly:
			monthly = monthly.Add(p.Amount)
		default:
			return dto.PaymentSummary{}, errs.NewValidationError(
				fmt.Sprintf("payment %s has unknown frequency %q", p.PaymentID, p.Frequency))
		}
	}

	upcoming, err := s.ListUpcoming(ctx, userID, summaryWindowDays)
	if err != nil {
		return dto.PaymentSummary{}, err
	}
	overdue, err := s.ListOverdue(ctx, userID)
	if err != nil {
		return dto.PaymentSummary{}, err
	}

	upcomingTotal := decimal.Zero
	for _, r := range upcoming {
		upcomingTotal = upcomingTotal.Add(r.AmountDue)
	}
	overdueTotal := decimal.Zero
	for _, r := range overdue {
		overdueTotal = overdueTotal.Add(r.AmountDue)
	}

	return dto.PaymentSummary{
		TotalRecurringPayments: len(payments),
		EstimatedMonthlyTotal:  monthly.Round(2),
		UpcomingCount:          len(upcoming),
		UpcomingTotal:          upcomingTotal.Round(2),
		OverdueCount:           len(overdue),
		OverdueTotal:           overdueTotal.Round(2),
	}, nil
}
