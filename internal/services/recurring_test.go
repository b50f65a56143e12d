package services

import (
	"context"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
	"github.com/eyeonits/finapp-personal-finance-tracker/pkg/helpers"
)

type stubRecurringStore struct {
	payments map[string]*models.RecurringPayment
	records  []*models.PaymentRecord
}

func newStubRecurringStore() *stubRecurringStore {
	return &stubRecurringStore{payments: map[string]*models.RecurringPayment{}}
}

func (s *stubRecurringStore) CreatePayment(_ context.Context, p *models.RecurringPayment) error {
	s.payments[p.PaymentID] = p
	return nil
}

func (s *stubRecurringStore) GetPayment(_ context.Context, _, paymentID string) (*models.RecurringPayment, error) {
	return s.payments[paymentID], nil
}

func (s *stubRecurringStore) ListPayments(_ context.Context, _ string, _ dto.RecurringPaymentQuery) ([]*models.RecurringPayment, int, error) {
	var out []*models.RecurringPayment
	for _, p := range s.payments {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (s *stubRecurringStore) ActivePayments(_ context.Context, _ string) ([]*models.RecurringPayment, error) {
	var out []*models.RecurringPayment
	for _, p := range s.payments {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRecurringStore) UpdatePayment(_ context.Context, _, paymentID string, req dto.UpdateRecurringPaymentRequest) (bool, error) {
	p, ok := s.payments[paymentID]
	if !ok {
		return false, nil
	}
	if req.Frequency != nil {
		p.Frequency = *req.Frequency
	}
	if req.DueDay != nil {
		p.DueDay = req.DueDay
	}
	if req.Amount != nil {
		p.Amount = *req.Amount
	}
	return true, nil
}

func (s *stubRecurringStore) DeletePayment(_ context.Context, _, paymentID string) (bool, error) {
	if _, ok := s.payments[paymentID]; !ok {
		return false, nil
	}
	delete(s.payments, paymentID)
	return true, nil
}

func (s *stubRecurringStore) CreateRecord(_ context.Context, r *models.PaymentRecord) error {
	s.records = append(s.records, r)
	return nil
}

func (s *stubRecurringStore) GetRecord(_ context.Context, _, recordID string) (*models.PaymentRecord, error) {
	for _, r := range s.records {
		if r.RecordID == recordID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubRecurringStore) ListRecords(_ context.Context, _ string, q dto.PaymentRecordQuery) ([]*models.PaymentRecord, int, error) {
	var out []*models.PaymentRecord
	for _, r := range s.records {
		if q.PaymentID != nil && r.PaymentID != *q.PaymentID {
			continue
		}
		if q.StartDate != nil && r.DueDate.Before(*q.StartDate) {
			continue
		}
		if q.EndDate != nil && r.DueDate.After(*q.EndDate) {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (s *stubRecurringStore) Upcoming(_ context.Context, _ string, from, to civil.Date) ([]*models.PaymentRecord, error) {
	var out []*models.PaymentRecord
	for _, r := range s.records {
		if r.Status == models.StatusPending && !r.DueDate.Before(from) && !r.DueDate.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRecurringStore) Overdue(_ context.Context, _ string, before civil.Date) ([]*models.PaymentRecord, error) {
	var out []*models.PaymentRecord
	for _, r := range s.records {
		if r.Status == models.StatusPending && r.DueDate.Before(before) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRecurringStore) MarkPaid(_ context.Context, _, recordID string, paidDate civil.Date, amountPaid decimal.Decimal, transactionID *string) (bool, error) {
	for _, r := range s.records {
		if r.RecordID == recordID && r.Status == models.StatusPending {
			r.Status = models.StatusPaid
			r.PaidDate = &paidDate
			r.AmountPaid = &amountPaid
			r.TransactionID = transactionID
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRecurringStore) MarkSkipped(_ context.Context, _, recordID string, notes *string) (bool, error) {
	for _, r := range s.records {
		if r.RecordID == recordID && r.Status == models.StatusPending {
			r.Status = models.StatusSkipped
			if notes != nil {
				r.Notes = notes
			}
			return true, nil
		}
	}
	return false, nil
}

func testRecurringService(store *stubRecurringStore, today civil.Date) *recurringService {
	svc := NewRecurringService(store)
	svc.today = func() civil.Date { return today }
	return svc
}

func seedPayment(store *stubRecurringStore, id, frequency string, dueDay int, amount string) *models.RecurringPayment {
	p := &models.RecurringPayment{
		PaymentID: id,
		UserID:    "user-1",
		Name:      id,
		Amount:    decimal.RequireFromString(amount),
		Frequency: frequency,
		DueDay:    helpers.Ptr(dueDay),
		StartDate: civil.Date{Year: 2023, Month: 1, Day: 1},
		IsActive:  true,
	}
	store.payments[id] = p
	return p
}

func TestGenerateRecordsIdempotent(t *testing.T) {
	store := newStubRecurringStore()
	seedPayment(store, "pay-1", models.FrequencyMonthly, 10, "50.00")
	svc := testRecurringService(store, civil.Date{Year: 2024, Month: 1, Day: 1})
	ctx := helpers.TestCtx()

	first, err := svc.GenerateRecords(ctx, "user-1", "pay-1", 3)
	if err != nil {
		t.Fatalf("GenerateRecords returned error: %v", err)
	}
	if len(first) == 0 {
		t.Fatalf("first call created no records")
	}
	for _, r := range first {
		if r.Status != models.StatusPending {
			t.Fatalf("record created with status %s", r.Status)
		}
		if !r.AmountDue.Equal(decimal.RequireFromString("50.00")) {
			t.Fatalf("amount due = %s", r.AmountDue)
		}
	}

	second, err := svc.GenerateRecords(ctx, "user-1", "pay-1", 3)
	if err != nil {
		t.Fatalf("second GenerateRecords returned error: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second call created %d records, want 0", len(second))
	}
	if len(store.records) != len(first) {
		t.Fatalf("store holds %d records, want %d", len(store.records), len(first))
	}
}

func TestGenerateRecordsUnknownPayment(t *testing.T) {
	svc := testRecurringService(newStubRecurringStore(), civil.Date{Year: 2024, Month: 1, Day: 1})

	_, err := svc.GenerateRecords(helpers.TestCtx(), "user-1", "missing", 3)
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %T (%v)", err, err)
	}
}

func TestMarkPaidRejectsNonPositiveAmount(t *testing.T) {
	store := newStubRecurringStore()
	store.records = append(store.records, &models.PaymentRecord{
		RecordID: "rec-1",
		UserID:   "user-1",
		Status:   models.StatusPending,
		DueDate:  civil.Date{Year: 2024, Month: 1, Day: 10},
	})
	svc := testRecurringService(store, civil.Date{Year: 2024, Month: 1, Day: 1})

	for _, amount := range []string{"0", "-5.00"} {
		_, err := svc.MarkPaid(helpers.TestCtx(), "user-1", "rec-1", dto.MarkPaidRequest{
			PaidDate:   civil.Date{Year: 2024, Month: 1, Day: 10},
			AmountPaid: decimal.RequireFromString(amount),
		})
		if _, ok := err.(*errs.ValidationError); !ok {
			t.Fatalf("amount %s: expected ValidationError, got %T (%v)", amount, err, err)
		}
	}
	if store.records[0].Status != models.StatusPending {
		t.Fatalf("record status changed on rejected MarkPaid: %s", store.records[0].Status)
	}
}

func TestMarkPaidTransitions(t *testing.T) {
	store := newStubRecurringStore()
	store.records = append(store.records, &models.PaymentRecord{
		RecordID: "rec-1",
		UserID:   "user-1",
		Status:   models.StatusPending,
		DueDate:  civil.Date{Year: 2024, Month: 1, Day: 10},
	})
	svc := testRecurringService(store, civil.Date{Year: 2024, Month: 1, Day: 1})

	record, err := svc.MarkPaid(helpers.TestCtx(), "user-1", "rec-1", dto.MarkPaidRequest{
		PaidDate:   civil.Date{Year: 2024, Month: 1, Day: 9},
		AmountPaid: decimal.RequireFromString("50.00"),
	})
	if err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}
	if record.Status != models.StatusPaid || record.PaidDate == nil || record.AmountPaid == nil {
		t.Fatalf("record = %+v", record)
	}
}

func TestMarkPaidAndSkipLeavePaidRecordsAlone(t *testing.T) {
	store := newStubRecurringStore()
	paidDate := civil.Date{Year: 2024, Month: 1, Day: 9}
	store.records = append(store.records, &models.PaymentRecord{
		RecordID:   "rec-1",
		UserID:     "user-1",
		Status:     models.StatusPaid,
		DueDate:    civil.Date{Year: 2024, Month: 1, Day: 10},
		PaidDate:   &paidDate,
		AmountPaid: helpers.Ptr(decimal.RequireFromString("50.00")),
	})
	svc := testRecurringService(store, civil.Date{Year: 2024, Month: 1, Day: 1})

	_, err := svc.MarkPaid(helpers.TestCtx(), "user-1", "rec-1", dto.MarkPaidRequest{
		PaidDate:   civil.Date{Year: 2024, Month: 1, Day: 12},
		AmountPaid: decimal.RequireFromString("60.00"),
	})
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("re-paying a paid record: expected NotFoundError, got %T (%v)", err, err)
	}

	_, err = svc.Skip(helpers.TestCtx(), "user-1", "rec-1", dto.SkipRequest{
		Notes: helpers.Ptr("double billed"),
	})
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("skipping a paid record: expected NotFoundError, got %T (%v)", err, err)
	}

	got := store.records[0]
	if got.Status != models.StatusPaid || !got.AmountPaid.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("paid record changed: %+v", got)
	}
}

func TestSummaryMonthlyEquivalent(t *testing.T) {
	store := newStubRecurringStore()
	seedPayment(store, "rent", models.FrequencyMonthly, 1, "100.00")
	seedPayment(store, "insurance", models.FrequencyYearly, 15, "120.00")
	seedPayment(store, "water", models.FrequencyQuarterly, 20, "30.00")
	seedPayment(store, "cleaner", models.FrequencyWeekly, 5, "10.00")
	svc := testRecurringService(store, civil.Date{Year: 2024, Month: 1, Day: 1})

	summary, err := svc.Summary(helpers.TestCtx(), "user-1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if summary.TotalRecurringPayments != 4 {
		t.Fatalf("total payments = %d, want 4", summary.TotalRecurringPayments)
	}
	// 100 + 120/12 + 30*4/12 + 10*4.33/12 = 123.6083... -> 123.61
	want := decimal.RequireFromString("123.61")
	if !summary.EstimatedMonthlyTotal.Equal(want) {
		t.Fatalf("estimated monthly total = %s, want %s", summary.EstimatedMonthlyTotal, want)
	}
}

func TestSummaryUpcomingAndOverdue(t *testing.T) {
	store := newStubRecurringStore()
	today := civil.Date{Year: 2024, Month: 2, Day: 1}
	store.records = []*models.PaymentRecord{
		{RecordID: "r1", UserID: "user-1", Status: models.StatusPending,
			DueDate: today.AddDays(5), AmountDue: decimal.RequireFromString("40.00")},
		{RecordID: "r2", UserID: "user-1", Status: models.StatusPending,
			DueDate: today.AddDays(-3), AmountDue: decimal.RequireFromString("25.00")},
		{RecordID: "r3", UserID: "user-1", Status: models.StatusPaid,
			DueDate: today.AddDays(2), AmountDue: decimal.RequireFromString("99.00")},
	}
	svc := testRecurringService(store, today)

	summary, err := svc.Summary(helpers.TestCtx(), "user-1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.UpcomingCount != 1 || !summary.UpcomingTotal.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("upcoming = %d / %s", summary.UpcomingCount, summary.UpcomingTotal)
	}
	if summary.OverdueCount != 1 || !summary.OverdueTotal.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("overdue = %d / %s", summary.OverdueCount, summary.OverdueTotal)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	svc := testRecurringService(newStubRecurringStore(), civil.Date{Year: 2024, Month: 1, Day: 1})
	ctx := helpers.TestCtx()

	base := dto.CreateRecurringPaymentRequest{
		Name:      "Gym",
		Amount:    decimal.RequireFromString("45.00"),
		Frequency: models.FrequencyMonthly,
		StartDate: civil.Date{Year: 2024, Month: 1, Day: 1},
	}

	cases := []struct {
		name   string
		mutate func(*dto.CreateRecurringPaymentRequest)
	}{
		{"empty name", func(r *dto.CreateRecurringPaymentRequest) { r.Name = "  " }},
		{"zero amount", func(r *dto.CreateRecurringPaymentRequest) { r.Amount = decimal.Zero }},
		{"bad frequency", func(r *dto.CreateRecurringPaymentRequest) { r.Frequency = "fortnightly" }},
		{"weekly due day out of range", func(r *dto.CreateRecurringPaymentRequest) {
			r.Frequency = models.FrequencyWeekly
			r.DueDay = helpers.Ptr(8)
		}},
		{"monthly due day out of range", func(r *dto.CreateRecurringPaymentRequest) {
			r.DueDay = helpers.Ptr(32)
		}},
		{"end before start", func(r *dto.CreateRecurringPaymentRequest) {
			r.EndDate = &civil.Date{Year: 2023, Month: 12, Day: 31}
		}},
	}

	for _, c := range cases {
		req := base
		c.mutate(&req)
		_, err := svc.CreatePayment(ctx, "user-1", req)
		if _, ok := err.(*errs.ValidationError); !ok {
			t.Fatalf("%s: expected ValidationError, got %T (%v)", c.name, err, err)
		}
	}

	payment, err := svc.CreatePayment(ctx, "user-1", base)
	if err != nil {
		t.Fatalf("valid request returned error: %v", err)
	}
	if !payment.IsActive {
		t.Fatalf("new payment should be active")
	}
}

func TestUpdatePaymentDueDayValidatedAgainstNewFrequency(t *testing.T) {
	store := newStubRecurringStore()
	seedPayment(store, "pay-1", models.FrequencyMonthly, 15, "20.00")
	svc := testRecurringService(store, civil.Date{Year: 2024, Month: 1, Day: 1})

	// Switching to weekly with the existing due_day of 15 must fail.
	weekly := models.FrequencyWeekly
	_, err := svc.UpdatePayment(helpers.TestCtx(), "user-1", "pay-1",
		dto.UpdateRecurringPaymentRequest{Frequency: &weekly})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}

	// Supplying a compatible due_day alongside the frequency change works.
	_, err = svc.UpdatePayment(helpers.TestCtx(), "user-1", "pay-1",
		dto.UpdateRecurringPaymentRequest{Frequency: &weekly, DueDay: helpers.Ptr(3)})
	if err != nil {
		t.Fatalf("UpdatePayment returned error: %v", err)
	}
}
