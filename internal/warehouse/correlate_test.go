package warehouse

import (
	"testing"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

func TestCorrelateMatchesWithinTolerance(t *testing.T) {
	start := civil.Date{Year: 2024, Month: 1, Day: 1}
	end := civil.Date{Year: 2024, Month: 1, Day: 31}

	cc := []Row{
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 10},
			Description: "PAYMENT RECEIVED", Amount: 500.00},
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 20},
			Description: "PAYMENT RECEIVED", Amount: 120.00},
	}
	bank := []Row{
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 12},
			Description: "CARD AUTOPAY", Amount: -500.00},
		// Same magnitude but nine days away from the second payment.
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 29},
			Description: "CARD AUTOPAY", Amount: -120.00},
	}

	got := Correlate(cc, bank, start, end, 3)
	if len(got) != 1 {
		t.Fatalf("got %d pairs, want 1: %+v", len(got), got)
	}
	pair := got[0]
	if pair.Amount.String() != "500" {
		t.Fatalf("amount = %s", pair.Amount)
	}
	if pair.DaysApart != 2 {
		t.Fatalf("days apart = %d, want 2", pair.DaysApart)
	}
	if pair.CCDescription != "PAYMENT RECEIVED" || pair.BankDescription != "CARD AUTOPAY" {
		t.Fatalf("pair = %+v", pair)
	}
}

func TestCorrelateIgnoresWrongSigns(t *testing.T) {
	start := civil.Date{Year: 2024, Month: 1, Day: 1}
	end := civil.Date{Year: 2024, Month: 1, Day: 31}

	cc := []Row{
		// A charge, not a payment: must not correlate.
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 10}, Amount: -500.00},
	}
	bank := []Row{
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 10}, Amount: -500.00},
	}

	if got := Correlate(cc, bank, start, end, 3); len(got) != 0 {
		t.Fatalf("charge correlated: %+v", got)
	}
}

func TestCorrelateRequiresOneSideInWindow(t *testing.T) {
	start := civil.Date{Year: 2024, Month: 1, Day: 10}
	end := civil.Date{Year: 2024, Month: 1, Day: 20}

	cc := []Row{
		// Both sides sit in the tolerance buffer, outside the window proper.
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 8}, Amount: 75.00},
	}
	bank := []Row{
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 7}, Amount: -75.00},
	}

	if got := Correlate(cc, bank, start, end, 3); len(got) != 0 {
		t.Fatalf("out-of-window pair correlated: %+v", got)
	}
}

func TestCorrelateNewestFirst(t *testing.T) {
	start := civil.Date{Year: 2024, Month: 1, Day: 1}
	end := civil.Date{Year: 2024, Month: 1, Day: 31}

	cc := []Row{
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 5}, Amount: 100.00},
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 25}, Amount: 200.00},
	}
	bank := []Row{
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 5}, Amount: -100.00},
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 25}, Amount: -200.00},
	}

	got := Correlate(cc, bank, start, end, 3)
	if len(got) != 2 {
		t.Fatalf("got %d pairs, want 2", len(got))
	}
	if got[0].CCDate.Before(got[1].CCDate) {
		t.Fatalf("pairs not newest-first: %+v", got)
	}
}

func TestNormalizeSignsAppleRowsOnly(t *testing.T) {
	rows := []Row{
		{AccountID: "CC_APPLE", Amount: 10},
		{AccountID: "cc_apple", Amount: -4},
		{AccountID: "cc_main", Amount: 25},
	}

	got := NormalizeSigns(rows)
	if got[0].Amount != -10 || got[1].Amount != 4 {
		t.Fatalf("apple rows not flipped: %+v", got)
	}
	if got[2].Amount != 25 {
		t.Fatalf("non-apple row flipped: %+v", got[2])
	}
	// Input must be left alone.
	if rows[0].Amount != 10 {
		t.Fatalf("input mutated: %+v", rows)
	}
}

func TestCorrelateAppleCardPayment(t *testing.T) {
	start := civil.Date{Year: 2024, Month: 1, Day: 1}
	end := civil.Date{Year: 2024, Month: 1, Day: 31}

	// Apple exports payments negative; the withdrawal that funded it is also
	// negative on the bank side.
	cc := []Row{
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 10},
			Description: "ACH DEPOSIT", Amount: -250.00, AccountID: "cc_apple"},
	}
	bank := []Row{
		{TransactionDate: civil.Date{Year: 2024, Month: 1, Day: 11},
			Description: "APPLECARD GSBANK PAYMENT", Amount: -250.00, AccountID: "bank_main"},
	}

	if got := Correlate(cc, bank, start, end, 3); len(got) != 0 {
		t.Fatalf("raw apple row correlated without normalization: %+v", got)
	}

	got := Correlate(NormalizeSigns(cc), bank, start, end, 3)
	if len(got) != 1 {
		t.Fatalf("got %d pairs, want 1: %+v", len(got), got)
	}
	if got[0].Amount.String() != "250" || got[0].DaysApart != 1 {
		t.Fatalf("pair = %+v", got[0])
	}
}

func TestSpendByCategoryNormalized(t *testing.T) {
	dining := bigquery.NullString{StringVal: "Dining", Valid: true}
	rows := []Row{
		{Amount: -40.00, Category: dining, AccountID: "cc_main"},
		{Amount: -10.50, AccountID: "cc_main"},
		// Apple charge, exported positive: spend after normalization.
		{Amount: 25.00, Category: dining, AccountID: "cc_apple"},
		// A payment credit never counts as spend.
		{Amount: 100.00, AccountID: "cc_main"},
	}

	got := SpendByCategory(NormalizeSigns(rows))
	if len(got) != 2 {
		t.Fatalf("got %d categories, want 2: %+v", len(got), got)
	}
	if got[0].Category != "Dining" || got[0].Total.String() != "65" {
		t.Fatalf("top category = %+v", got[0])
	}
	if got[1].Category != "Uncategorized" || got[1].Total.String() != "10.5" {
		t.Fatalf("second category = %+v", got[1])
	}
}
