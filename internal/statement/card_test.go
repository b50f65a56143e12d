package statement

import (
	"strings"
	"testing"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
)

func TestDetectCardLayout(t *testing.T) {
	cases := []struct {
		name    string
		headers []string
		want    CardLayout
	}{
		{
			name:    "apple",
			headers: []string{"Transaction Date", "Clearing Date", "Description", "Merchant", "Category", "Type", "Amount (USD)", "Purchased By"},
			want:    CardLayoutApple,
		},
		{
			name:    "simple date amount",
			headers: []string{"Date", "Description", "Amount"},
			want:    CardLayoutSimple,
		},
		{
			name:    "debit credit",
			headers: []string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"},
			want:    CardLayoutDebitCredit,
		},
		{
			name:    "standard",
			headers: []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"},
			want:    CardLayoutStandard,
		},
	}

	for _, c := range cases {
		got, err := DetectCardLayout(c.headers)
		if err != nil {
			t.Fatalf("%s: DetectCardLayout returned error: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: DetectCardLayout = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDetectCardLayoutCaseInsensitive(t *testing.T) {
	got, err := DetectCardLayout([]string{" DATE ", "description", "AMOUNT"})
	if err != nil {
		t.Fatalf("DetectCardLayout returned error: %v", err)
	}
	if got != CardLayoutSimple {
		t.Fatalf("DetectCardLayout = %v, want %v", got, CardLayoutSimple)
	}
}

func TestDetectCardLayoutUnrecognized(t *testing.T) {
	_, err := DetectCardLayout([]string{"Foo", "Bar"})
	ule, ok := err.(*errs.UnrecognizedLayoutError)
	if !ok {
		t.Fatalf("expected UnrecognizedLayoutError, got %T (%v)", err, err)
	}
	if len(ule.Headers) != 2 {
		t.Fatalf("error should carry the offending headers: %+v", ule.Headers)
	}
}

func TestMapCardRowsAppleSignFlip(t *testing.T) {
	csv := strings.Join([]string{
		"Transaction Date,Clearing Date,Description,Merchant,Category,Type,Amount (USD),Purchased By",
		"2024-01-05,2024-01-06,COFFEE SHOP,Blue Bottle,Dining,Purchase,4.50,Alex Smith",
		"2024-01-10,2024-01-11,PAYMENT RECEIVED,Apple,Payments,Payment,-100.00,Alex Smith",
	}, "\n")

	rows, err := MapCardRows([]byte(csv))
	if err != nil {
		t.Fatalf("MapCardRows returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// Charges flip to negative, payments to positive.
	if rows[0].Amount != "-4.50" {
		t.Fatalf("charge amount = %q, want -4.50", rows[0].Amount)
	}
	if rows[1].Amount != "100.00" {
		t.Fatalf("payment amount = %q, want 100.00", rows[1].Amount)
	}
	if rows[0].Memo != "Blue Bottle | Alex Smith" {
		t.Fatalf("memo = %q", rows[0].Memo)
	}
	if rows[0].PostDate != "2024-01-06" {
		t.Fatalf("post date = %q, want clearing date", rows[0].PostDate)
	}
}

func TestMapCardRowsSimpleSignAndType(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Description,Amount",
		"01/05/2024,GROCERY STORE,25.00",
		"01/06/2024,AUTOPAY PAYMENT,-200.00",
	}, "\n")

	rows, err := MapCardRows([]byte(csv))
	if err != nil {
		t.Fatalf("MapCardRows returned error: %v", err)
	}

	if rows[0].Amount != "-25.00" || rows[0].Type != "CHARGE" {
		t.Fatalf("charge row = %+v", rows[0])
	}
	if rows[1].Amount != "200.00" || rows[1].Type != "PAYMENT" {
		t.Fatalf("payment row = %+v", rows[1])
	}
	// The single date column feeds both dates.
	if rows[0].TransactionDate != rows[0].PostDate {
		t.Fatalf("dates differ: %q vs %q", rows[0].TransactionDate, rows[0].PostDate)
	}
}

func TestMapCardRowsDebitCredit(t *testing.T) {
	csv := strings.Join([]string{
		"Transaction Date,Posted Date,Card No.,Description,Category,Debit,Credit",
		"2024-02-01,2024-02-02,1234,RESTAURANT,Dining,32.50,",
		"2024-02-03,2024-02-04,1234,REFUND,Merchandise,,15.00",
	}, "\n")

	rows, err := MapCardRows([]byte(csv))
	if err != nil {
		t.Fatalf("MapCardRows returned error: %v", err)
	}

	if rows[0].Amount != "-32.50" || rows[0].Type != "DEBIT" {
		t.Fatalf("debit row = %+v", rows[0])
	}
	if rows[1].Amount != "15.00" || rows[1].Type != "CREDIT" {
		t.Fatalf("credit row = %+v", rows[1])
	}
	if rows[0].Memo != "Card: 1234" {
		t.Fatalf("memo = %q", rows[0].Memo)
	}
}

func TestMapCardRowsStandardPassthrough(t *testing.T) {
	csv := strings.Join([]string{
		"Transaction Date,Post Date,Description,Category,Type,Amount,Memo",
		"2024-03-01,2024-03-02,STREAMING SVC,Entertainment,Sale,-9.99,monthly",
	}, "\n")

	rows, err := MapCardRows([]byte(csv))
	if err != nil {
		t.Fatalf("MapCardRows returned error: %v", err)
	}
	if rows[0].Amount != "-9.99" {
		t.Fatalf("standard layout must not alter the amount: %q", rows[0].Amount)
	}
	if rows[0].Memo != "monthly" {
		t.Fatalf("memo = %q", rows[0].Memo)
	}
}

func TestMapCardRowsEmptyFile(t *testing.T) {
	for _, in := range [][]byte{nil, []byte(""), []byte("\n")} {
		rows, err := MapCardRows(in)
		if err != nil {
			t.Fatalf("MapCardRows(%q) returned error: %v", in, err)
		}
		if len(rows) != 0 {
			t.Fatalf("MapCardRows(%q) = %d rows, want 0", in, len(rows))
		}
	}
}

func TestMapCardRowsShortRecord(t *testing.T) {
	// Records shorter than the header row map with blank cells instead of
	// panicking.
	csv := "Date,Description,Amount\n01/05/2024,ONLY TWO FIELDS"

	rows, err := MapCardRows([]byte(csv))
	if err != nil {
		t.Fatalf("MapCardRows returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Amount != "" && rows[0].Amount != "0.00" {
		t.Fatalf("missing amount cell should map to empty/zero, got %q", rows[0].Amount)
	}
}
