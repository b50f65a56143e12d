package statement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
)

// CardLayout identifies one of the known credit-card export layouts.
type CardLayout int

const (
	// CardLayoutApple: issuer reports charges positive with a separate
	// clearing date and merchant/purchased-by columns.
	CardLayoutApple CardLayout = iota
	// CardLayoutSimple: a single Date column and a signed Amount, charges
	// positive (e.g. Amex exports).
	CardLayoutSimple
	// CardLayoutDebitCredit: spending and refunds split across Debit and
	// Credit columns (e.g. Capital One exports).
	CardLayoutDebitCredit
	// CardLayoutStandard: already in canonical column form, passthrough.
	CardLayoutStandard
)

func (l CardLayout) String() string {
	switch l {
	case CardLayoutApple:
		return "apple"
	case CardLayoutSimple:
		return "date/amount"
	case CardLayoutDebitCredit:
		return "debit/credit"
	case CardLayoutStandard:
		return "standard"
	}
	return "unknown"
}

var standardColumns = []string{
	"transaction date",
	"post date",
	"description",
	"category",
	"type",
	"amount",
	"memo",
}

// DetectCardLayout classifies a header set into exactly one card layout.
// Header sets can overlap, so evaluation order is a deliberate tie-break:
// Apple, then date/amount, then debit/credit, then standard.
func DetectCardLayout(headers []string) (CardLayout, error) {
	fields := fieldIndex(headers)
	has := func(name string) bool {
		_, ok := fields[name]
		return ok
	}

	switch {
	case has("transaction date") && has("clearing date") && has("amount (usd)"):
		return CardLayoutApple, nil
	case has("date") && has("amount") && !has("transaction date"):
		return CardLayoutSimple, nil
	case has("transaction date") && has("posted date") && has("debit") &&
		has("credit") && has("description"):
		return CardLayoutDebitCredit, nil
	}

	for _, col := range standardColumns {
		if !has(col) {
			return 0, errs.NewUnrecognizedLayoutError(headers)
		}
	}
	return CardLayoutStandard, nil
}

// requiredColumns lists the columns each layout's mapping reads
// unconditionally. Detection only proves the discriminating subset.
var requiredColumns = map[CardLayout][]string{
	CardLayoutApple:       {"transaction date", "clearing date", "description", "category", "type", "amount (usd)"},
	CardLayoutSimple:      {"date", "description", "amount"},
	CardLayoutDebitCredit: {"transaction date", "posted date", "description", "debit", "credit"},
	CardLayoutStandard:    standardColumns,
}

// MapCardRows decodes a credit-card statement, detects its layout and maps
// every record into canonical textual rows. A file without a header row maps
// to zero rows.
func MapCardRows(data []byte) ([]Row, error) {
	headers, records, err := readCSV(Decode(data))
	if err != nil {
		return nil, errs.NewFormatError("malformed CSV: %v", err)
	}
	if headers == nil {
		return nil, nil
	}

	layout, err := DetectCardLayout(headers)
	if err != nil {
		return nil, err
	}

	fields := fieldIndex(headers)
	for _, col := range requiredColumns[layout] {
		if _, ok := fields[col]; !ok {
			return nil, errs.NewValidationError(
				fmt.Sprintf("CSV (%s layout) is missing required column: %s", layout, col))
		}
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, mapCardRow(layout, fields, rec))
	}
	return rows, nil
}

func mapCardRow(layout CardLayout, fields map[string]int, rec []string) Row {
	switch layout {
	case CardLayoutApple:
		return mapAppleRow(fields, rec)
	case CardLayoutSimple:
		return mapSimpleRow(fields, rec)
	case CardLayoutDebitCredit:
		return mapDebitCreditRow(fields, rec)
	default:
		return mapStandardRow(fields, rec)
	}
}

// mapAppleRow flips the amount sign: the issuer reports charges positive,
// the canonical form stores charges negative. Merchant and purchased-by are
// folded into the memo.
func mapAppleRow(fields map[string]int, rec []string) Row {
	memo := cell(fields, rec, "merchant")
	if by := cell(fields, rec, "purchased by"); by != "" {
		if memo != "" {
			memo = memo + " | " + by
		} else {
			memo = by
		}
	}

	amount := cell(fields, rec, "amount (usd)")
	if d, err := CleanAmount(amount); err == nil {
		amount = d.Neg().String()
	}

	return Row{
		TransactionDate: cell(fields, rec, "transaction date"),
		PostDate:        cell(fields, rec, "clearing date"),
		Description:     cell(fields, rec, "description"),
		Category:        cell(fields, rec, "category"),
		Type:            cell(fields, rec, "type"),
		Amount:          amount,
		Memo:            memo,
	}
}

// mapSimpleRow uses the single Date column for both dates, derives a type
// label from the raw sign and stores the amount negated (same
// charge-negative convention as Apple exports).
func mapSimpleRow(fields map[string]int, rec []string) Row {
	date := cell(fields, rec, "date")

	amount := cell(fields, rec, "amount")
	txnType := ""
	if d, err := CleanAmount(amount); err == nil {
		if d.IsPositive() {
			txnType = "CHARGE"
		} else if d.IsNegative() {
			txnType = "PAYMENT"
		}
		amount = d.Neg().String()
	}

	return Row{
		TransactionDate: date,
		PostDate:        date,
		Description:     cell(fields, rec, "description"),
		Category:        cell(fields, rec, "category"),
		Type:            txnType,
		Amount:          amount,
		Memo:            "",
	}
}

// mapDebitCreditRow folds the Debit and Credit columns into one signed
// amount: debit is spending (negative), credit is payment or refund
// (positive). The card-number column, when present, becomes the memo.
func mapDebitCreditRow(fields map[string]int, rec []string) Row {
	amount := decimal.Zero
	txnType := ""

	if debit := cell(fields, rec, "debit"); debit != "" {
		if d, err := CleanAmount(debit); err == nil {
			amount = d.Abs().Neg()
			txnType = "DEBIT"
		}
	} else if credit := cell(fields, rec, "credit"); credit != "" {
		if d, err := CleanAmount(credit); err == nil {
			amount = d.Abs()
			txnType = "CREDIT"
		}
	}

	memo := ""
	if cardNo := cell(fields, rec, "card no."); cardNo != "" {
		memo = "Card: " + cardNo
	}

	return Row{
		TransactionDate: cell(fields, rec, "transaction date"),
		PostDate:        cell(fields, rec, "posted date"),
		Description:     cell(fields, rec, "description"),
		Category:        cell(fields, rec, "category"),
		Type:            txnType,
		Amount:          amount.String(),
		Memo:            memo,
	}
}

func mapStandardRow(fields map[string]int, rec []string) Row {
	return Row{
		TransactionDate: cell(fields, rec, "transaction date"),
		PostDate:        cell(fields, rec, "post date"),
		Description:     cell(fields, rec, "description"),
		Category:        cell(fields, rec, "category"),
		Type:            cell(fields, rec, "type"),
		Amount:          cell(fields, rec, "amount"),
		Memo:            cell(fields, rec, "memo"),
	}
}
