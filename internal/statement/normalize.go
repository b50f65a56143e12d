package statement

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
)

// dateLayouts are tried in order; the first match wins. Order matters for
// inputs like "01-02-2024" that several layouts could claim.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"2006/01/02",
}

// ParseDate parses a textual statement date. Blank input is reported as
// absent (ok=false) without an error; non-blank input that matches no known
// layout fails with a FormatError.
func ParseDate(value string) (civil.Date, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return civil.Date{}, false, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return civil.DateOf(t), true, nil
		}
	}

	return civil.Date{}, false, errs.NewFormatError("unrecognized date format: %q", value)
}

// CleanAmount converts an amount token like "-$1,234.56" into a decimal.
// Absent input yields 0.00; residual non-numeric content is a FormatError.
func CleanAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.New(0, -2), nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, errs.NewFormatError("invalid amount format: %q", value)
	}
	return d, nil
}
