package statement

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionID derives a deterministic, content-based identifier for a
// transaction row. The same key always yields the same id, so re-importing a
// statement is idempotent; changing any field (including the amount's sign)
// yields a different id.
func TransactionID(txDate, postDate civil.Date, description string, amount decimal.Decimal, accountID string) string {
	key := strings.Join([]string{
		txDate.String(),
		postDate.String(),
		strings.ToUpper(strings.TrimSpace(description)),
		amount.String(),
		strings.TrimSpace(accountID),
	}, "|")

	// Version 5 (name-based) UUID in the fixed DNS namespace.
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(key)).String()
}
