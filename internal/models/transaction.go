package models

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction is a persisted ledger line owned by a single user. Its
// TransactionID is the deterministic UUIDv5 derived from the row content,
// which makes re-imports of the same statement idempotent.
type Transaction struct {
	TransactionID   string          `json:"transactionId"`
	UserID          string          `json:"userId"`
	TransactionDate civil.Date      `json:"transactionDate"`
	PostDate        civil.Date      `json:"postDate"`
	Description     string          `json:"description"`
	Category        *string         `json:"category,omitempty"`
	Type            *string         `json:"type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Memo            *string         `json:"memo,omitempty"`
	AccountID       string          `json:"accountId"`
	Source          string          `json:"source"` // "credit_card" or "bank"
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Transaction sources.
const (
	SourceCreditCard = "credit_card"
	SourceBank       = "bank"
)
