package dto

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
)

type TransactionQuery struct {
	StartDate   *civil.Date
	EndDate     *civil.Date
	Description *string // case-insensitive substring
	Category    *string // exact match
	AccountID   *string // exact match
	AmountMin   *decimal.Decimal
	AmountMax   *decimal.Decimal
	Limit       int
	Offset      int
}

type TransactionListResult struct {
	Transactions []*models.Transaction `json:"transactions"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

type CreateTransactionRequest struct {
	TransactionDate civil.Date      `json:"transactionDate"`
	PostDate        civil.Date      `json:"postDate"`
	Description     string          `json:"description"`
	Category        *string         `json:"category,omitempty"`
	Type            *string         `json:"type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Memo            *string         `json:"memo,omitempty"`
	AccountID       string          `json:"accountId"`
	Source          string          `json:"source"`
}

type UpdateTransactionRequest struct {
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Memo        *string          `json:"memo,omitempty"`
}
