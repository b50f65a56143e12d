package dto

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type CategorySpend struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type IncomeExpense struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CorrelatedPayment pairs a credit-card payment with the bank withdrawal
// that funded it, matched on absolute amount within a date tolerance.
type CorrelatedPayment struct {
	Amount          decimal.Decimal `json:"amount"`
	CCDate          civil.Date      `json:"ccDate"`
	CCDescription   string          `json:"ccDescription"`
	BankDate        civil.Date      `json:"bankDate"`
	BankDescription string          `json:"bankDescription"`
	DaysApart       int             `json:"daysApart"`
}
