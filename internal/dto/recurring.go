package dto

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
)

type CreateRecurringPaymentRequest struct {
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Frequency    string          `json:"frequency"`
	DueDay       *int            `json:"dueDay,omitempty"`
	Category     *string         `json:"category,omitempty"`
	Payee        *string         `json:"payee,omitempty"`
	AccountID    *string         `json:"accountId,omitempty"`
	StartDate    civil.Date      `json:"startDate"`
	EndDate      *civil.Date     `json:"endDate,omitempty"`
	ReminderDays *int            `json:"reminderDays,omitempty"`
	AutoPay      bool            `json:"autoPay"`
	Notes        *string         `json:"notes,omitempty"`
}

type UpdateRecurringPaymentRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Frequency    *string          `json:"frequency,omitempty"`
	DueDay       *int             `json:"dueDay,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Payee        *string          `json:"payee,omitempty"`
	AccountID    *string          `json:"accountId,omitempty"`
	IsActive     *bool            `json:"isActive,omitempty"`
	EndDate      *civil.Date      `json:"endDate,omitempty"`
	ReminderDays *int             `json:"reminderDays,omitempty"`
	AutoPay      *bool            `json:"autoPay,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

type RecurringPaymentQuery struct {
	IsActive  *bool
	Category  *string
	Frequency *string
	Limit     int
	Offset    int
}

type RecurringPaymentListResult struct {
	Payments []*models.RecurringPayment `json:"payments"`
	Total    int                        `json:"total"`
	Limit    int                        `json:"limit"`
	Offset   int                        `json:"offset"`
}

type PaymentRecordQuery struct {
	PaymentID *string
	Status    *string
	StartDate *civil.Date
	EndDate   *civil.Date
	Limit     int
	Offset    int
}

type MarkPaidRequest struct {
	PaidDate      civil.Date      `json:"paidDate"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	TransactionID *string         `json:"transactionId,omitempty"`
}

type SkipRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// PaymentSummary rolls active payments up to a monthly-equivalent total plus
// upcoming/overdue counts. Monetary fields are rounded to two decimal places
// at this boundary only.
type PaymentSummary struct {
	TotalRecurringPayments int             `json:"totalRecurringPayments"`
	EstimatedMonthlyTotal  decimal.Decimal `json:"estimatedMonthlyTotal"`
	UpcomingCount          int             `json:"upcomingCount"`
	UpcomingTotal          decimal.Decimal `json:"upcomingTotal"`
	OverdueCount           int             `json:"overdueCount"`
	OverdueTotal           decimal.Decimal `json:"overdueTotal"`
}
