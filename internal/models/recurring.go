package models

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Recurring payment frequencies.
const (
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// Payment record statuses. Transitions out of pending are one-way.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
	StatusSkipped = "skipped"
)

type RecurringPayment struct {
	PaymentID    string          `json:"paymentId"`
	UserID       string          `json:"userId"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Frequency    string          `json:"frequency"`
	DueDay       *int            `json:"dueDay,omitempty"` // 1-7 weekly, 1-31 otherwise
	Category     *string         `json:"category,omitempty"`
	Payee        *string         `json:"payee,omitempty"`
	AccountID    *string         `json:"accountId,omitempty"`
	StartDate    civil.Date      `json:"startDate"`
	EndDate      *civil.Date     `json:"endDate,omitempty"`
	IsActive     bool            `json:"isActive"`
	ReminderDays int             `json:"reminderDays"`
	AutoPay      bool            `json:"autoPay"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// PaymentRecord is one projected occurrence of a recurring payment. At most
// one record exists per (payment, due date); the reconciler checks covered
// dates before creating and the store carries a unique index as backstop.
type PaymentRecord struct {
	RecordID      string           `json:"recordId"`
	PaymentID     string           `json:"paymentId"`
	UserID        string           `json:"userId"`
	DueDate       civil.Date       `json:"dueDate"`
	Status        string           `json:"status"`
	AmountDue     decimal.Decimal  `json:"amountDue"`
	PaidDate      *civil.Date      `json:"paidDate,omitempty"`
	AmountPaid    *decimal.Decimal `json:"amountPaid,omitempty"`
	TransactionID *string          `json:"transactionId,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}
