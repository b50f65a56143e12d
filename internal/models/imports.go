package models

import "time"

// Import statuses.
const (
	ImportSuccess = "success"
	ImportPartial = "partial"
	ImportFailed  = "failed"
)

// ImportHistory is the append-only audit record of one import invocation.
// Exactly one row is written per call, fatal failures included.
type ImportHistory struct {
	ImportID     string    `json:"importId"`
	UserID       string    `json:"userId"`
	ImportType   string    `json:"importType"` // "credit_card" or "bank"
	AccountID    string    `json:"accountId"`
	Filename     *string   `json:"filename,omitempty"`
	RowsTotal    int       `json:"rowsTotal"`
	RowsInserted int       `json:"rowsInserted"`
	RowsSkipped  int       `json:"rowsSkipped"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
