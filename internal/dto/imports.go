package dto

// ImportSummary is the outcome of one statement import. Outside of fatal
// failure, RowsTotal = RowsInserted + RowsSkipped.
type ImportSummary struct {
	ImportID     string `json:"importId"`
	RowsTotal    int    `json:"rowsTotal"`
	RowsInserted int    `json:"rowsInserted"`
	RowsSkipped  int    `json:"rowsSkipped"`
	Status       string `json:"status"`
}
