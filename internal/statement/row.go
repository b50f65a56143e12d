package statement

// Row is the canonical textual shape a layout mapping emits, prior to date
// and amount parsing. Fields stay textual so a bad token fails only its own
// row inside the import pipeline, never the whole batch. Rows are built once
// and never mutated.
type Row struct {
	TransactionDate string
	PostDate        string
	Description     string
	Category        string
	Type            string
	Amount          string
	Memo            string
}
