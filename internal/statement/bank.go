package statement

import (
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
)

// The single supported bank export layout. All eight columns must be
// present; there is no variant detection on the bank side.
var bankColumns = []string{
	"posted date",
	"effective date",
	"transaction",
	"amount",
	"balance",
	"description",
	"check#",
	"memo",
}

// MapBankRows decodes a bank statement and maps every record into canonical
// textual rows. The posted date serves as the transaction date and the
// effective date as the post date, each falling back to the other when
// blank. A check number is appended to the memo.
func MapBankRows(data []byte) ([]Row, error) {
	headers, records, err := readCSV(Decode(data))
	if err != nil {
		return nil, errs.NewFormatError("malformed CSV: %v", err)
	}
	if headers == nil {
		return nil, nil
	}

	fields := fieldIndex(headers)
	for _, col := range bankColumns {
		if _, ok := fields[col]; !ok {
			return nil, errs.NewUnrecognizedLayoutError(headers)
		}
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		posted := cell(fields, rec, "posted date")
		effective := cell(fields, rec, "effective date")

		txDate, postDate := posted, effective
		if txDate == "" {
			txDate = effective
		}
		if postDate == "" {
			postDate = posted
		}

		memo := cell(fields, rec, "memo")
		if check := cell(fields, rec, "check#"); check != "" {
			if memo != "" {
				memo = memo + " (Check #" + check + ")"
			} else {
				memo = "Check #" + check
			}
		}

		rows = append(rows, Row{
			TransactionDate: txDate,
			PostDate:        postDate,
			Description:     cell(fields, rec, "description"),
			Type:            cell(fields, rec, "transaction"),
			Amount:          cell(fields, rec, "amount"),
			Memo:            memo,
		})
	}
	return rows, nil
}
