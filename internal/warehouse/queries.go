package warehouse

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
)

// CCSpendByCategory sums credit-card spend (negative amounts) per category
// over the date range, largest first, top ten. Rows are sign-normalized
// before the spend filter so Apple-card charges count as spend rather than
// falling out of the aggregate.
func (c *Client) CCSpendByCategory(ctx context.Context, start, end civil.Date) ([]dto.CategorySpend, error) {
	rows, err := c.readRows(ctx, fmt.Sprintf(`
		SELECT transaction_date, description, category, type, amount, account_id
		FROM %s.cc_transactions
		WHERE transaction_date BETWEEN @start AND @end
	`, c.dataset), []bigquery.QueryParameter{
		{Name: "start", Value: start},
		{Name: "end", Value: end},
	})
	if err != nil {
		return nil, err
	}
	return SpendByCategory(NormalizeSigns(rows)), nil
}

// SpendByCategory aggregates normalized rows into per-category spend totals,
// largest first, top ten. Only charges (negative amounts) count; a missing
// category buckets as Uncategorized. Pure so it can be tested without a
// warehouse.
func SpendByCategory(rows []Row) []dto.CategorySpend {
	totals := make(map[string]decimal.Decimal)
	for _, r := range rows {
		if r.Amount >= 0 {
			continue
		}
		category := "Uncategorized"
		if r.Category.Valid && r.Category.StringVal != "" {
			category = r.Category.StringVal
		}
		totals[category] = totals[category].Add(decimal.NewFromFloat(-r.Amount))
	}

	out := make([]dto.CategorySpend, 0, len(totals))
	for category, total := range totals {
		out = append(out, dto.CategorySpend{Category: category, Total: total.Round(2)})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// BankIncomeExpense totals bank inflows and outflows over the date range.
// Expenses come back as a positive magnitude.
func (c *Client) BankIncomeExpense(ctx context.Context, start, end civil.Date) (dto.IncomeExpense, error) {
	sql := fmt.Sprintf(`
		SELECT
		  IFNULL(SUM(IF(amount > 0, amount, 0)), 0) AS income,
		  ABS(IFNULL(SUM(IF(amount < 0, amount, 0)), 0)) AS expenses
		FROM %s.bank_transactions
		WHERE transaction_date BETWEEN @start AND @end
	`, c.dataset)

	it, err := c.query(ctx, sql, []bigquery.QueryParameter{
		{Name: "start", Value: start},
		{Name: "end", Value: end},
	})
	if err != nil {
		return dto.IncomeExpense{}, err
	}

	var row struct {
		Income   float64 `bigquery:"income"`
		Expenses float64 `bigquery:"expenses"`
	}
	if err := it.Next(&row); err != nil && err != iterator.Done {
		return dto.IncomeExpense{}, fmt.Errorf("warehouse: reading income/expense row: %w", err)
	}
	return dto.IncomeExpense{
		Income:   toDecimal(row.Income),
		Expenses: toDecimal(row.Expenses),
	}, nil
}

// CorrelatedPayments pairs credit-card payment credits with the bank
// withdrawals that funded them. Rows are fetched with a tolerance-widened
// window, matched in memory on absolute amount, then filtered to pairs no
// more than toleranceDays apart with at least one side inside the requested
// range. Newest credit-card date first. Credit-card rows come back without a
// sign filter because Apple-card payments are stored inverted; the sign
// split happens in Correlate after normalization.
func (c *Client) CorrelatedPayments(ctx context.Context, start, end civil.Date, toleranceDays int) ([]dto.CorrelatedPayment, error) {
	if toleranceDays < 0 {
		toleranceDays = 0
	}
	bufStart := start.AddDays(-toleranceDays)
	bufEnd := end.AddDays(toleranceDays)

	ccRows, err := c.readRows(ctx, fmt.Sprintf(`
		SELECT transaction_date, description, category, type, amount, account_id
		FROM %s.cc_transactions
		WHERE transaction_date BETWEEN @start AND @end
		ORDER BY transaction_date DESC
		LIMIT 5000
	`, c.dataset), []bigquery.QueryParameter{
		{Name: "start", Value: bufStart},
		{Name: "end", Value: bufEnd},
	})
	if err != nil {
		return nil, err
	}
	ccRows = NormalizeSigns(ccRows)

	bankRows, err := c.readRows(ctx, fmt.Sprintf(`
		SELECT transaction_date, description, category, type, amount, account_id
		FROM %s.bank_transactions
		WHERE amount < 0 AND transaction_date BETWEEN @start AND @end
		ORDER BY transaction_date DESC
		LIMIT 5000
	`, c.dataset), []bigquery.QueryParameter{
		{Name: "start", Value: bufStart},
		{Name: "end", Value: bufEnd},
	})
	if err != nil {
		return nil, err
	}

	return Correlate(ccRows, bankRows, start, end, toleranceDays), nil
}

// Correlate matches credit-card payments against bank withdrawals of the
// same magnitude within the date tolerance. Pure so it can be tested without
// a warehouse.
func Correlate(ccRows, bankRows []Row, start, end civil.Date, toleranceDays int) []dto.CorrelatedPayment {
	byAmount := make(map[string][]Row)
	for _, b := range bankRows {
		if b.Amount >= 0 {
			continue
		}
		key := decimal.NewFromFloat(-b.Amount).String()
		byAmount[key] = append(byAmount[key], b)
	}

	var out []dto.CorrelatedPayment
	for _, cc := range ccRows {
		if cc.Amount <= 0 {
			continue
		}
		key := decimal.NewFromFloat(cc.Amount).String()
		for _, bank := range byAmount[key] {
			apart := cc.TransactionDate.DaysSince(bank.TransactionDate)
			if apart < 0 {
				apart = -apart
			}
			if apart > toleranceDays {
				continue
			}
			if !within(cc.TransactionDate, start, end) && !within(bank.TransactionDate, start, end) {
				continue
			}
			out = append(out, dto.CorrelatedPayment{
				Amount:          decimal.NewFromFloat(cc.Amount).Round(2),
				CCDate:          cc.TransactionDate,
				CCDescription:   cc.Description,
				BankDate:        bank.TransactionDate,
				BankDescription: bank.Description,
				DaysApart:       apart,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[j].CCDate.Before(out[i].CCDate)
	})
	return out
}

func within(d, start, end civil.Date) bool {
	return !d.Before(start) && !d.After(end)
}
