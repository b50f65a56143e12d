// Package warehouse reads the analytical copy of the ledger kept in
// BigQuery. The dashboard binary serves chart aggregates from here instead
// of hitting the transactional store.
package warehouse

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
)

type Client struct {
	bq      *bigquery.Client
	dataset string
}

func New(ctx context.Context, projectID, dataset string) (*Client, error) {
	bq, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("warehouse: bigquery client: %w", err)
	}
	return &Client{bq: bq, dataset: dataset}, nil
}

func (c *Client) Close() error {
	return c.bq.Close()
}

// Row is one warehouse ledger line. Amounts live as FLOAT64 in the
// warehouse; they are converted to decimal at the read boundary.
type Row struct {
	TransactionDate civil.Date          `bigquery:"transaction_date"`
	Description     string              `bigquery:"description"`
	Category        bigquery.NullString `bigquery:"category"`
	Type            bigquery.NullString `bigquery:"type"`
	Amount          float64             `bigquery:"amount"`
	AccountID       string              `bigquery:"account_id"`
}

// appleCardAccounts are account ids whose upstream export carries inverted
// signs relative to every other feed.
var appleCardAccounts = map[string]struct{}{
	"cc_apple":   {},
	"apple_card": {},
}

// NormalizeSigns flips amounts on rows belonging to Apple-card accounts so
// all rows share the charges-negative convention. Every credit-card fetch
// passes through here before any sign-dependent filtering. Non-mutating.
func NormalizeSigns(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		if _, ok := appleCardAccounts[strings.ToLower(r.AccountID)]; ok {
			r.Amount = -r.Amount
		}
		out[i] = r
	}
	return out
}

func (c *Client) query(ctx context.Context, sql string, params []bigquery.QueryParameter) (*bigquery.RowIterator, error) {
	q := c.bq.Query(sql)
	q.Parameters = params
	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("warehouse: running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("warehouse: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("warehouse: job error: %w", err)
	}
	return job.Read(ctx)
}

func (c *Client) readRows(ctx context.Context, sql string, params []bigquery.QueryParameter) ([]Row, error) {
	it, err := c.query(ctx, sql, params)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		var r Row
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("warehouse: reading row: %w", err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
