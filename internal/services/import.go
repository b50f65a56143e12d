package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/metrics"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/statement"
	"github.com/eyeonits/finapp-personal-finance-tracker/pkg/logger"
)

type importTransactionStore interface {
	ExistingIDs(ctx context.Context, userID string, ids []string) (map[string]struct{}, error)
	InsertBatch(ctx context.Context, txs []*models.Transaction) error
}

type importHistoryStore interface {
	InsertHistory(ctx context.Context, h *models.ImportHistory) error
	ListHistory(ctx context.Context, userID string, limit, offset int) ([]*models.ImportHistory, error)
}

type importService struct {
	txs     importTransactionStore
	history importHistoryStore
}

func NewImportService(txs importTransactionStore, history importHistoryStore) *importService {
	return &importService{txs: txs, history: history}
}

// ImportStatement runs the full import pipeline for one uploaded statement:
// map rows for the detected layout, parse and normalize each row, assign
// deterministic ids, drop duplicates within the batch and against the store,
// then bulk-insert the remainder. Bad rows are skipped, not fatal; mapping
// and persistence errors fail the whole batch. Exactly one history row is
// written either way.
func (s *importService) ImportStatement(ctx context.Context, userID string, fileContent []byte, accountID, kind string, filename *string) (dto.ImportSummary, error) {
	if kind != models.SourceCreditCard && kind != models.SourceBank {
		return dto.ImportSummary{}, errs.NewValidationError("invalid import type: " + kind)
	}
	if strings.TrimSpace(accountID) == "" {
		return dto.ImportSummary{}, errs.NewValidationError("account_id cannot be empty")
	}

	total, inserted, skipped, runErr := s.run(ctx, userID, fileContent, accountID, kind)

	var errorMessage *string
	if runErr != nil {
		msg := runErr.Error()
		errorMessage = &msg
		inserted = 0
		skipped = total
	}

	status := models.ImportSuccess
	switch {
	case runErr != nil:
		status = models.ImportFailed
	case inserted == 0 && total > 0 && skipped == total:
		status = models.ImportFailed
	case skipped > 0 && inserted > 0:
		status = models.ImportPartial
	}

	history := &models.ImportHistory{
		ImportID:     uuid.NewString(),
		UserID:       userID,
		ImportType:   kind,
		AccountID:    accountID,
		Filename:     filename,
		RowsTotal:    total,
		RowsInserted: inserted,
		RowsSkipped:  skipped,
		Status:       status,
		ErrorMessage: errorMessage,
	}
	if err := s.history.InsertHistory(ctx, history); err != nil {
		return dto.ImportSummary{}, errs.NewDatabaseError("insert import history", err)
	}

	metrics.ImportsTotal.WithLabelValues(kind, status).Inc()
	metrics.ImportRows.WithLabelValues("inserted").Add(float64(inserted))
	metrics.ImportRows.WithLabelValues("skipped").Add(float64(skipped))

	log := logger.FromContext(ctx)
	log.Info("statement import finished",
		"import_id", history.ImportID,
		"type", kind,
		"account_id", accountID,
		"rows_total", total,
		"rows_inserted", inserted,
		"rows_skipped", skipped,
		"status", status)

	return dto.ImportSummary{
		ImportID:     history.ImportID,
		RowsTotal:    total,
		RowsInserted: inserted,
		RowsSkipped:  skipped,
		Status:       status,
	}, nil
}

// run executes the fallible part of the pipeline. A returned error is
// batch-fatal; per-row problems only bump the skip counter.
func (s *importService) run(ctx context.Context, userID string, fileContent []byte, accountID, kind string) (total, inserted, skipped int, err error) {
	var rows []statement.Row
	if kind == models.SourceBank {
		rows, err = statement.MapBankRows(fileContent)
	} else {
		rows, err = statement.MapCardRows(fileContent)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	total = len(rows)

	// First pass: parse, normalize and assign identities. Duplicate
	// identities within the batch are skipped, first occurrence wins.
	parsed := make([]*models.Transaction, 0, len(rows))
	ids := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		txDate, txOK, txErr := statement.ParseDate(row.TransactionDate)
		postDate, postOK, postErr := statement.ParseDate(row.PostDate)
		amount, amtErr := statement.CleanAmount(row.Amount)

		if txErr != nil || postErr != nil || amtErr != nil || !txOK || !postOK {
			skipped++
			continue
		}

		description := strings.TrimSpace(row.Description)
		id := statement.TransactionID(txDate, postDate, description, amount, accountID)
		if _, dup := seen[id]; dup {
			skipped++
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)

		parsed = append(parsed, &models.Transaction{
			TransactionID:   id,
			UserID:          userID,
			TransactionDate: txDate,
			PostDate:        postDate,
			Description:     description,
			Category:        optional(row.Category),
			Type:            optional(row.Type),
			Amount:          amount,
			Memo:            optional(row.Memo),
			AccountID:       accountID,
			Source:          kind,
		})
	}

	// One existence-check round trip for the whole batch.
	existing, err := s.txs.ExistingIDs(ctx, userID, ids)
	if err != nil {
		return total, 0, 0, errs.NewDatabaseError("check existing transaction ids", err)
	}

	toCreate := parsed[:0]
	for _, t := range parsed {
		if _, ok := existing[t.TransactionID]; ok {
			skipped++
			continue
		}
		toCreate = append(toCreate, t)
	}

	// One bulk insert for whatever survived.
	if len(toCreate) > 0 {
		if err := s.txs.InsertBatch(ctx, toCreate); err != nil {
			return total, 0, 0, errs.NewDatabaseError("bulk insert transactions", err)
		}
		inserted = len(toCreate)
	}

	return total, inserted, skipped, nil
}

func (s *importService) ListHistory(ctx context.Context, userID string, limit, offset int) ([]*models.ImportHistory, error) {
	return s.history.ListHistory(ctx, userID, limit, offset)
}

// optional converts a possibly-blank mapped cell into a nullable field.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
