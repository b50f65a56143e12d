package services

import (
	"context"
	"strings"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/statement"
)

type transactionStore interface {
	Get(ctx context.Context, userID, transactionID string) (*models.Transaction, error)
	Query(ctx context.Context, userID string, q dto.TransactionQuery) ([]*models.Transaction, int, error)
	InsertBatch(ctx context.Context, txs []*models.Transaction) error
	Update(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (bool, error)
	Delete(ctx context.Context, userID, transactionID string) (bool, error)
}

type transactionService struct {
	store transactionStore
}

func NewTransactionService(store transactionStore) *transactionService {
	return &transactionService{store: store}
}

func (s *transactionService) Get(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	t, err := s.store.Get(ctx, userID, transactionID)
	if err != nil {
		return nil, errs.NewDatabaseError("get transaction", err)
	}
	if t == nil {
		return nil, errs.NewNotFoundError("transaction not found: " + transactionID)
	}
	return t, nil
}

func (s *transactionService) List(ctx context.Context, userID string, q dto.TransactionQuery) (dto.TransactionListResult, error) {
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return dto.TransactionListResult{}, errs.NewValidationError("end_date cannot be before start_date")
	}
	if q.Limit <= 0 {
		q.Limit = 100
	}

	txs, total, err := s.store.Query(ctx, userID, q)
	if err != nil {
		return dto.TransactionListResult{}, errs.NewDatabaseError("query transactions", err)
	}
	return dto.TransactionListResult{
		Transactions: txs,
		Total:        total,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}, nil
}

// Create persists a single manually entered transaction. The identity is the
// same deterministic id imports use, so entering a row a statement already
// covered is rejected instead of duplicated.
func (s *transactionService) Create(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, errs.NewValidationError("description cannot be empty")
	}
	if req.Source != models.SourceCreditCard && req.Source != models.SourceBank {
		return nil, errs.NewValidationError("source must be credit_card or bank")
	}
	if strings.TrimSpace(req.AccountID) == "" {
		return nil, errs.NewValidationError("account_id cannot be empty")
	}
	if !req.TransactionDate.IsValid() {
		return nil, errs.NewValidationError("transaction_date is required")
	}
	postDate := req.PostDate
	if !postDate.IsValid() {
		postDate = req.TransactionDate
	}

	id := statement.TransactionID(req.TransactionDate, postDate, description, req.Amount, req.AccountID)

	existing, err := s.store.Get(ctx, userID, id)
	if err != nil {
		return nil, errs.NewDatabaseError("check transaction exists", err)
	}
	if existing != nil {
		return nil, errs.NewAlreadyExistsError("an identical transaction already exists: " + id)
	}

	t := &models.Transaction{
		TransactionID:   id,
		UserID:          userID,
		TransactionDate: req.TransactionDate,
		PostDate:        postDate,
		Description:     description,
		Category:        req.Category,
		Type:            req.Type,
		Amount:          req.Amount,
		Memo:            req.Memo,
		AccountID:       strings.TrimSpace(req.AccountID),
		Source:          req.Source,
	}
	if err := s.store.InsertBatch(ctx, []*models.Transaction{t}); err != nil {
		return nil, errs.NewDatabaseError("insert transaction", err)
	}
	return s.Get(ctx, userID, id)
}

func (s *transactionService) Update(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, errs.NewValidationError("description cannot be empty")
	}

	matched, err := s.store.Update(ctx, userID, transactionID, req)
	if err != nil {
		return nil, errs.NewDatabaseError("update transaction", err)
	}
	if !matched {
		return nil, errs.NewNotFoundError("transaction not found: " + transactionID)
	}
	return s.Get(ctx, userID, transactionID)
}

func (s *transactionService) Delete(ctx context.Context, userID, transactionID string) error {
	matched, err := s.store.Delete(ctx, userID, transactionID)
	if err != nil {
		return errs.NewDatabaseError("delete transaction", err)
	}
	if !matched {
		return errs.NewNotFoundError("transaction not found: " + transactionID)
	}
	return nil
}
