package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/middleware"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/response"
)

type TransactionService interface {
	List(ctx context.Context, userID string, q dto.TransactionQuery) (dto.TransactionListResult, error)
	Get(ctx context.Context, userID, transactionID string) (*models.Transaction, error)
	Create(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*models.Transaction, error)
	Update(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, userID, transactionID string) error
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{transactionId}", h.Get)
	r.Put("/{transactionId}", h.Update)
	r.Delete("/{transactionId}", h.Delete)
	return r
}

func (h *transactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	q, err := transactionQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	userID := middleware.UserID(r.Context())
	result, err := h.TransactionSvc.List(r.Context(), userID, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func transactionQuery(r *http.Request) (dto.TransactionQuery, error) {
	var q dto.TransactionQuery
	var err error

	if q.StartDate, err = queryDate(r, "start_date"); err != nil {
		return q, err
	}
	if q.EndDate, err = queryDate(r, "end_date"); err != nil {
		return q, err
	}
	q.Description = queryString(r, "description")
	q.Category = queryString(r, "category")
	q.AccountID = queryString(r, "account_id")
	if q.AmountMin, err = queryDecimal(r, "amount_min"); err != nil {
		return q, err
	}
	if q.AmountMax, err = queryDecimal(r, "amount_max"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(r, "limit", 100); err != nil {
		return q, err
	}
	if q.Offset, err = queryInt(r, "offset", 0); err != nil {
		return q, err
	}
	return q, nil
}

func (h *transactionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	userID := middleware.UserID(r.Context())

	t, err := h.TransactionSvc.Get(r.Context(), userID, transactionID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, t)
}

func (h *transactionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	userID := middleware.UserID(r.Context())
	t, err := h.TransactionSvc.Create(r.Context(), userID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, t)
}

func (h *transactionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	userID := middleware.UserID(r.Context())
	t, err := h.TransactionSvc.Update(r.Context(), userID, transactionID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, t)
}

func (h *transactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	userID := middleware.UserID(r.Context())

	if err := h.TransactionSvc.Delete(r.Context(), userID, transactionID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
