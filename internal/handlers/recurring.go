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

type RecurringService interface {
	CreatePayment(ctx context.Context, userID string, req dto.CreateRecurringPaymentRequest) (*models.RecurringPayment, error)
	GetPayment(ctx context.Context, userID, paymentID string) (*models.RecurringPayment, error)
	ListPayments(ctx context.Context, userID string, q dto.RecurringPaymentQuery) (dto.RecurringPaymentListResult, error)
	UpdatePayment(ctx context.Context, userID, paymentID string, req dto.UpdateRecurringPaymentRequest) (*models.RecurringPayment, error)
	DeletePayment(ctx context.Context, userID, paymentID string) error
	GenerateRecords(ctx context.Context, userID, paymentID string, monthsAhead int) ([]*models.PaymentRecord, error)
	GetRecord(ctx context.Context, userID, recordID string) (*models.PaymentRecord, error)
	ListRecords(ctx context.Context, userID string, q dto.PaymentRecordQuery) ([]*models.PaymentRecord, int, error)
	MarkPaid(ctx context.Context, userID, recordID string, req dto.MarkPaidRequest) (*models.PaymentRecord, error)
	Skip(ctx context.Context, userID, recordID string, req dto.SkipRequest) (*models.PaymentRecord, error)
	ListUpcoming(ctx context.Context, userID string, daysAhead int) ([]*models.PaymentRecord, error)
	ListOverdue(ctx context.Context, userID string) ([]*models.PaymentRecord, error)
	Summary(ctx context.Context, userID string) (dto.PaymentSummary, error)
}

type recurringHandlers struct {
	ResponseHandler response.ResponseHandler
	RecurringSvc    RecurringService
}

func NewRecurringHandlers(deps *Deps) *recurringHandlers {
	return &recurringHandlers{
		ResponseHandler: deps.ResponseHandler,
		RecurringSvc:    deps.RecurringSvc,
	}
}

func (h *recurringHandlers) PaymentRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPayments)
	r.Post("/", h.CreatePayment)
	r.Get("/{paymentId}", h.GetPayment)
	r.Put("/{paymentId}", h.UpdatePayment)
	r.Delete("/{paymentId}", h.DeletePayment)
	r.Post("/{paymentId}/generate-records", h.GenerateRecords)
	return r
}

func (h *recurringHandlers) RecordRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListRecords)
	r.Get("/{recordId}", h.GetRecord)
	r.Post("/{recordId}/pay", h.MarkPaid)
	r.Post("/{recordId}/skip", h.Skip)
	return r
}

func (h *recurringHandlers) RollupRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/upcoming", h.ListUpcoming)
	r.Get("/overdue", h.ListOverdue)
	r.Get("/summary", h.Summary)
	return r
}

func (h *recurringHandlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecurringPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	userID := middleware.UserID(r.Context())
	payment, err := h.RecurringSvc.CreatePayment(r.Context(), userID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, payment)
}

func (h *recurringHandlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")
	userID := middleware.UserID(r.Context())

	payment, err := h.RecurringSvc.GetPayment(r.Context(), userID, paymentID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, payment)
}

func (h *recurringHandlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	var q dto.RecurringPaymentQuery
	var err error

	if q.IsActive, err = queryBool(r, "is_active"); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	q.Category = queryString(r, "category")
	q.Frequency = queryString(r, "frequency")
	if q.Limit, err = queryInt(r, "limit", 100); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if q.Offset, err = queryInt(r, "offset", 0); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	userID := middleware.UserID(r.Context())
	result, err := h.RecurringSvc.ListPayments(r.Context(), userID, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *recurringHandlers) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")
	var req dto.UpdateRecurringPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	userID := middleware.UserID(r.Context())
	payment, err := h.RecurringSvc.UpdatePayment(r.Context(), userID, paymentID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, payment)
}

func (h *recurringHandlers) DeletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")
	userID := middleware.UserID(r.Context())

	if err := h.RecurringSvc.DeletePayment(r.Context(), userID, paymentID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *recurringHandlers) GenerateRecords(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")
	monthsAhead, err := queryInt(r, "months_ahead", 3)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	userID := middleware.UserID(r.Context())
	created, err := h.RecurringSvc.GenerateRecords(r.Context(), userID, paymentID, monthsAhead)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, created)
}

func (h *recurringHandlers) GetRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordId")
	userID := middleware.UserID(r.Context())

	record, err := h.RecurringSvc.GetRecord(r.Context(), userID, recordID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, record)
}

func (h *recurringHandlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	var q dto.PaymentRecordQuery
	var err error

	q.PaymentID = queryString(r, "payment_id")
	q.Status = queryString(r, "status")
	if q.StartDate, err = queryDate(r, "start_date"); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if q.EndDate, err = queryDate(r, "end_date"); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if q.Limit, err = queryInt(r, "limit", 100); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if q.Offset, err = queryInt(r, "offset", 0); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	userID := middleware.UserID(r.Context())
	records, total, err := h.RecurringSvc.ListRecords(r.Context(), userID, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]any{
		"records": records,
		"total":   total,
		"limit":   q.Limit,
		"offset":  q.Offset,
	})
}

func (h *recurringHandlers) MarkPaid(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordId")
	var req dto.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	userID := middleware.UserID(r.Context())
	record, err := h.RecurringSvc.MarkPaid(r.Context(), userID, recordID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, record)
}

func (h *recurringHandlers) Skip(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordId")
	var req dto.SkipRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
			return
		}
	}

	userID := middleware.UserID(r.Context())
	record, err := h.RecurringSvc.Skip(r.Context(), userID, recordID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, record)
}

func (h *recurringHandlers) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	daysAhead, err := queryInt(r, "days_ahead", 30)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	userID := middleware.UserID(r.Context())
	records, err := h.RecurringSvc.ListUpcoming(r.Context(), userID, daysAhead)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, records)
}

func (h *recurringHandlers) ListOverdue(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	records, err := h.RecurringSvc.ListOverdue(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, records)
}

func (h *recurringHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	summary, err := h.RecurringSvc.Summary(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}
