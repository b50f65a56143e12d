package handlers

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/response"
)

type DashboardService interface {
	CCSpendByCategory(ctx context.Context, start, end civil.Date) ([]dto.CategorySpend, error)
	BankIncomeExpense(ctx context.Context, start, end civil.Date) (dto.IncomeExpense, error)
	CorrelatedPayments(ctx context.Context, start, end civil.Date, toleranceDays int) ([]dto.CorrelatedPayment, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    DashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/cc-categories", h.CCCategories)
	r.Get("/income-expense", h.IncomeExpense)
	r.Get("/correlated-payments", h.CorrelatedPayments)
	return r
}

// dateRange reads start_date/end_date, defaulting to the trailing 90 days.
func dateRange(r *http.Request) (civil.Date, civil.Date, error) {
	end := civil.DateOf(time.Now().UTC())
	start := end.AddDays(-90)

	if d, err := queryDate(r, "start_date"); err != nil {
		return start, end, err
	} else if d != nil {
		start = *d
	}
	if d, err := queryDate(r, "end_date"); err != nil {
		return start, end, err
	} else if d != nil {
		end = *d
	}
	return start, end, nil
}

func (h *dashboardHandlers) CCCategories(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	spend, err := h.DashboardSvc.CCSpendByCategory(r.Context(), start, end)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, spend)
}

func (h *dashboardHandlers) IncomeExpense(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.DashboardSvc.BankIncomeExpense(r.Context(), start, end)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

func (h *dashboardHandlers) CorrelatedPayments(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	tolerance, err := queryInt(r, "tolerance_days", 3)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	pairs, err := h.DashboardSvc.CorrelatedPayments(r.Context(), start, end, tolerance)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, pairs)
}
