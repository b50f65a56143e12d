package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/middleware"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/response"
)

type UserService interface {
	Register(ctx context.Context, authSub, email string) (*models.User, error)
	Resolve(ctx context.Context, authSub string) (*models.User, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Get("/me", h.Me)
	return r
}

// Register provisions a user for the verified token subject. Idempotent:
// registering twice returns the same user.
func (h *userHandlers) Register(w http.ResponseWriter, r *http.Request) {
	sub := middleware.Sub(r.Context())
	email := middleware.Email(r.Context())

	user, err := h.UserSvc.Register(r.Context(), sub, email)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, user)
}

func (h *userHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sub := middleware.Sub(r.Context())

	user, err := h.UserSvc.Resolve(r.Context(), sub)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}
