package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/dto"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/middleware"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/models"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/response"
)

// maxStatementBytes caps uploaded statement size.
const maxStatementBytes = 10 << 20

type ImportService interface {
	ImportStatement(ctx context.Context, userID string, fileContent []byte, accountID, kind string, filename *string) (dto.ImportSummary, error)
	ListHistory(ctx context.Context, userID string, limit, offset int) ([]*models.ImportHistory, error)
}

type importHandlers struct {
	ResponseHandler response.ResponseHandler
	ImportSvc       ImportService
}

func NewImportHandlers(deps *Deps) *importHandlers {
	return &importHandlers{
		ResponseHandler: deps.ResponseHandler,
		ImportSvc:       deps.ImportSvc,
	}
}

func (h *importHandlers) ImportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/credit-card", h.ImportCreditCard)
	r.Post("/bank", h.ImportBank)
	r.Get("/history", h.History)
	return r
}

func (h *importHandlers) ImportCreditCard(w http.ResponseWriter, r *http.Request) {
	h.importStatement(w, r, models.SourceCreditCard)
}

func (h *importHandlers) ImportBank(w http.ResponseWriter, r *http.Request) {
	h.importStatement(w, r, models.SourceBank)
}

// importStatement accepts a multipart upload with a "file" part and an
// "account_id" form field.
func (h *importHandlers) importStatement(w http.ResponseWriter, r *http.Request, kind string) {
	if err := r.ParseMultipartForm(maxStatementBytes); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("expected multipart form upload"))
		return
	}

	accountID := strings.TrimSpace(r.FormValue("account_id"))
	if accountID == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("account_id form field is required"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("file form field is required"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxStatementBytes))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("could not read uploaded file"))
		return
	}

	var filename *string
	if header.Filename != "" {
		filename = &header.Filename
	}

	userID := middleware.UserID(r.Context())
	summary, err := h.ImportSvc.ImportStatement(r.Context(), userID, content, accountID, kind, filename)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

func (h *importHandlers) History(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	userID := middleware.UserID(r.Context())
	history, err := h.ImportSvc.ListHistory(r.Context(), userID, limit, offset)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, history)
}
