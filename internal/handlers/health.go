package handlers

import (
	"net/http"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/response"
)

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{ResponseHandler: deps.ResponseHandler}
}

func (h *healthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
