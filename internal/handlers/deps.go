package handlers

import (
	"log/slog"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
	TransactionSvc  TransactionService
	ImportSvc       ImportService
	RecurringSvc    RecurringService
	DashboardSvc    DashboardService
}
