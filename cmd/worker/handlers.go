package main

import (
	"github.com/hibiken/asynq"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/infrastructure/email/job"
	"library-backend/internal/shared/types"
)

// HandlerRegistry holds the task handlers this worker serves.
type HandlerRegistry struct {
	issueReceipt  *job.IssueReceiptHandler
	returnReceipt *job.ReturnReceiptHandler
}

func initializeHandlers(cfg *config.Config) *HandlerRegistry {
	emailService := email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	return &HandlerRegistry{
		issueReceipt:  job.NewIssueReceiptHandler(emailService),
		returnReceipt: job.NewReturnReceiptHandler(emailService),
	}
}

// RegisterHandlers binds task types to their handlers.
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(types.TypeIssueReceiptEmail, r.issueReceipt)
	mux.Handle(types.TypeReturnReceiptEmail, r.returnReceipt)
}
