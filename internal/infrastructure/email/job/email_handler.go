package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/infrastructure/email"
	"library-backend/internal/shared/types"
)

// ============================================
// Issue Receipt Handler
// ============================================

type IssueReceiptHandler struct {
	emailService email.EmailService
}

func NewIssueReceiptHandler(emailService email.EmailService) *IssueReceiptHandler {
	return &IssueReceiptHandler{
		emailService: emailService,
	}
}

func (h *IssueReceiptHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload types.IssueReceiptPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal IssueReceipt payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("email", payload.UserEmail).
		Str("issue_id", payload.IssueID.String()).
		Msg("Processing issue receipt email")

	if err := h.emailService.SendIssueReceipt(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send issue receipt email")
		return fmt.Errorf("send issue receipt email: %w", err)
	}

	return nil
}

// ============================================
// Return Receipt Handler
// ============================================

type ReturnReceiptHandler struct {
	emailService email.EmailService
}

func NewReturnReceiptHandler(emailService email.EmailService) *ReturnReceiptHandler {
	return &ReturnReceiptHandler{
		emailService: emailService,
	}
}

func (h *ReturnReceiptHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload types.ReturnReceiptPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ReturnReceipt payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("email", payload.UserEmail).
		Str("issue_id", payload.IssueID.String()).
		Str("fine", payload.FineAmount).
		Msg("Processing return receipt email")

	if err := h.emailService.SendReturnReceipt(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send return receipt email")
		return fmt.Errorf("send return receipt email: %w", err)
	}

	return nil
}
