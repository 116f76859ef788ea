package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/kafka"
	withdrawaldto "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/dto/withdrawal"
)

// Conclude moves a pending request to its terminal status. Only the current
// assignee may conclude, regardless of role. An automatic conclusion commits
// locally only after the payment provider confirmed the upstream side, so the
// two ledgers cannot diverge on failure. A manual conclusion is an
// administrative override recorded without the provider round trip.
func (uc *DefaultWithdrawalUsecase) Conclude(ctx context.Context, withdrawalID uint64, actorID string, input *withdrawaldto.ConcludeWithdrawalInput) error {
	var status domain.WithdrawalStatus
	switch input.Decision {
	case withdrawaldto.DecisionApprove:
		status = domain.StatusApproved
	case withdrawaldto.DecisionReject:
		status = domain.StatusRejected
	default:
		return fmt.Errorf("%w: unknown decision %q", domain.ErrValidation, input.Decision)
	}
	if status == domain.StatusRejected && input.Reason == "" {
		return fmt.Errorf("%w: reject reason is required", domain.ErrValidation)
	}

	withdrawal, err := uc.WithdrawalRepo.GetWithdrawalByID(withdrawalID)
	if err != nil {
		return err
	}
	if withdrawal.Concluded() {
		return domain.ErrAlreadyConcluded
	}
	if !withdrawal.AssignedTo(actorID) {
		return domain.ErrUnauthorized
	}

	actor, err := uc.ReviewerRepo.GetReviewerByID(actorID)
	if err != nil {
		return err
	}
	if !actor.Role.Allowed(domain.ActionConclude) {
		return domain.ErrUnauthorized
	}
	if input.Manual && !actor.Role.Allowed(domain.ActionConcludeManual) {
		return domain.ErrUnauthorized
	}

	if !input.Manual {
		if status == domain.StatusApproved {
			err = uc.PaymentProvider.ApprovePayout(ctx, withdrawal.ExternalRef)
		} else {
			err = uc.PaymentProvider.RejectPayout(ctx, withdrawal.ExternalRef, input.Reason)
		}
		if err != nil {
			uc.Metrics.RecordError("payment_provider")
			return err
		}
	}

	concludedAt := time.Now()
	var rejectReason *string
	if status == domain.StatusRejected {
		rejectReason = &input.Reason
	}
	if err := uc.WithdrawalRepo.ConcludeIf(withdrawalID, actorID, status, rejectReason, concludedAt); err != nil {
		return err
	}

	uc.annotateConclusion(withdrawalID, status, input.Manual, input.Reason, concludedAt)
	uc.recordConclusionStats(ctx, withdrawal, actor.ID, status, input.Manual, input.Reason, concludedAt)

	uc.Metrics.RecordConcluded(
		actor.ID,
		string(status),
		withdrawal.Currency,
		input.Manual,
		withdrawal.Amount,
		domain.ClampDuration(concludedAt.Sub(withdrawal.RequestedAt).Minutes()),
	)
	uc.publishEvent(kafka.WithdrawalEvent{
		WithdrawalID: withdrawalID,
		Type:         kafka.EventConcluded,
		ReviewerID:   actor.ID,
		Status:       string(status),
		Amount:       withdrawal.Amount,
		Currency:     withdrawal.Currency,
		RejectReason: input.Reason,
	})
	return nil
}

func (uc *DefaultWithdrawalUsecase) annotateConclusion(withdrawalID uint64, status domain.WithdrawalStatus, manual bool, reason string, concludedAt time.Time) {
	code := domain.AnnotationAutoApproved
	switch {
	case status == domain.StatusApproved && manual:
		code = domain.AnnotationManualApproved
	case status == domain.StatusRejected && manual:
		code = domain.AnnotationManualRejected
	case status == domain.StatusRejected:
		code = domain.AnnotationAutoRejected
	}

	annotation := &domain.Annotation{
		ID:           uc.refGenerator(),
		WithdrawalID: withdrawalID,
		Code:         code,
		Text:         reason,
		CreatedAt:    concludedAt,
	}
	if err := uc.WithdrawalRepo.AddAnnotation(annotation); err != nil {
		slog.Error("failed to append conclusion annotation", "withdrawal_id", withdrawalID, "error", err.Error())
		uc.Metrics.RecordError("annotation")
	}
}

// recordConclusionStats updates the aggregates after the transition already
// committed. A failing aggregate never rolls the conclusion back.
func (uc *DefaultWithdrawalUsecase) recordConclusionStats(
	ctx context.Context,
	withdrawal *domain.Withdrawal,
	reviewerID string,
	status domain.WithdrawalStatus,
	manual bool,
	reason string,
	concludedAt time.Time,
) {
	outcome := domain.OutcomeApproved
	if status == domain.StatusRejected {
		outcome = domain.OutcomeRejected
	}

	if err := uc.Statistics.RecordConclusion(ctx, reviewerID, outcome, manual, withdrawal.RequestedAt, concludedAt); err != nil {
		slog.Error("failed to update conclusion statistics", "withdrawal_id", withdrawal.ID, "error", err.Error())
		uc.Metrics.RecordError("statistics")
	}

	if status == domain.StatusRejected {
		if err := uc.Statistics.RecordRejectReason(ctx, reason); err != nil {
			slog.Error("failed to update reject reason counter", "withdrawal_id", withdrawal.ID, "error", err.Error())
			uc.Metrics.RecordError("statistics")
		}
		return
	}

	if err := uc.Statistics.RecordPayout(ctx, withdrawal.Amount); err != nil {
		slog.Error("failed to update paid amount counter", "withdrawal_id", withdrawal.ID, "error", err.Error())
		uc.Metrics.RecordError("statistics")
	}
}
