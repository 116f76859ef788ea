package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/kafka"
	withdrawaldto "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/dto/withdrawal"
	"github.com/google/uuid"
)

// Submit registers a new pending withdrawal and tries to hand it to the next
// reviewer in rotation. A submit with no eligible reviewer online is a valid
// outcome: the request stays unassigned until someone claims it.
func (uc *DefaultWithdrawalUsecase) Submit(ctx context.Context, input *withdrawaldto.SubmitWithdrawalInput) (*withdrawaldto.WithdrawalOutput, error) {
	if input.PlayerID == "" {
		return nil, fmt.Errorf("%w: player id is required", domain.ErrValidation)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if input.Method == "" {
		return nil, fmt.Errorf("%w: method is required", domain.ErrValidation)
	}

	externalRef := input.ExternalRef
	if externalRef == "" {
		externalRef = uc.refGenerator()
	}
	requestedAt := input.RequestedAt
	if requestedAt.IsZero() {
		requestedAt = time.Now()
	}

	withdrawal := &domain.Withdrawal{
		PlayerID:       input.PlayerID,
		ExternalRef:    externalRef,
		Amount:         input.Amount,
		Currency:       input.Currency,
		Method:         input.Method,
		Note:           input.Note,
		AdditionalInfo: input.AdditionalInfo,
		Status:         domain.StatusPending,
		RequestedAt:    requestedAt,
	}
	if err := uc.WithdrawalRepo.CreateWithdrawal(withdrawal); err != nil {
		return nil, err
	}
	uc.Metrics.RecordSubmitted(input.Method, input.Currency)

	assignee, err := uc.assignNext(ctx, withdrawal)
	if err != nil {
		// the request is already durable; assignment problems must not fail
		// the submit, the request simply stays in the unassigned pool
		slog.Error("assignment scan failed", "withdrawal_id", withdrawal.ID, "error", err.Error())
		uc.Metrics.RecordError("assign_scan")
		assignee = nil
	}

	return &withdrawaldto.WithdrawalOutput{
		WithdrawalID: withdrawal.ID,
		ExternalRef:  withdrawal.ExternalRef,
		Status:       string(withdrawal.Status),
		AssignedTo:   assignee,
	}, nil
}

// assignNext walks the rotation queue front to back. Each step uses the
// queue's atomic rotate, then re-verifies the candidate against the reviewer
// directory because queue membership can be stale.
func (uc *DefaultWithdrawalUsecase) assignNext(ctx context.Context, withdrawal *domain.Withdrawal) (*string, error) {
	startTime := time.Now()
	defer func() {
		uc.Metrics.RecordAssignScanDuration(time.Since(startTime).Seconds())
	}()

	queueLen, err := uc.Rotation.Len(ctx)
	if err != nil {
		return nil, err
	}

	for i := int64(0); i < queueLen; i++ {
		candidateID, err := uc.Rotation.Rotate(ctx)
		if err != nil {
			return nil, err
		}
		if candidateID == "" {
			break
		}

		reviewer, err := uc.ReviewerRepo.GetReviewerByID(candidateID)
		if err != nil {
			// vanished or unreadable reviewer: not eligible, keep scanning
			uc.dropFromQueue(ctx, candidateID)
			continue
		}
		if !reviewer.EligibleForRotation() {
			uc.dropFromQueue(ctx, candidateID)
			continue
		}

		if err := uc.WithdrawalRepo.UpdateAssigneeIf(withdrawal.ID, nil, &reviewer.ID); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// someone claimed the request while we were scanning
				return nil, nil
			}
			return nil, err
		}

		uc.appendTransferRecord(withdrawal.ID, nil, &reviewer.ID)
		if err := uc.Rotation.MarkLastAssigned(ctx, reviewer.ID); err != nil {
			slog.Error("failed to mark last assigned reviewer", "reviewer_id", reviewer.ID, "error", err.Error())
		}

		uc.Metrics.RecordAssigned(reviewer.ID)
		uc.publishEvent(kafka.WithdrawalEvent{
			WithdrawalID: withdrawal.ID,
			Type:         kafka.EventAssigned,
			ReviewerID:   reviewer.ID,
			Status:       string(domain.StatusPending),
			Amount:       withdrawal.Amount,
			Currency:     withdrawal.Currency,
		})
		return &reviewer.ID, nil
	}

	uc.Metrics.RecordUnassignedSubmit()
	return nil, nil
}

func (uc *DefaultWithdrawalUsecase) dropFromQueue(ctx context.Context, reviewerID string) {
	if err := uc.Rotation.Remove(ctx, reviewerID); err != nil {
		slog.Error("failed to drop stale reviewer from rotation queue", "reviewer_id", reviewerID, "error", err.Error())
	}
}

// appendTransferRecord writes the ledger entry for an assignment change.
// Ledger writes are secondary to the authoritative assignee update: a failed
// append is logged, never rolled back.
func (uc *DefaultWithdrawalUsecase) appendTransferRecord(withdrawalID uint64, transferredBy, transferredTo *string) {
	record := &domain.TransferRecord{
		ID:            uuid.New().String(),
		WithdrawalID:  withdrawalID,
		TransferredBy: transferredBy,
		TransferredTo: transferredTo,
		CreatedAt:     time.Now(),
	}
	if err := uc.TransferRepo.Append(record); err != nil {
		slog.Error("failed to append transfer record", "withdrawal_id", withdrawalID, "error", err.Error())
		uc.Metrics.RecordError("transfer_ledger")
	}

	if uc.HistoryCache != nil {
		if err := uc.HistoryCache.Invalidate(context.Background(), withdrawalID); err != nil {
			slog.Warn("failed to invalidate history cache", "withdrawal_id", withdrawalID, "error", err.Error())
		}
	}
}
