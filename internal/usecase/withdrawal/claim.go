package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/kafka"
)

// Claim assigns an unassigned pending request. An actor claims for themself;
// supervisors and administrators may instead assign directly to any reviewer.
// Authorization is validated against the persisted state at write time via
// the conditional assignee update, never against an earlier read.
func (uc *DefaultWithdrawalUsecase) Claim(ctx context.Context, withdrawalID uint64, actorID, targetID string) error {
	withdrawal, err := uc.WithdrawalRepo.GetWithdrawalByID(withdrawalID)
	if err != nil {
		return err
	}
	if withdrawal.Concluded() {
		return domain.ErrAlreadyConcluded
	}

	actor, err := uc.ReviewerRepo.GetReviewerByID(actorID)
	if err != nil {
		return err
	}

	target := actor
	if targetID != "" && targetID != actorID {
		if !actor.Role.Allowed(domain.ActionAssignAny) {
			return domain.ErrUnauthorized
		}
		target, err = uc.ReviewerRepo.GetReviewerByID(targetID)
		if err != nil {
			return err
		}
	} else {
		if !actor.Role.Allowed(domain.ActionClaimSelf) {
			return domain.ErrUnauthorized
		}
	}
	if target.Role == domain.RoleObserver {
		return fmt.Errorf("%w: observers cannot hold withdrawal requests", domain.ErrValidation)
	}

	if withdrawal.AssigneeID != nil {
		return domain.ErrConflict
	}

	if err := uc.WithdrawalRepo.UpdateAssigneeIf(withdrawalID, nil, &target.ID); err != nil {
		return err
	}

	// a self-claim comes out of the unassigned pool, so the ledger keeps
	// transferredBy nil; a direct assignment names the acting supervisor
	var transferredBy *string
	if target.ID != actorID {
		transferredBy = &actor.ID
	}
	uc.appendTransferRecord(withdrawalID, transferredBy, &target.ID)

	uc.Metrics.RecordTransfer("claim")
	uc.publishEvent(kafka.WithdrawalEvent{
		WithdrawalID: withdrawalID,
		Type:         kafka.EventClaimed,
		ReviewerID:   target.ID,
		Status:       string(domain.StatusPending),
		Amount:       withdrawal.Amount,
		Currency:     withdrawal.Currency,
	})
	return nil
}
