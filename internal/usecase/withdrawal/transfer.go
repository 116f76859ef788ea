package usecase

import (
	"context"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/kafka"
)

// Transfer moves a pending request from its current assignee to target.
// Supervisors and administrators transfer unconditionally; an agent may only
// hand over a request they currently hold, and only to another agent.
func (uc *DefaultWithdrawalUsecase) Transfer(ctx context.Context, withdrawalID uint64, actorID, targetID string) error {
	withdrawal, err := uc.WithdrawalRepo.GetWithdrawalByID(withdrawalID)
	if err != nil {
		return err
	}
	if withdrawal.Concluded() {
		return domain.ErrAlreadyConcluded
	}
	if withdrawal.AssigneeID == nil {
		return domain.ErrNotAssigned
	}
	currentAssignee := *withdrawal.AssigneeID

	actor, err := uc.ReviewerRepo.GetReviewerByID(actorID)
	if err != nil {
		return err
	}
	target, err := uc.ReviewerRepo.GetReviewerByID(targetID)
	if err != nil {
		return err
	}

	switch {
	case actor.Role.Allowed(domain.ActionTransferAny):
	case actor.Role.Allowed(domain.ActionTransferOwn):
		if currentAssignee != actorID {
			return domain.ErrUnauthorized
		}
		if target.Role != domain.RoleAgent {
			return domain.ErrUnauthorized
		}
	default:
		return domain.ErrUnauthorized
	}

	if err := uc.WithdrawalRepo.UpdateAssigneeIf(withdrawalID, &currentAssignee, &target.ID); err != nil {
		return err
	}

	uc.appendTransferRecord(withdrawalID, &actor.ID, &target.ID)

	uc.Metrics.RecordTransfer("transfer")
	uc.publishEvent(kafka.WithdrawalEvent{
		WithdrawalID: withdrawalID,
		Type:         kafka.EventTransferred,
		ReviewerID:   target.ID,
		Status:       string(domain.StatusPending),
		Amount:       withdrawal.Amount,
		Currency:     withdrawal.Currency,
	})
	return nil
}

// Unassign releases a pending request back into the unassigned pool. Allowed
// for supervisors/administrators, or for the assignee dropping their own claim.
func (uc *DefaultWithdrawalUsecase) Unassign(ctx context.Context, withdrawalID uint64, actorID string) error {
	withdrawal, err := uc.WithdrawalRepo.GetWithdrawalByID(withdrawalID)
	if err != nil {
		return err
	}
	if withdrawal.Concluded() {
		return domain.ErrAlreadyConcluded
	}
	if withdrawal.AssigneeID == nil {
		return domain.ErrNotAssigned
	}
	currentAssignee := *withdrawal.AssigneeID

	actor, err := uc.ReviewerRepo.GetReviewerByID(actorID)
	if err != nil {
		return err
	}

	allowed := actor.Role.Allowed(domain.ActionUnassignAny) ||
		(actor.Role.Allowed(domain.ActionUnassignOwn) && currentAssignee == actorID)
	if !allowed {
		return domain.ErrUnauthorized
	}

	if err := uc.WithdrawalRepo.UpdateAssigneeIf(withdrawalID, &currentAssignee, nil); err != nil {
		return err
	}

	uc.appendTransferRecord(withdrawalID, &actor.ID, nil)

	uc.Metrics.RecordTransfer("unassign")
	uc.publishEvent(kafka.WithdrawalEvent{
		WithdrawalID: withdrawalID,
		Type:         kafka.EventUnassigned,
		Status:       string(domain.StatusPending),
		Amount:       withdrawal.Amount,
		Currency:     withdrawal.Currency,
	})
	return nil
}
