package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
)

// Annotate appends a free-form comment entry to a request's audit note.
// Allowed for the current assignee, or for roles that may reassign anyone's
// work. The composed note is derived from these entries on read.
func (uc *DefaultWithdrawalUsecase) Annotate(ctx context.Context, withdrawalID uint64, actorID, text string) error {
	if text == "" {
		return fmt.Errorf("%w: annotation text is required", domain.ErrValidation)
	}

	withdrawal, err := uc.WithdrawalRepo.GetWithdrawalByID(withdrawalID)
	if err != nil {
		return err
	}

	actor, err := uc.ReviewerRepo.GetReviewerByID(actorID)
	if err != nil {
		return err
	}
	if !withdrawal.AssignedTo(actorID) && !actor.Role.Allowed(domain.ActionAssignAny) {
		return domain.ErrUnauthorized
	}

	return uc.WithdrawalRepo.AddAnnotation(&domain.Annotation{
		ID:           uc.refGenerator(),
		WithdrawalID: withdrawalID,
		Code:         domain.AnnotationComment,
		Text:         text,
		CreatedAt:    time.Now(),
	})
}
