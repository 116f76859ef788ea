package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/metrics"
	reviewerdto "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/dto/reviewer"
	"github.com/google/uuid"
)

type ReviewerUsecase interface {
	CreateReviewer(ctx context.Context, input *reviewerdto.CreateReviewerInput) (*domain.Reviewer, error)
	GetReviewerByID(reviewerID string) (*domain.Reviewer, error)
	GetReviewers() ([]*domain.Reviewer, error)
	SetAvailability(ctx context.Context, actorID, reviewerID string, availability domain.Availability) error
	DeleteReviewer(ctx context.Context, actorID, reviewerID string) error
}

type DefaultReviewerUsecase struct {
	ReviewerRepo   domain.ReviewerRepository
	WithdrawalRepo domain.WithdrawalRepository
	TransferRepo   domain.TransferRepository
	Rotation       domain.RotationQueue
	Metrics        *metrics.WithdrawalMetrics
}

func NewDefaultReviewerUsecase(
	reviewerRepo domain.ReviewerRepository,
	withdrawalRepo domain.WithdrawalRepository,
	transferRepo domain.TransferRepository,
	rotation domain.RotationQueue,
	withdrawalMetrics *metrics.WithdrawalMetrics) *DefaultReviewerUsecase {

	return &DefaultReviewerUsecase{
		ReviewerRepo:   reviewerRepo,
		WithdrawalRepo: withdrawalRepo,
		TransferRepo:   transferRepo,
		Rotation:       rotation,
		Metrics:        withdrawalMetrics,
	}
}

func (uc *DefaultReviewerUsecase) CreateReviewer(ctx context.Context, input *reviewerdto.CreateReviewerInput) (*domain.Reviewer, error) {
	if input.Login == "" {
		return nil, fmt.Errorf("%w: login is required", domain.ErrValidation)
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	reviewer := &domain.Reviewer{
		ID:           uuid.New().String(),
		Login:        input.Login,
		Role:         input.Role,
		Availability: domain.AvailabilityOffline,
	}
	if err := uc.ReviewerRepo.CreateReviewer(reviewer); err != nil {
		return nil, err
	}
	return reviewer, nil
}

func (uc *DefaultReviewerUsecase) GetReviewerByID(reviewerID string) (*domain.Reviewer, error) {
	return uc.ReviewerRepo.GetReviewerByID(reviewerID)
}

func (uc *DefaultReviewerUsecase) GetReviewers() ([]*domain.Reviewer, error) {
	return uc.ReviewerRepo.GetReviewers()
}

func (uc *DefaultReviewerUsecase) SetAvailability(ctx context.Context, actorID, reviewerID string, availability domain.Availability) error {
	if !domain.ValidAvailability(availability) {
		return fmt.Errorf("%w: unknown availability %q", domain.ErrValidation, availability)
	}

	if actorID != reviewerID {
		actor, err := uc.ReviewerRepo.GetReviewerByID(actorID)
		if err != nil {
			return err
		}
		if !actor.Role.Allowed(domain.ActionManageReviewers) {
			return domain.ErrUnauthorized
		}
	}

	reviewer, err := uc.ReviewerRepo.GetReviewerByID(reviewerID)
	if err != nil {
		return err
	}

	if err := uc.ReviewerRepo.UpdateAvailability(reviewerID, availability); err != nil {
		return err
	}
	reviewer.Availability = availability

	// Rotation queue updates are best-effort: the durable availability field
	// is authoritative and the reconciler repairs any drift.
	if reviewer.EligibleForRotation() {
		if err := uc.Rotation.Push(ctx, reviewerID); err != nil {
			slog.Error("failed to push reviewer into rotation queue", "reviewer_id", reviewerID, "error", err.Error())
		}
		return nil
	}

	if err := uc.Rotation.Remove(ctx, reviewerID); err != nil {
		slog.Error("failed to remove reviewer from rotation queue", "reviewer_id", reviewerID, "error", err.Error())
	}
	uc.releaseAssignments(reviewerID)
	return nil
}

func (uc *DefaultReviewerUsecase) DeleteReviewer(ctx context.Context, actorID, reviewerID string) error {
	actor, err := uc.ReviewerRepo.GetReviewerByID(actorID)
	if err != nil {
		return err
	}
	if !actor.Role.Allowed(domain.ActionManageReviewers) {
		return domain.ErrUnauthorized
	}

	if err := uc.Rotation.Remove(ctx, reviewerID); err != nil {
		slog.Error("failed to remove reviewer from rotation queue", "reviewer_id", reviewerID, "error", err.Error())
	}
	uc.releaseAssignments(reviewerID)

	return uc.ReviewerRepo.DeleteReviewer(reviewerID)
}

// releaseAssignments force-unassigns every pending request held by the
// reviewer. This is a system release, not a transfer: the ledger entry
// carries nil on both sides except the target pool.
func (uc *DefaultReviewerUsecase) releaseAssignments(reviewerID string) {
	withdrawals, err := uc.WithdrawalRepo.GetPendingByAssignee(reviewerID)
	if err != nil {
		slog.Error("failed to list pending withdrawals for forced release", "reviewer_id", reviewerID, "error", err.Error())
		return
	}

	for _, withdrawal := range withdrawals {
		if err := uc.WithdrawalRepo.UpdateAssigneeIf(withdrawal.ID, &reviewerID, nil); err != nil {
			// concluded or reassigned concurrently, nothing to release
			slog.Warn("skipping forced release", "withdrawal_id", withdrawal.ID, "error", err.Error())
			continue
		}

		record := &domain.TransferRecord{
			ID:            uuid.New().String(),
			WithdrawalID:  withdrawal.ID,
			TransferredBy: nil,
			TransferredTo: nil,
			CreatedAt:     time.Now(),
		}
		if err := uc.TransferRepo.Append(record); err != nil {
			slog.Error("failed to append forced-release transfer record", "withdrawal_id", withdrawal.ID, "error", err.Error())
		}
		uc.Metrics.RecordForcedRelease()
	}
}
