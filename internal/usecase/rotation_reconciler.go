package usecase

import (
	"context"
	"log/slog"
	"time"
)

// StartRotationReconciler periodically rebuilds rotation queue membership
// from the reviewer directory. The queue lives in the fast store and can
// drift (restarts, missed availability updates); the directory availability
// field is the source of truth.
func (uc *DefaultReviewerUsecase) StartRotationReconciler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := uc.reconcileRotation(ctx); err != nil {
				slog.Error("rotation queue reconcile failed", "error", err.Error())
			}
		}
	}
}

func (uc *DefaultReviewerUsecase) reconcileRotation(ctx context.Context) error {
	reviewers, err := uc.ReviewerRepo.GetReviewers()
	if err != nil {
		return err
	}

	eligible := make(map[string]bool, len(reviewers))
	for _, reviewer := range reviewers {
		if reviewer.EligibleForRotation() {
			eligible[reviewer.ID] = true
		}
	}

	queued, err := uc.Rotation.Snapshot(ctx)
	if err != nil {
		return err
	}

	// drop stale members first, then append missing eligible reviewers to
	// the back; existing order is preserved to keep rotation fair
	queuedSet := make(map[string]bool, len(queued))
	for _, reviewerID := range queued {
		queuedSet[reviewerID] = true
		if !eligible[reviewerID] {
			if err := uc.Rotation.Remove(ctx, reviewerID); err != nil {
				slog.Error("failed to evict stale rotation member", "reviewer_id", reviewerID, "error", err.Error())
			}
		}
	}
	for _, reviewer := range reviewers {
		if eligible[reviewer.ID] && !queuedSet[reviewer.ID] {
			if err := uc.Rotation.Push(ctx, reviewer.ID); err != nil {
				slog.Error("failed to restore rotation member", "reviewer_id", reviewer.ID, "error", err.Error())
			}
		}
	}
	return nil
}
