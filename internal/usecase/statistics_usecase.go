package usecase

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
)

type StatisticsUsecase interface {
	RecordConclusion(ctx context.Context, reviewerID string, outcome domain.ConclusionOutcome, manual bool, requestedAt, concludedAt time.Time) error
	RecordRejectReason(ctx context.Context, reason string) error
	RecordPayout(ctx context.Context, amount float64) error
	GetReviewerStatistics(ctx context.Context, reviewerID string) (*domain.ReviewerStatistics, error)
	GetGlobalStatistics(ctx context.Context) (*domain.GlobalStatistics, error)
}

// DefaultStatisticsUsecase maintains running counters incrementally; nothing
// here ever recomputes over the full withdrawal history.
type DefaultStatisticsUsecase struct {
	Store domain.StatsStore
}

func NewDefaultStatisticsUsecase(store domain.StatsStore) *DefaultStatisticsUsecase {
	return &DefaultStatisticsUsecase{Store: store}
}

func (uc *DefaultStatisticsUsecase) RecordConclusion(
	ctx context.Context,
	reviewerID string,
	outcome domain.ConclusionOutcome,
	manual bool,
	requestedAt, concludedAt time.Time,
) error {
	durationMinutes := domain.ClampDuration(concludedAt.Sub(requestedAt).Minutes())
	return uc.Store.RecordConclusion(ctx, reviewerID, outcome, manual, durationMinutes)
}

func (uc *DefaultStatisticsUsecase) RecordRejectReason(ctx context.Context, reason string) error {
	if reason == "" {
		return nil
	}
	return uc.Store.IncrRejectReason(ctx, reason)
}

func (uc *DefaultStatisticsUsecase) RecordPayout(ctx context.Context, amount float64) error {
	return uc.Store.AddPaidAmount(ctx, amount)
}

func (uc *DefaultStatisticsUsecase) GetReviewerStatistics(ctx context.Context, reviewerID string) (*domain.ReviewerStatistics, error) {
	return uc.Store.GetReviewerStatistics(ctx, reviewerID)
}

func (uc *DefaultStatisticsUsecase) GetGlobalStatistics(ctx context.Context) (*domain.GlobalStatistics, error) {
	return uc.Store.GetGlobalStatistics(ctx)
}
