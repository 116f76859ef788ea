package domain

import "context"

type ConclusionOutcome string

const (
	OutcomeApproved ConclusionOutcome = "APPROVED"
	OutcomeRejected ConclusionOutcome = "REJECTED"
)

// StatsStore backs the incremental statistics aggregator. The conclusion
// update (counter increment + running average) must be atomic per key.
type StatsStore interface {
	RecordConclusion(ctx context.Context, reviewerID string, outcome ConclusionOutcome, manual bool, durationMinutes float64) error
	IncrRejectReason(ctx context.Context, reason string) error
	AddPaidAmount(ctx context.Context, amount float64) error
	GetReviewerStatistics(ctx context.Context, reviewerID string) (*ReviewerStatistics, error)
	GetGlobalStatistics(ctx context.Context) (*GlobalStatistics, error)
}
