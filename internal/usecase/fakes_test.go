package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/metrics"
)

// collectors register into the default prometheus registry once per process
var testMetrics = metrics.NewWithdrawalMetrics()

type stubReviewerRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Reviewer
}

func newStubReviewerRepo(reviewers ...*domain.Reviewer) *stubReviewerRepo {
	repo := &stubReviewerRepo{items: make(map[string]*domain.Reviewer)}
	for _, reviewer := range reviewers {
		stored := *reviewer
		repo.items[reviewer.ID] = &stored
	}
	return repo
}

func (r *stubReviewerRepo) CreateReviewer(reviewer *domain.Reviewer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *reviewer
	r.items[reviewer.ID] = &stored
	return nil
}

func (r *stubReviewerRepo) GetReviewerByID(reviewerID string) (*domain.Reviewer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[reviewerID]
	if !ok {
		return nil, domain.ErrReviewerNotFound
	}
	out := *stored
	return &out, nil
}

func (r *stubReviewerRepo) GetReviewers() ([]*domain.Reviewer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Reviewer, 0, len(r.items))
	for _, stored := range r.items {
		copied := *stored
		out = append(out, &copied)
	}
	return out, nil
}

func (r *stubReviewerRepo) UpdateAvailability(reviewerID string, availability domain.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[reviewerID]
	if !ok {
		return domain.ErrReviewerNotFound
	}
	stored.Availability = availability
	return nil
}

func (r *stubReviewerRepo) DeleteReviewer(reviewerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, reviewerID)
	return nil
}

type stubWithdrawalRepo struct {
	mu    sync.Mutex
	items map[uint64]*domain.Withdrawal
}

func newStubWithdrawalRepo(withdrawals ...*domain.Withdrawal) *stubWithdrawalRepo {
	repo := &stubWithdrawalRepo{items: make(map[uint64]*domain.Withdrawal)}
	for _, withdrawal := range withdrawals {
		stored := *withdrawal
		repo.items[withdrawal.ID] = &stored
	}
	return repo
}

func (r *stubWithdrawalRepo) CreateWithdrawal(withdrawal *domain.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *withdrawal
	r.items[withdrawal.ID] = &stored
	return nil
}

func (r *stubWithdrawalRepo) GetWithdrawalByID(withdrawalID uint64) (*domain.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[withdrawalID]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	out := *stored
	return &out, nil
}

func (r *stubWithdrawalRepo) GetWithdrawalByExternalRef(externalRef string) (*domain.Withdrawal, error) {
	return nil, domain.ErrWithdrawalNotFound
}

func (r *stubWithdrawalRepo) GetWithdrawals(filters domain.WithdrawalFilters, page, limit int64) ([]*domain.Withdrawal, int64, error) {
	return nil, 0, nil
}

func (r *stubWithdrawalRepo) GetPendingByAssignee(reviewerID string) ([]*domain.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Withdrawal
	for _, stored := range r.items {
		if stored.Status == domain.StatusPending && stored.AssigneeID != nil && *stored.AssigneeID == reviewerID {
			copied := *stored
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *stubWithdrawalRepo) UpdateAssigneeIf(withdrawalID uint64, expected, next *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[withdrawalID]
	if !ok {
		return domain.ErrWithdrawalNotFound
	}
	if stored.Status != domain.StatusPending {
		return domain.ErrConflict
	}
	current, want := stored.AssigneeID, expected
	if (current == nil) != (want == nil) || (current != nil && *current != *want) {
		return domain.ErrConflict
	}
	if next == nil {
		stored.AssigneeID = nil
	} else {
		value := *next
		stored.AssigneeID = &value
	}
	return nil
}

func (r *stubWithdrawalRepo) ConcludeIf(withdrawalID uint64, expectedAssignee string, status domain.WithdrawalStatus, rejectReason *string, concludedAt time.Time) error {
	return domain.ErrConflict
}

func (r *stubWithdrawalRepo) AddAnnotation(annotation *domain.Annotation) error {
	return nil
}

type stubTransferRepo struct {
	mu      sync.Mutex
	records []*domain.TransferRecord
}

func (r *stubTransferRepo) Append(record *domain.TransferRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *record
	r.records = append(r.records, &stored)
	return nil
}

func (r *stubTransferRepo) History(withdrawalID uint64) ([]*domain.TransferRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.TransferRecord
	for _, record := range r.records {
		if record.WithdrawalID == withdrawalID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

type stubRotationQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *stubRotationQueue) Push(ctx context.Context, reviewerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range q.ids {
		if id == reviewerID {
			return nil
		}
	}
	q.ids = append(q.ids, reviewerID)
	return nil
}

func (q *stubRotationQueue) Remove(ctx context.Context, reviewerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.ids[:0]
	for _, id := range q.ids {
		if id != reviewerID {
			kept = append(kept, id)
		}
	}
	q.ids = kept
	return nil
}

func (q *stubRotationQueue) Rotate(ctx context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ids) == 0 {
		return "", nil
	}
	head := q.ids[0]
	q.ids = append(q.ids[1:], head)
	return head, nil
}

func (q *stubRotationQueue) Len(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.ids)), nil
}

func (q *stubRotationQueue) Snapshot(ctx context.Context) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ids...), nil
}

func (q *stubRotationQueue) MarkLastAssigned(ctx context.Context, reviewerID string) error {
	return nil
}

type recordedConclusion struct {
	reviewerID      string
	outcome         domain.ConclusionOutcome
	manual          bool
	durationMinutes float64
}

type stubStatsStore struct {
	mu            sync.Mutex
	conclusions   []recordedConclusion
	rejectReasons map[string]int64
	paidAmount    float64
}

func newStubStatsStore() *stubStatsStore {
	return &stubStatsStore{rejectReasons: make(map[string]int64)}
}

func (s *stubStatsStore) RecordConclusion(ctx context.Context, reviewerID string, outcome domain.ConclusionOutcome, manual bool, durationMinutes float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conclusions = append(s.conclusions, recordedConclusion{reviewerID, outcome, manual, durationMinutes})
	return nil
}

func (s *stubStatsStore) IncrRejectReason(ctx context.Context, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectReasons[reason]++
	return nil
}

func (s *stubStatsStore) AddPaidAmount(ctx context.Context, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paidAmount += amount
	return nil
}

func (s *stubStatsStore) GetReviewerStatistics(ctx context.Context, reviewerID string) (*domain.ReviewerStatistics, error) {
	return &domain.ReviewerStatistics{ReviewerID: reviewerID}, nil
}

func (s *stubStatsStore) GetGlobalStatistics(ctx context.Context) (*domain.GlobalStatistics, error) {
	return &domain.GlobalStatistics{}, nil
}
