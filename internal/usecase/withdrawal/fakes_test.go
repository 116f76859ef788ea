package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/metrics"
	parentusecase "github.com/LavaJover/shvark-withdrawal-service/internal/usecase"
)

// one shared instance because the collectors register into the default
// prometheus registry once per process
var testMetrics = metrics.NewWithdrawalMetrics()

var errAppendUnavailable = errors.New("ledger unavailable")

type memWithdrawalRepo struct {
	mu          sync.Mutex
	nextID      uint64
	items       map[uint64]*domain.Withdrawal
	annotations map[uint64][]domain.Annotation

	annotationErr error
}

func newMemWithdrawalRepo() *memWithdrawalRepo {
	return &memWithdrawalRepo{
		items:       make(map[uint64]*domain.Withdrawal),
		annotations: make(map[uint64][]domain.Annotation),
	}
}

func (r *memWithdrawalRepo) CreateWithdrawal(withdrawal *domain.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	withdrawal.ID = r.nextID
	stored := *withdrawal
	r.items[withdrawal.ID] = &stored
	return nil
}

func (r *memWithdrawalRepo) GetWithdrawalByID(withdrawalID uint64) (*domain.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[withdrawalID]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	out := *stored
	out.Annotations = append([]domain.Annotation(nil), r.annotations[withdrawalID]...)
	return &out, nil
}

func (r *memWithdrawalRepo) GetWithdrawalByExternalRef(externalRef string) (*domain.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.ExternalRef == externalRef {
			out := *stored
			return &out, nil
		}
	}
	return nil, domain.ErrWithdrawalNotFound
}

func (r *memWithdrawalRepo) GetWithdrawals(filters domain.WithdrawalFilters, page, limit int64) ([]*domain.Withdrawal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Withdrawal
	for id := uint64(1); id <= r.nextID; id++ {
		stored, ok := r.items[id]
		if !ok {
			continue
		}
		if filters.AssigneeID != "" && (stored.AssigneeID == nil || *stored.AssigneeID != filters.AssigneeID) {
			continue
		}
		if filters.PlayerID != "" && stored.PlayerID != filters.PlayerID {
			continue
		}
		if len(filters.Statuses) > 0 {
			matched := false
			for _, status := range filters.Statuses {
				if stored.Status == status {
					matched = true
				}
			}
			if !matched {
				continue
			}
		}
		copied := *stored
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *memWithdrawalRepo) GetPendingByAssignee(reviewerID string) ([]*domain.Withdrawal, error) {
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

func (r *memWithdrawalRepo) UpdateAssigneeIf(withdrawalID uint64, expected, next *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[withdrawalID]
	if !ok {
		return domain.ErrWithdrawalNotFound
	}
	if stored.Status != domain.StatusPending {
		return domain.ErrConflict
	}
	if !samePointerValue(stored.AssigneeID, expected) {
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

func (r *memWithdrawalRepo) ConcludeIf(withdrawalID uint64, expectedAssignee string, status domain.WithdrawalStatus, rejectReason *string, concludedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[withdrawalID]
	if !ok {
		return domain.ErrWithdrawalNotFound
	}
	if stored.Status != domain.StatusPending {
		return domain.ErrConflict
	}
	if stored.AssigneeID == nil || *stored.AssigneeID != expectedAssignee {
		return domain.ErrConflict
	}
	stored.Status = status
	stored.RejectReason = rejectReason
	at := concludedAt
	stored.ConcludedAt = &at
	return nil
}

func (r *memWithdrawalRepo) AddAnnotation(annotation *domain.Annotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.annotationErr != nil {
		return r.annotationErr
	}
	r.annotations[annotation.WithdrawalID] = append(r.annotations[annotation.WithdrawalID], *annotation)
	return nil
}

func samePointerValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type memReviewerRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Reviewer
}

func newMemReviewerRepo(reviewers ...*domain.Reviewer) *memReviewerRepo {
	repo := &memReviewerRepo{items: make(map[string]*domain.Reviewer)}
	for _, reviewer := range reviewers {
		stored := *reviewer
		repo.items[reviewer.ID] = &stored
	}
	return repo
}

func (r *memReviewerRepo) CreateReviewer(reviewer *domain.Reviewer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *reviewer
	r.items[reviewer.ID] = &stored
	return nil
}

func (r *memReviewerRepo) GetReviewerByID(reviewerID string) (*domain.Reviewer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[reviewerID]
	if !ok {
		return nil, domain.ErrReviewerNotFound
	}
	out := *stored
	return &out, nil
}

func (r *memReviewerRepo) GetReviewers() ([]*domain.Reviewer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Reviewer, 0, len(r.items))
	for _, stored := range r.items {
		copied := *stored
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memReviewerRepo) UpdateAvailability(reviewerID string, availability domain.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[reviewerID]
	if !ok {
		return domain.ErrReviewerNotFound
	}
	stored.Availability = availability
	return nil
}

func (r *memReviewerRepo) DeleteReviewer(reviewerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, reviewerID)
	return nil
}

type memTransferRepo struct {
	mu      sync.Mutex
	records []*domain.TransferRecord

	appendErr error
}

func (r *memTransferRepo) Append(record *domain.TransferRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	stored := *record
	r.records = append(r.records, &stored)
	return nil
}

func (r *memTransferRepo) History(withdrawalID uint64) ([]*domain.TransferRecord, error) {
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

type memRotationQueue struct {
	mu           sync.Mutex
	ids          []string
	lastAssigned string
}

func (q *memRotationQueue) Push(ctx context.Context, reviewerID string) error {
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

func (q *memRotationQueue) Remove(ctx context.Context, reviewerID string) error {
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

func (q *memRotationQueue) Rotate(ctx context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ids) == 0 {
		return "", nil
	}
	head := q.ids[0]
	q.ids = append(q.ids[1:], head)
	return head, nil
}

func (q *memRotationQueue) Len(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.ids)), nil
}

func (q *memRotationQueue) Snapshot(ctx context.Context) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ids...), nil
}

func (q *memRotationQueue) MarkLastAssigned(ctx context.Context, reviewerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.lastAssigned = reviewerID
	return nil
}

type conclusionSample struct {
	reviewerID      string
	outcome         domain.ConclusionOutcome
	manual          bool
	durationMinutes float64
}

type memStatsStore struct {
	mu            sync.Mutex
	conclusions   []conclusionSample
	rejectReasons map[string]int64
	paidAmount    float64

	failAll bool
}

func newMemStatsStore() *memStatsStore {
	return &memStatsStore{rejectReasons: make(map[string]int64)}
}

func (s *memStatsStore) RecordConclusion(ctx context.Context, reviewerID string, outcome domain.ConclusionOutcome, manual bool, durationMinutes float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errors.New("stats store unavailable")
	}
	s.conclusions = append(s.conclusions, conclusionSample{reviewerID, outcome, manual, durationMinutes})
	return nil
}

func (s *memStatsStore) IncrRejectReason(ctx context.Context, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errors.New("stats store unavailable")
	}
	s.rejectReasons[reason]++
	return nil
}

func (s *memStatsStore) AddPaidAmount(ctx context.Context, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errors.New("stats store unavailable")
	}
	s.paidAmount += amount
	return nil
}

func (s *memStatsStore) GetReviewerStatistics(ctx context.Context, reviewerID string) (*domain.ReviewerStatistics, error) {
	return &domain.ReviewerStatistics{ReviewerID: reviewerID}, nil
}

func (s *memStatsStore) GetGlobalStatistics(ctx context.Context) (*domain.GlobalStatistics, error) {
	return &domain.GlobalStatistics{}, nil
}

type memPaymentProvider struct {
	mu       sync.Mutex
	approved []string
	rejected map[string]string

	callErr error
}

func newMemPaymentProvider() *memPaymentProvider {
	return &memPaymentProvider{rejected: make(map[string]string)}
}

func (p *memPaymentProvider) ApprovePayout(ctx context.Context, externalRef string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.callErr != nil {
		return p.callErr
	}
	p.approved = append(p.approved, externalRef)
	return nil
}

func (p *memPaymentProvider) RejectPayout(ctx context.Context, externalRef, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.callErr != nil {
		return p.callErr
	}
	p.rejected[externalRef] = reason
	return nil
}

type memPublisher struct {
	mu       sync.Mutex
	messages map[string][]domain.Message
}

func newMemPublisher() *memPublisher {
	return &memPublisher{messages: make(map[string][]domain.Message)}
}

func (p *memPublisher) Publish(topic string, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[topic] = append(p.messages[topic], msgs...)
	return nil
}

type memSubscriber struct {
	ch chan domain.Message
}

func newMemSubscriber() *memSubscriber {
	return &memSubscriber{ch: make(chan domain.Message, 16)}
}

func (s *memSubscriber) Subscribe(topic, groupID string) (<-chan domain.Message, error) {
	return s.ch, nil
}

type testEnv struct {
	uc         *DefaultWithdrawalUsecase
	withdrawal *memWithdrawalRepo
	reviewers  *memReviewerRepo
	transfers  *memTransferRepo
	rotation   *memRotationQueue
	stats      *memStatsStore
	payments   *memPaymentProvider
	publisher  *memPublisher
	subscriber *memSubscriber
}

func newTestEnv(reviewers ...*domain.Reviewer) *testEnv {
	env := &testEnv{
		withdrawal: newMemWithdrawalRepo(),
		reviewers:  newMemReviewerRepo(reviewers...),
		transfers:  &memTransferRepo{},
		rotation:   &memRotationQueue{},
		stats:      newMemStatsStore(),
		payments:   newMemPaymentProvider(),
		publisher:  newMemPublisher(),
		subscriber: newMemSubscriber(),
	}
	env.uc = NewDefaultWithdrawalUsecase(
		env.withdrawal,
		env.reviewers,
		env.transfers,
		env.rotation,
		parentusecase.NewDefaultStatisticsUsecase(env.stats),
		env.payments,
		env.publisher,
		env.subscriber,
		nil,
		testMetrics,
		"withdrawal-events",
		"withdrawal-requests",
		"withdrawal-service",
	)
	return env
}

func onlineAgent(id string) *domain.Reviewer {
	return &domain.Reviewer{ID: id, Login: id, Role: domain.RoleAgent, Availability: domain.AvailabilityOnline}
}

func supervisor(id string) *domain.Reviewer {
	return &domain.Reviewer{ID: id, Login: id, Role: domain.RoleSupervisor, Availability: domain.AvailabilityOnline}
}

func observer(id string) *domain.Reviewer {
	return &domain.Reviewer{ID: id, Login: id, Role: domain.RoleObserver, Availability: domain.AvailabilityOnline}
}
