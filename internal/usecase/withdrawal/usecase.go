package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/redisstore"
	"github.com/LavaJover/shvark-withdrawal-service/internal/usecase"
	withdrawaldto "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/dto/withdrawal"
	"github.com/jaevor/go-nanoid"
)

type WithdrawalUsecase interface {
	Submit(ctx context.Context, input *withdrawaldto.SubmitWithdrawalInput) (*withdrawaldto.WithdrawalOutput, error)

	Claim(ctx context.Context, withdrawalID uint64, actorID, targetID string) error
	Transfer(ctx context.Context, withdrawalID uint64, actorID, targetID string) error
	Unassign(ctx context.Context, withdrawalID uint64, actorID string) error
	Conclude(ctx context.Context, withdrawalID uint64, actorID string, input *withdrawaldto.ConcludeWithdrawalInput) error
	Annotate(ctx context.Context, withdrawalID uint64, actorID, text string) error

	GetWithdrawalByID(withdrawalID uint64) (*domain.Withdrawal, error)
	GetWithdrawals(filters domain.WithdrawalFilters, page, limit int64) ([]*domain.Withdrawal, int64, error)
	History(ctx context.Context, withdrawalID uint64) ([]*domain.TransferRecord, error)
	VerifyLedger(ctx context.Context, withdrawalID uint64) (bool, error)

	StartRequestConsumer(ctx context.Context)
}

type DefaultWithdrawalUsecase struct {
	WithdrawalRepo  domain.WithdrawalRepository
	ReviewerRepo    domain.ReviewerRepository
	TransferRepo    domain.TransferRepository
	Rotation        domain.RotationQueue
	Statistics      usecase.StatisticsUsecase
	PaymentProvider domain.PaymentProvider
	Publisher       domain.PublisherPort
	Subscriber      domain.SubscriberPort
	HistoryCache    *redisstore.HistoryCache
	Metrics         *metrics.WithdrawalMetrics

	EventsTopic   string
	RequestsTopic string
	GroupID       string

	refGenerator func() string
}

func NewDefaultWithdrawalUsecase(
	withdrawalRepo domain.WithdrawalRepository,
	reviewerRepo domain.ReviewerRepository,
	transferRepo domain.TransferRepository,
	rotation domain.RotationQueue,
	statisticsUsecase usecase.StatisticsUsecase,
	paymentProvider domain.PaymentProvider,
	publisher domain.PublisherPort,
	subscriber domain.SubscriberPort,
	historyCache *redisstore.HistoryCache,
	withdrawalMetrics *metrics.WithdrawalMetrics,
	eventsTopic, requestsTopic, groupID string) *DefaultWithdrawalUsecase {

	refGenerator, err := nanoid.Standard(15)
	if err != nil {
		log.Fatalf("failed to init nanoid generator: %v", err)
	}

	return &DefaultWithdrawalUsecase{
		WithdrawalRepo:  withdrawalRepo,
		ReviewerRepo:    reviewerRepo,
		TransferRepo:    transferRepo,
		Rotation:        rotation,
		Statistics:      statisticsUsecase,
		PaymentProvider: paymentProvider,
		Publisher:       publisher,
		Subscriber:      subscriber,
		HistoryCache:    historyCache,
		Metrics:         withdrawalMetrics,
		EventsTopic:     eventsTopic,
		RequestsTopic:   requestsTopic,
		GroupID:         groupID,
		refGenerator:    refGenerator,
	}
}

// publishEvent is a secondary effect: failures are logged and swallowed so
// the authoritative transition never depends on the event stream.
func (uc *DefaultWithdrawalUsecase) publishEvent(event kafka.WithdrawalEvent) {
	v, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal withdrawal event for %d: %v", event.WithdrawalID, err)
		return
	}

	msg := domain.Message{
		Key:   []byte(strconv.FormatUint(event.WithdrawalID, 10)),
		Value: v,
	}
	if err := uc.Publisher.Publish(uc.EventsTopic, msg); err != nil {
		log.Printf("failed to publish withdrawal event for %d: %v", event.WithdrawalID, err)
	}
}
