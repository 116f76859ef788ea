package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultWithdrawalRepository struct {
	DB *gorm.DB
}

func NewDefaultWithdrawalRepository(db *gorm.DB) *DefaultWithdrawalRepository {
	return &DefaultWithdrawalRepository{DB: db}
}

func (r *DefaultWithdrawalRepository) CreateWithdrawal(withdrawal *domain.Withdrawal) error {
	withdrawalModel := mappers.ToGORMWithdrawal(withdrawal)
	if err := r.DB.Create(withdrawalModel).Error; err != nil {
		return err
	}
	withdrawal.ID = withdrawalModel.ID
	return nil
}

func (r *DefaultWithdrawalRepository) GetWithdrawalByID(withdrawalID uint64) (*domain.Withdrawal, error) {
	var withdrawalModel models.WithdrawalModel
	err := r.DB.Preload("Annotations", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&withdrawalModel, "id = ?", withdrawalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}

	return mappers.ToDomainWithdrawal(&withdrawalModel), nil
}

func (r *DefaultWithdrawalRepository) GetWithdrawalByExternalRef(externalRef string) (*domain.Withdrawal, error) {
	var withdrawalModel models.WithdrawalModel
	err := r.DB.Preload("Annotations", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&withdrawalModel, "external_ref = ?", externalRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}

	return mappers.ToDomainWithdrawal(&withdrawalModel), nil
}

func (r *DefaultWithdrawalRepository) GetWithdrawals(filters domain.WithdrawalFilters, page, limit int64) ([]*domain.Withdrawal, int64, error) {
	var withdrawalModels []models.WithdrawalModel
	var total int64

	baseQuery := r.DB.Model(&models.WithdrawalModel{})

	if len(filters.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN (?)", filters.Statuses)
	}
	if filters.AssigneeID != "" {
		baseQuery = baseQuery.Where("assignee_id = ?", filters.AssigneeID)
	}
	if filters.PlayerID != "" {
		baseQuery = baseQuery.Where("player_id = ?", filters.PlayerID)
	}
	if !filters.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("requested_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		baseQuery = baseQuery.Where("requested_at <= ?", filters.DateTo)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Order("requested_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&withdrawalModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find withdrawals: %w", err)
	}

	withdrawals := make([]*domain.Withdrawal, len(withdrawalModels))
	for i, withdrawalModel := range withdrawalModels {
		withdrawals[i] = mappers.ToDomainWithdrawal(&withdrawalModel)
	}

	return withdrawals, total, nil
}

func (r *DefaultWithdrawalRepository) GetPendingByAssignee(reviewerID string) ([]*domain.Withdrawal, error) {
	var withdrawalModels []models.WithdrawalModel
	err := r.DB.
		Where("assignee_id = ? AND status = ?", reviewerID, domain.StatusPending).
		Find(&withdrawalModels).Error
	if err != nil {
		return nil, err
	}

	withdrawals := make([]*domain.Withdrawal, len(withdrawalModels))
	for i, withdrawalModel := range withdrawalModels {
		withdrawals[i] = mappers.ToDomainWithdrawal(&withdrawalModel)
	}

	return withdrawals, nil
}

// UpdateAssigneeIf is the optimistic-concurrency write used by every
// transition that moves an assignment. The WHERE clause re-checks the
// persisted assignee, so a stale read can never win the race.
func (r *DefaultWithdrawalRepository) UpdateAssigneeIf(withdrawalID uint64, expected, next *string) error {
	query := r.DB.Model(&models.WithdrawalModel{}).
		Where("id = ? AND status = ?", withdrawalID, domain.StatusPending)

	if expected == nil {
		query = query.Where("assignee_id IS NULL")
	} else {
		query = query.Where("assignee_id = ?", *expected)
	}

	result := query.Update("assignee_id", next)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *DefaultWithdrawalRepository) ConcludeIf(
	withdrawalID uint64,
	expectedAssignee string,
	status domain.WithdrawalStatus,
	rejectReason *string,
	concludedAt time.Time,
) error {
	result := r.DB.Model(&models.WithdrawalModel{}).
		Where("id = ? AND status = ? AND assignee_id = ?", withdrawalID, domain.StatusPending, expectedAssignee).
		Updates(map[string]interface{}{
			"status":        status,
			"reject_reason": rejectReason,
			"concluded_at":  concludedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *DefaultWithdrawalRepository) AddAnnotation(annotation *domain.Annotation) error {
	annotationModel := mappers.ToGORMAnnotation(annotation)
	return r.DB.Create(annotationModel).Error
}
