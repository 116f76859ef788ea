package repository

import (
	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultTransferRepository is the transfer ledger. Append-only: nothing in
// this type updates or deletes a row.
type DefaultTransferRepository struct {
	DB *gorm.DB
}

func NewDefaultTransferRepository(db *gorm.DB) *DefaultTransferRepository {
	return &DefaultTransferRepository{DB: db}
}

func (r *DefaultTransferRepository) Append(record *domain.TransferRecord) error {
	recordModel := mappers.ToGORMTransferRecord(record)
	return r.DB.Create(recordModel).Error
}

func (r *DefaultTransferRepository) History(withdrawalID uint64) ([]*domain.TransferRecord, error) {
	var recordModels []models.TransferRecordModel
	err := r.DB.
		Where("withdrawal_id = ?", withdrawalID).
		Order("created_at ASC").
		Find(&recordModels).Error
	if err != nil {
		return nil, err
	}

	records := make([]*domain.TransferRecord, len(recordModels))
	for i, recordModel := range recordModels {
		records[i] = mappers.ToDomainTransferRecord(&recordModel)
	}

	return records, nil
}
