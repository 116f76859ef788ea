package mappers

import (
	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/models"
)

func ToGORMTransferRecord(record *domain.TransferRecord) *models.TransferRecordModel {
	return &models.TransferRecordModel{
		ID:            record.ID,
		WithdrawalID:  record.WithdrawalID,
		TransferredBy: record.TransferredBy,
		TransferredTo: record.TransferredTo,
		CreatedAt:     record.CreatedAt,
	}
}

func ToDomainTransferRecord(model *models.TransferRecordModel) *domain.TransferRecord {
	return &domain.TransferRecord{
		ID:            model.ID,
		WithdrawalID:  model.WithdrawalID,
		TransferredBy: model.TransferredBy,
		TransferredTo: model.TransferredTo,
		CreatedAt:     model.CreatedAt,
	}
}
