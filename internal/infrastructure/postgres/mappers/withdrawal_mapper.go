package mappers

import (
	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/models"
)

func ToGORMWithdrawal(withdrawal *domain.Withdrawal) *models.WithdrawalModel {
	return &models.WithdrawalModel{
		ID:             withdrawal.ID,
		PlayerID:       withdrawal.PlayerID,
		ExternalRef:    withdrawal.ExternalRef,
		Amount:         withdrawal.Amount,
		Currency:       withdrawal.Currency,
		Method:         withdrawal.Method,
		Note:           withdrawal.Note,
		AdditionalInfo: withdrawal.AdditionalInfo,
		AssigneeID:     withdrawal.AssigneeID,
		Status:         withdrawal.Status,
		RejectReason:   withdrawal.RejectReason,
		RequestedAt:    withdrawal.RequestedAt,
		ConcludedAt:    withdrawal.ConcludedAt,
	}
}

func ToDomainWithdrawal(model *models.WithdrawalModel) *domain.Withdrawal {
	annotations := make([]domain.Annotation, len(model.Annotations))
	for i, annotationModel := range model.Annotations {
		annotations[i] = *ToDomainAnnotation(&annotationModel)
	}

	return &domain.Withdrawal{
		ID:             model.ID,
		PlayerID:       model.PlayerID,
		ExternalRef:    model.ExternalRef,
		Amount:         model.Amount,
		Currency:       model.Currency,
		Method:         model.Method,
		Note:           model.Note,
		AdditionalInfo: model.AdditionalInfo,
		AssigneeID:     model.AssigneeID,
		Status:         model.Status,
		RejectReason:   model.RejectReason,
		RequestedAt:    model.RequestedAt,
		ConcludedAt:    model.ConcludedAt,
		Annotations:    annotations,
	}
}

func ToGORMAnnotation(annotation *domain.Annotation) *models.AnnotationModel {
	return &models.AnnotationModel{
		ID:           annotation.ID,
		WithdrawalID: annotation.WithdrawalID,
		Code:         annotation.Code,
		Text:         annotation.Text,
		CreatedAt:    annotation.CreatedAt,
	}
}

func ToDomainAnnotation(model *models.AnnotationModel) *domain.Annotation {
	return &domain.Annotation{
		ID:           model.ID,
		WithdrawalID: model.WithdrawalID,
		Code:         model.Code,
		Text:         model.Text,
		CreatedAt:    model.CreatedAt,
	}
}
