package models

import (
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
)

type WithdrawalModel struct {
	ID             uint64                  `gorm:"primaryKey;autoIncrement"`
	PlayerID       string                  `gorm:"index"`
	ExternalRef    string                  `gorm:"uniqueIndex"`
	Amount         float64                 `gorm:"index:idx_amount"`
	Currency       string
	Method         string
	Note           string
	AdditionalInfo string                  `gorm:"type:jsonb"`
	AssigneeID     *string                 `gorm:"type:uuid;index"`
	Status         domain.WithdrawalStatus `gorm:"index:idx_status_assignee"`
	RejectReason   *string
	RequestedAt    time.Time               `gorm:"index"`
	ConcludedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Annotations    []AnnotationModel `gorm:"foreignKey:WithdrawalID;references:ID"`
}

type AnnotationModel struct {
	ID           string `gorm:"primaryKey"`
	WithdrawalID uint64 `gorm:"index;not null"`
	Code         string
	Text         string
	CreatedAt    time.Time
}
