package models

import (
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"gorm.io/gorm"
)

type ReviewerModel struct {
	ID           string              `gorm:"primaryKey;type:uuid"`
	Login        string              `gorm:"uniqueIndex"`
	Role         domain.Role         `gorm:"index"`
	Availability domain.Availability `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
