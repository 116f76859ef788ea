package models

import "time"

// TransferRecordModel rows are append-only: no update or delete path exists.
type TransferRecordModel struct {
	ID            string  `gorm:"primaryKey;type:uuid"`
	WithdrawalID  uint64  `gorm:"index:idx_transfer_withdrawal;not null"`
	TransferredBy *string `gorm:"type:uuid"`
	TransferredTo *string `gorm:"type:uuid"`
	CreatedAt     time.Time `gorm:"index:idx_transfer_withdrawal"`
}
