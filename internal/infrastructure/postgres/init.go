package postgres

import (
	"log"

	"github.com/LavaJover/shvark-withdrawal-service/internal/config"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.WithdrawalConfig) *gorm.DB {
	dsn := cfg.WithdrawalDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.ReviewerModel{}, &models.WithdrawalModel{}, &models.AnnotationModel{}, &models.TransferRecordModel{})

	return db
}
