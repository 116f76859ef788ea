package repository

import (
	"errors"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultReviewerRepository struct {
	DB *gorm.DB
}

func NewDefaultReviewerRepository(db *gorm.DB) *DefaultReviewerRepository {
	return &DefaultReviewerRepository{DB: db}
}

func (r *DefaultReviewerRepository) CreateReviewer(reviewer *domain.Reviewer) error {
	reviewerModel := mappers.ToGORMReviewer(reviewer)
	return r.DB.Create(reviewerModel).Error
}

func (r *DefaultReviewerRepository) GetReviewerByID(reviewerID string) (*domain.Reviewer, error) {
	var reviewerModel models.ReviewerModel
	if err := r.DB.First(&reviewerModel, "id = ?", reviewerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewerNotFound
		}
		return nil, err
	}

	return mappers.ToDomainReviewer(&reviewerModel), nil
}

func (r *DefaultReviewerRepository) GetReviewers() ([]*domain.Reviewer, error) {
	var reviewerModels []models.ReviewerModel
	if err := r.DB.Order("created_at ASC").Find(&reviewerModels).Error; err != nil {
		return nil, err
	}

	reviewers := make([]*domain.Reviewer, len(reviewerModels))
	for i, reviewerModel := range reviewerModels {
		reviewers[i] = mappers.ToDomainReviewer(&reviewerModel)
	}

	return reviewers, nil
}

func (r *DefaultReviewerRepository) UpdateAvailability(reviewerID string, availability domain.Availability) error {
	result := r.DB.Model(&models.ReviewerModel{}).
		Where("id = ?", reviewerID).
		Update("availability", availability)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrReviewerNotFound
	}
	return nil
}

func (r *DefaultReviewerRepository) DeleteReviewer(reviewerID string) error {
	result := r.DB.Delete(&models.ReviewerModel{}, "id = ?", reviewerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrReviewerNotFound
	}
	return nil
}
