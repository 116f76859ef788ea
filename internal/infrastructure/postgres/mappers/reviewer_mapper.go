package mappers

import (
	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/models"
)

func ToGORMReviewer(reviewer *domain.Reviewer) *models.ReviewerModel {
	return &models.ReviewerModel{
		ID:           reviewer.ID,
		Login:        reviewer.Login,
		Role:         reviewer.Role,
		Availability: reviewer.Availability,
	}
}

func ToDomainReviewer(model *models.ReviewerModel) *domain.Reviewer {
	return &domain.Reviewer{
		ID:           model.ID,
		Login:        model.Login,
		Role:         model.Role,
		Availability: model.Availability,
	}
}
