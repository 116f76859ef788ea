package dto

import "github.com/LavaJover/shvark-withdrawal-service/internal/domain"

type CreateReviewerInput struct {
	Login string
	Role  domain.Role
}
