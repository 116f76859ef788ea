package domain

type ReviewerRepository interface {
	CreateReviewer(reviewer *Reviewer) error
	GetReviewerByID(reviewerID string) (*Reviewer, error)
	GetReviewers() ([]*Reviewer, error)
	UpdateAvailability(reviewerID string, availability Availability) error
	DeleteReviewer(reviewerID string) error
}
