package domain

import "time"

type WithdrawalFilters struct {
	Statuses   []WithdrawalStatus
	AssigneeID string
	PlayerID   string
	DateFrom   time.Time
	DateTo     time.Time
}

type WithdrawalRepository interface {
	CreateWithdrawal(withdrawal *Withdrawal) error
	GetWithdrawalByID(withdrawalID uint64) (*Withdrawal, error)
	GetWithdrawalByExternalRef(externalRef string) (*Withdrawal, error)
	GetWithdrawals(filters WithdrawalFilters, page, limit int64) ([]*Withdrawal, int64, error)
	GetPendingByAssignee(reviewerID string) ([]*Withdrawal, error)

	// UpdateAssigneeIf performs a conditional write: the assignee changes only
	// if the request is still pending and its current assignee equals expected.
	// Returns ErrConflict when the condition no longer holds.
	UpdateAssigneeIf(withdrawalID uint64, expected, next *string) error

	// ConcludeIf moves a pending request held by expectedAssignee to a terminal
	// status. Returns ErrConflict when the request was concluded or reassigned
	// since it was read.
	ConcludeIf(withdrawalID uint64, expectedAssignee string, status WithdrawalStatus, rejectReason *string, concludedAt time.Time) error

	AddAnnotation(annotation *Annotation) error
}
