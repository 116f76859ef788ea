package domain

import "errors"

var (
	ErrValidation         = errors.New("invalid input")
	ErrUnauthorized       = errors.New("actor is not allowed to perform this transition")
	ErrConflict           = errors.New("state changed since read")
	ErrPaymentProvider    = errors.New("payment provider call failed")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrReviewerNotFound   = errors.New("reviewer not found")
	ErrAlreadyConcluded   = errors.New("withdrawal already concluded")
	ErrNotAssigned        = errors.New("withdrawal has no assignee")
)
