package dto

import "time"

type SubmitWithdrawalInput struct {
	PlayerID       string
	ExternalRef    string
	Amount         float64
	Currency       string
	Method         string
	Note           string
	AdditionalInfo string
	RequestedAt    time.Time
}

type ConcludeWithdrawalInput struct {
	Decision string
	Reason   string
	Manual   bool
}

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)
