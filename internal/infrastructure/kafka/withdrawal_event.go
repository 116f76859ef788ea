package kafka

type WithdrawalEventType string

const (
	EventAssigned    WithdrawalEventType = "ASSIGNED"
	EventClaimed     WithdrawalEventType = "CLAIMED"
	EventTransferred WithdrawalEventType = "TRANSFERRED"
	EventUnassigned  WithdrawalEventType = "UNASSIGNED"
	EventConcluded   WithdrawalEventType = "CONCLUDED"
)

type WithdrawalEvent struct {
	WithdrawalID uint64              `json:"withdrawal_id"`
	Type         WithdrawalEventType `json:"type"`
	ReviewerID   string              `json:"reviewer_id,omitempty"`
	Status       string              `json:"status"`
	Amount       float64             `json:"amount"`
	Currency     string              `json:"currency"`
	RejectReason string              `json:"reject_reason,omitempty"`
}
