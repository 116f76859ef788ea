package domain

import (
	"strings"
	"time"
)

type WithdrawalStatus string

const (
	StatusPending  WithdrawalStatus = "PENDING"
	StatusApproved WithdrawalStatus = "APPROVED"
	StatusRejected WithdrawalStatus = "REJECTED"
)

type Withdrawal struct {
	ID             uint64
	PlayerID       string
	ExternalRef    string
	Amount         float64
	Currency       string
	Method         string
	Note           string
	AdditionalInfo string
	AssigneeID     *string
	Status         WithdrawalStatus
	RejectReason   *string
	RequestedAt    time.Time
	ConcludedAt    *time.Time
	Annotations    []Annotation
}

func (w *Withdrawal) Concluded() bool {
	return w.Status != StatusPending
}

func (w *Withdrawal) AssignedTo(reviewerID string) bool {
	return w.AssigneeID != nil && *w.AssigneeID == reviewerID
}

// ComposedNote renders the human-readable audit note from the structured
// annotation list, oldest entry first.
func (w *Withdrawal) ComposedNote() string {
	parts := make([]string, 0, len(w.Annotations)+1)
	if w.Note != "" {
		parts = append(parts, w.Note)
	}
	for _, a := range w.Annotations {
		parts = append(parts, a.Render())
	}
	return strings.Join(parts, "\n")
}
