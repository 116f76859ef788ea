package domain

import (
	"fmt"
	"time"
)

const (
	AnnotationAutoApproved   = "auto_approved"
	AnnotationAutoRejected   = "auto_rejected"
	AnnotationManualApproved = "manual_approved"
	AnnotationManualRejected = "manual_rejected"
	AnnotationComment        = "comment"
)

// Annotation is an immutable audit entry attached to a withdrawal.
// The accumulated request note is a derived view over these entries.
type Annotation struct {
	ID           string
	WithdrawalID uint64
	Code         string
	Text         string
	CreatedAt    time.Time
}

func (a *Annotation) Render() string {
	if a.Text == "" {
		return fmt.Sprintf("[%s] %s", a.CreatedAt.Format(time.RFC3339), a.Code)
	}
	return fmt.Sprintf("[%s] %s: %s", a.CreatedAt.Format(time.RFC3339), a.Code, a.Text)
}
