package domain

import "time"

// TransferRecord is one immutable entry of the assignment audit trail.
// TransferredBy == nil means the change came from the system (auto-unassign)
// or from a claim out of the unassigned pool. TransferredTo == nil means the
// request went back to the unassigned pool.
type TransferRecord struct {
	ID            string
	WithdrawalID  uint64
	TransferredBy *string
	TransferredTo *string
	CreatedAt     time.Time
}

// ReplayAssignee applies ledger records in order to an initially unassigned
// request and returns the resulting assignee. Used to detect divergence
// between the ledger and the persisted assignee.
func ReplayAssignee(records []*TransferRecord) *string {
	var assignee *string
	for _, record := range records {
		assignee = record.TransferredTo
	}
	return assignee
}
