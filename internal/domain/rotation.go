package domain

import "context"

// RotationQueue is the ordered set of reviewers available for the next
// auto-assignment. FIFO with move-to-back-on-use; an id appears at most once.
type RotationQueue interface {
	// Push appends reviewerID to the back if it is not present already.
	Push(ctx context.Context, reviewerID string) error
	// Remove drops every occurrence of reviewerID from the queue.
	Remove(ctx context.Context, reviewerID string) error
	// Rotate atomically pops the head, pushes it to the back and returns it.
	// Returns "" when the queue is empty.
	Rotate(ctx context.Context) (string, error)
	Len(ctx context.Context) (int64, error)
	Snapshot(ctx context.Context) ([]string, error)
	MarkLastAssigned(ctx context.Context, reviewerID string) error
}
