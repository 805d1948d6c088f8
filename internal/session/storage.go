package session

import "context"

// Store defines the persistence contract for the per-user lookup mode.
// Concurrent writes for the same user are last-write-wins; the interaction
// pattern is one user driving one conversation, so no mutual exclusion is
// promised beyond that.
type Store interface {
	// SetMode saves the selected mode for the user, overwriting any previous
	// selection.
	SetMode(ctx context.Context, userID int64, mode Mode) error
	// GetMode returns the stored mode, or ErrNotFound when absent.
	GetMode(ctx context.Context, userID int64) (Mode, error)
	// ClearMode removes the stored mode for the user.
	ClearMode(ctx context.Context, userID int64) error
}
