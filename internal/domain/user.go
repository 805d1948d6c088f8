package domain

import "time"

// User represents a bot user stored in the database. A record is created
// exactly once, on first contact, and never deleted during normal operation.
type User struct {
	TelegramID int64
	Username   string
	FirstName  string
	Credits    int64
	ReferredBy *int64
	CreatedAt  time.Time
}

// ReferralEdge links a referrer to the user they invited. A user can be the
// referred side of at most one edge; edges are never mutated or deleted.
type ReferralEdge struct {
	ReferrerID int64
	ReferredID int64
	CreatedAt  time.Time
}
