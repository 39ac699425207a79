package interfaces

import "errors"

// Persistence-level failures the use cases must distinguish from plain
// storage errors.
var (
	// ErrVersionConflict means a conditional write lost the race: the
	// document changed between the read and the commit.
	ErrVersionConflict = errors.New("document version conflict")

	// ErrSlotUnavailable means the appointment slot lock already exists.
	ErrSlotUnavailable = errors.New("appointment slot unavailable")

	// ErrGuardAlreadySet means a one-shot back-reference (converted work
	// order, attached invoice) was already written by an earlier call.
	ErrGuardAlreadySet = errors.New("idempotency guard already set")
)
