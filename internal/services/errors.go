package services

import "errors"

// Business-condition errors. Handlers branch on these and map them to
// result shapes; they are never raised for transport failures, which wrap
// and propagate as-is.
var (
	// ErrDuplicateInteraction means a like or save already exists for the
	// (subject, actor) pair.
	ErrDuplicateInteraction = errors.New("interaction already exists")

	// ErrNotFound means the targeted record or parent does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrPartialCascade means some but not all children of a cascading
	// delete were removed. Every cascade step is idempotent, so re-running
	// the whole cascade converges to the correct end state.
	ErrPartialCascade = errors.New("cascade partially failed")

	// ErrPartialFanout means some member writes of a ping fan-out failed.
	// Already-written pings stay in place; retrying the fan-out is safe
	// because member writes are increment-or-create.
	ErrPartialFanout = errors.New("ping fan-out partially failed")

	// ErrSelfSupport means a user tried to support themselves.
	ErrSelfSupport = errors.New("cannot support self")

	// ErrInvalidItemType means an item-like targeted an unknown item type.
	ErrInvalidItemType = errors.New("unknown item type")
)
