package imm

import "errors"

var (
	// ErrInvalidHeight is returned by New when the height cannot hold the
	// sentinel leaf.
	ErrInvalidHeight = errors.New("height must be at least 2")

	// ErrCapacityExceeded is returned when a leaf index would fall outside
	// the tree's 2^(height-1) slots.
	ErrCapacityExceeded = errors.New("tree is over capacity")

	// ErrDuplicateKey is returned by Insert when the key is already
	// present. The zero key counts as present: it is the sentinel's.
	ErrDuplicateKey = errors.New("key already exists")

	// ErrKeyNotFound is returned by Update and the proof generators when
	// the key is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyPresent is returned by NonMembershipProof when the key is
	// actually present.
	ErrKeyPresent = errors.New("key is present")
)

// Stateless verification failures. A verifier treats any of these as
// "reject the transition".
var (
	ErrOldRootMismatch   = errors.New("witness does not match the old root")
	ErrNewRootMismatch   = errors.New("witness does not match the new root")
	ErrOrderingViolation = errors.New("low leaf does not bound the key")
)
