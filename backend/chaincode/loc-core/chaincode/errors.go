package chaincode

import "github.com/pkg/errors"

// Workflow errors. Each aborts the whole operation; with one write per
// operation there are never partial updates to roll back.
var (
	// ErrNotAParty - the caller does not hold the role the operation needs on
	// this letter.
	ErrNotAParty = errors.New("caller is not a party in the letter of credit")

	// ErrNotEditable - approval-phase edits are only allowed while the letter
	// awaits approval.
	ErrNotEditable = errors.New("letter of credit is no longer editable")

	// ErrInvalidTransition - the letter's current status does not permit the
	// requested transition.
	ErrInvalidTransition = errors.New("letter of credit status does not allow this transition")
)
