package coinselect

import (
	"errors"
	"fmt"
)

// Sentinel reasons wrapped by SelectionConflict.
var (
	ErrAlreadySelected = errors.New("coinselect: candidate already selected")
	ErrBanned          = errors.New("coinselect: candidate is banned")
	ErrIndexOutOfRange = errors.New("coinselect: candidate index out of range")
)

// SelectionConflict is returned when a mutation on the selection state
// can't be honored: selecting a banned or already-selected index, or
// addressing an index outside the candidate catalog.
type SelectionConflict struct {
	Index  int
	Reason error
}

func (e *SelectionConflict) Error() string {
	return fmt.Sprintf("coinselect: selection conflict at index %d: %v", e.Index, e.Reason)
}

func (e *SelectionConflict) Unwrap() error { return e.Reason }

// InsufficientFunds is returned when the entire candidate catalog, fully
// selected, still can't meet a target.
type InsufficientFunds struct {
	Missing uint64
}

func (e *InsufficientFunds) Error() string {
	return fmt.Sprintf("coinselect: insufficient funds, missing %d satoshis", e.Missing)
}

// BnbNoSolution is returned when a branch-and-bound search terminates,
// whether by exhausting the search space or hitting max_rounds, without
// ever finding a feasible selection.
type BnbNoSolution struct {
	Rounds int
}

func (e *BnbNoSolution) Error() string {
	return fmt.Sprintf("coinselect: branch-and-bound found no solution after %d rounds", e.Rounds)
}
