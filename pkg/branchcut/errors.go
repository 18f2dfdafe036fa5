package branchcut

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted signals the normal end of a result sequence. Once
	// returned, every later pull returns it again.
	ErrExhausted = errors.New("search space exhausted")

	// ErrIncomplete is wrapped by every error that interrupts a search
	// before its next result or exhaustion. The engine stays consistent
	// and the pull may be retried.
	ErrIncomplete = errors.New("search interrupted before the next result")

	// ErrStepLimit is returned when a pull runs out of its step budget.
	ErrStepLimit = fmt.Errorf("step limit reached: %w", ErrIncomplete)

	// ErrBroken is returned by an engine whose previous pull panicked
	// or detected a contract violation. Such an engine must be
	// discarded.
	ErrBroken = errors.New("search engine is unusable after a failed pull")
)

// ContractViolation is returned when a Problem hands the engine a
// move it cannot use, such as a Decision where a Choice was expected.
type ContractViolation struct {
	Op     string
	Move   MoveInfo
	Reason string
}

func (e *ContractViolation) Error() string {
	if e.Move == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Move, e.Reason)
}
