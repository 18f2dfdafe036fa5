package branchcut

import (
	"fmt"
)

// MoveType tags a Move with the role it plays in the search.
type MoveType int

const (
	// Choice marks a point in the search that requires a decision.
	// Choice moves never change problem state.
	Choice MoveType = iota
	// Decision is one concrete alternative taken at a choice point.
	Decision
	// Deduction is forced as a consequence of a Decision.
	Deduction
)

func (t MoveType) String() string {
	switch t {
	case Choice:
		return "choice"
	case Decision:
		return "decision"
	case Deduction:
		return "deduction"
	}
	return fmt.Sprintf("MoveType(%d)", int(t))
}

// Move values are the unit of work handed between a Problem and
// the search engine. The engine stores and orders moves but never
// reads their payload. Moves are compared by identity.
type Move[P any] struct {
	kind    MoveType
	payload P
}

// NewChoice returns a Choice move carrying payload.
func NewChoice[P any](payload P) *Move[P] {
	return &Move[P]{kind: Choice, payload: payload}
}

// NewDecision returns a Decision move carrying payload.
func NewDecision[P any](payload P) *Move[P] {
	return &Move[P]{kind: Decision, payload: payload}
}

// NewDeduction returns a Deduction move carrying payload.
func NewDeduction[P any](payload P) *Move[P] {
	return &Move[P]{kind: Deduction, payload: payload}
}

func (m *Move[P]) Type() MoveType {
	return m.kind
}

func (m *Move[P]) Payload() P {
	return m.payload
}

func (m *Move[P]) IsChoice() bool {
	return m.kind == Choice
}

func (m *Move[P]) IsDecision() bool {
	return m.kind == Decision
}

func (m *Move[P]) IsDeduction() bool {
	return m.kind == Deduction
}

// String implements fmt.Stringer and returns a human-readable message
// representing the receiver.
func (m *Move[P]) String() string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%v)", m.kind, m.payload)
}

// Status is the outcome of checking a move against the current
// problem state.
type Status int

const (
	// OK means the move can be performed.
	OK Status = iota
	// Void means the move would not change anything and is dropped.
	Void
	// Illegal means the move conflicts with the current state.
	Illegal
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Void:
		return "void"
	case Illegal:
		return "illegal"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Problem implementations define a search space for the engine. A
// Problem owns all domain state; the engine only decides in which
// order moves are performed and undone.
//
// UndoMove may be called on moves that were never performed: Choice
// markers and moves rejected as Illegal are both undone when they
// leave the trail. Implementations typically key undo off recorded
// state so that it is a no-op in those cases.
type Problem[P, R any] interface {
	// NextChoice returns a Choice move following previous, which is
	// nil at the root of the search.
	NextChoice(previous *Move[P]) *Move[P]
	// NextDecision returns the Decision to try after anchor, which is
	// either a Choice marker or the last Decision tried at the same
	// point. It returns nil when the alternatives are exhausted.
	NextDecision(anchor *Move[P]) *Move[P]
	// CheckMove reports whether m can be performed, without side
	// effects.
	CheckMove(m *Move[P]) Status
	// PerformMove applies a move that was checked OK.
	PerformMove(m *Move[P])
	// UndoMove reverses the effects of m if it was applied.
	UndoMove(m *Move[P])
	// Deductions returns the Deduction moves forced by a move that was
	// just performed, in the order they should be tried.
	Deductions(m *Move[P]) []*Move[P]
	// IsValid reports whether the current state is consistent enough
	// to be tested for completeness.
	IsValid() bool
	// MakeResult returns the completed object, or false if the state
	// is valid but not yet complete.
	MakeResult() (R, bool)
}
