// Package cnf enumerates all models of a formula in conjunctive normal
// form. Literals use the DIMACS convention: variable v is written v,
// its negation -v, and variables are numbered from 1.
package cnf

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/gavrog/branchcut/pkg/branchcut"
)

// unsatisfiable is what gini's Solve returns for UNSAT.
const unsatisfiable = -1

// Literal assigns Value to variable Var. Choice moves carry the
// variable to decide with Value false.
type Literal struct {
	Var   int
	Value bool
}

func (l Literal) String() string {
	if l.Value {
		return fmt.Sprintf("%d", l.Var)
	}
	return fmt.Sprintf("-%d", l.Var)
}

func (l Literal) dimacs() int {
	if l.Value {
		return l.Var
	}
	return -l.Var
}

func fromDimacs(lit int) Literal {
	if lit < 0 {
		return Literal{Var: -lit}
	}
	return Literal{Var: lit, Value: true}
}

type Move = branchcut.Move[Literal]

var _ branchcut.Problem[Literal, []bool] = &Formula{}

type Formula struct {
	numVars  int
	clauses  [][]int
	occurs   map[int][]int
	assign   []int8
	assigned int

	sat         *gini.Gini
	assumptions []z.Lit
}

type Option func(f *Formula) error

// WithSATCut makes IsValid reject partial assignments under which the
// whole formula is unsatisfiable, as decided by a complete SAT solver.
// Subtrees without models are then cut at their root.
func WithSATCut() Option {
	return func(f *Formula) error {
		g := gini.NewVc(f.numVars, len(f.clauses))
		for _, clause := range f.clauses {
			for _, lit := range clause {
				g.Add(z.Dimacs2Lit(lit))
			}
			g.Add(z.LitNull)
		}
		f.sat = g
		return nil
	}
}

func New(numVars int, clauses [][]int, options ...Option) (*Formula, error) {
	if numVars < 1 {
		return nil, fmt.Errorf("formula needs at least one variable, got %d", numVars)
	}
	f := &Formula{
		numVars: numVars,
		clauses: clauses,
		occurs:  make(map[int][]int),
		assign:  make([]int8, numVars+1),
	}
	for i, clause := range clauses {
		for _, lit := range clause {
			if lit == 0 || lit > numVars || -lit > numVars {
				return nil, fmt.Errorf("clause %d: literal %d out of range 1..%d", i+1, lit, numVars)
			}
			f.occurs[lit] = append(f.occurs[lit], i)
		}
	}
	for _, option := range options {
		if err := option(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// value returns 1 if lit is true, -1 if it is false and 0 if its
// variable is unassigned.
func (f *Formula) value(lit int) int8 {
	if lit < 0 {
		return -f.assign[-lit]
	}
	return f.assign[lit]
}

func (f *Formula) NextChoice(_ *Move) *Move {
	v := 1
	for v <= f.numVars && f.assign[v] != 0 {
		v++
	}
	return branchcut.NewChoice(Literal{Var: v})
}

// NextDecision tries true before false.
func (f *Formula) NextDecision(anchor *Move) *Move {
	last := anchor.Payload()
	switch {
	case last.Var > f.numVars:
		return nil
	case anchor.IsChoice():
		return branchcut.NewDecision(Literal{Var: last.Var, Value: true})
	case last.Value:
		return branchcut.NewDecision(Literal{Var: last.Var})
	}
	return nil
}

func (f *Formula) CheckMove(m *Move) branchcut.Status {
	switch f.value(m.Payload().dimacs()) {
	case 1:
		return branchcut.Void
	case -1:
		return branchcut.Illegal
	}
	return branchcut.OK
}

func (f *Formula) PerformMove(m *Move) {
	l := m.Payload()
	if l.Value {
		f.assign[l.Var] = 1
	} else {
		f.assign[l.Var] = -1
	}
	f.assigned++
}

func (f *Formula) UndoMove(m *Move) {
	if m.IsChoice() || f.value(m.Payload().dimacs()) != 1 {
		return
	}
	f.assign[m.Payload().Var] = 0
	f.assigned--
}

// Deductions runs one round of unit propagation: every clause that the
// move left with no true literal and a single open one forces that
// literal.
func (f *Formula) Deductions(m *Move) []*Move {
	var out []*Move
	for _, i := range f.occurs[-m.Payload().dimacs()] {
		open, n := 0, 0
		satisfied := false
		for _, lit := range f.clauses[i] {
			switch f.value(lit) {
			case 1:
				satisfied = true
			case 0:
				open = lit
				n++
			}
		}
		if !satisfied && n == 1 {
			out = append(out, branchcut.NewDeduction(fromDimacs(open)))
		}
	}
	return out
}

func (f *Formula) falsified(clause []int) bool {
	for _, lit := range clause {
		if f.value(lit) != -1 {
			return false
		}
	}
	return true
}

func (f *Formula) IsValid() bool {
	for _, clause := range f.clauses {
		if f.falsified(clause) {
			return false
		}
	}
	if f.sat == nil {
		return true
	}
	f.assumptions = f.assumptions[:0]
	for v := 1; v <= f.numVars; v++ {
		switch f.assign[v] {
		case 1:
			f.assumptions = append(f.assumptions, z.Var(v).Pos())
		case -1:
			f.assumptions = append(f.assumptions, z.Var(v).Neg())
		}
	}
	f.sat.Assume(f.assumptions...)
	return f.sat.Solve() != unsatisfiable
}

func (f *Formula) MakeResult() ([]bool, bool) {
	if f.assigned < f.numVars {
		return nil, false
	}
	model := make([]bool, f.numVars)
	for v := 1; v <= f.numVars; v++ {
		model[v-1] = f.assign[v] == 1
	}
	return model, true
}
