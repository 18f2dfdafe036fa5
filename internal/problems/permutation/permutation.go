// Package permutation enumerates the permutations of 1..n that avoid a
// set of forbidden (element, position) pairs.
package permutation

import (
	"fmt"

	"github.com/gavrog/branchcut/pkg/branchcut"
)

// Pair places Element at Position. Both are 1-based.
type Pair struct {
	Element  int
	Position int
}

func (p Pair) String() string {
	return fmt.Sprintf("%d@%d", p.Element, p.Position)
}

type Move = branchcut.Move[Pair]

var _ branchcut.Problem[Pair, []int] = &Permutation{}

// Permutation fills positions left to right. Choice moves carry the
// position to fill and element 0.
type Permutation struct {
	n         int
	slots     []int
	used      []bool
	filled    int
	forbidden map[Pair]struct{}
}

func New(n int, forbidden ...Pair) (*Permutation, error) {
	if n < 1 {
		return nil, fmt.Errorf("permutation size must be positive, got %d", n)
	}
	p := &Permutation{
		n:         n,
		slots:     make([]int, n+1),
		used:      make([]bool, n+1),
		forbidden: make(map[Pair]struct{}, len(forbidden)),
	}
	for _, f := range forbidden {
		if f.Element < 1 || f.Element > n || f.Position < 1 || f.Position > n {
			return nil, fmt.Errorf("forbidden pair %s out of range 1..%d", f, n)
		}
		p.forbidden[f] = struct{}{}
	}
	return p, nil
}

func (p *Permutation) NextChoice(_ *Move) *Move {
	for pos := 1; pos <= p.n; pos++ {
		if p.slots[pos] == 0 {
			return branchcut.NewChoice(Pair{Position: pos})
		}
	}
	return branchcut.NewChoice(Pair{Position: p.n + 1})
}

func (p *Permutation) NextDecision(anchor *Move) *Move {
	last := anchor.Payload()
	if last.Position > p.n || last.Element >= p.n {
		return nil
	}
	return branchcut.NewDecision(Pair{Element: last.Element + 1, Position: last.Position})
}

func (p *Permutation) CheckMove(m *Move) branchcut.Status {
	pair := m.Payload()
	switch {
	case p.slots[pair.Position] == pair.Element:
		return branchcut.Void
	case p.slots[pair.Position] != 0, p.used[pair.Element]:
		return branchcut.Illegal
	}
	if _, ok := p.forbidden[pair]; ok {
		return branchcut.Illegal
	}
	return branchcut.OK
}

func (p *Permutation) PerformMove(m *Move) {
	pair := m.Payload()
	p.slots[pair.Position] = pair.Element
	p.used[pair.Element] = true
	p.filled++
}

func (p *Permutation) UndoMove(m *Move) {
	pair := m.Payload()
	if m.IsChoice() || p.slots[pair.Position] != pair.Element {
		return
	}
	p.slots[pair.Position] = 0
	p.used[pair.Element] = false
	p.filled--
}

// Deductions fills the last open position with the last unused
// element.
func (p *Permutation) Deductions(_ *Move) []*Move {
	if p.filled != p.n-1 {
		return nil
	}
	var pos, elem int
	for i := 1; i <= p.n; i++ {
		if p.slots[i] == 0 {
			pos = i
		}
		if !p.used[i] {
			elem = i
		}
	}
	return []*Move{branchcut.NewDeduction(Pair{Element: elem, Position: pos})}
}

func (p *Permutation) IsValid() bool {
	return true
}

func (p *Permutation) MakeResult() ([]int, bool) {
	if p.filled < p.n {
		return nil, false
	}
	out := make([]int, p.n)
	copy(out, p.slots[1:])
	return out, true
}
