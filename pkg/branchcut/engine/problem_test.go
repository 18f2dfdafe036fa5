package engine_test

import (
	"strings"

	"github.com/gavrog/branchcut/pkg/branchcut"
)

// bit assigns Val to position Pos. Choice markers carry Val -1.
type bit struct {
	Pos, Val int
}

type bitMove = branchcut.Move[bit]

// bits enumerates the binary strings of length n. Hooks let each test
// reject moves, force deductions, or declare states invalid, and every
// callback is recorded.
type bits struct {
	n    int
	vals []int

	illegal   func(m *bitMove, vals []int) bool
	deduce    func(m *bitMove) []bit
	valid     func(vals []int) bool
	onPerform func(m *bitMove)

	performed []*bitMove
	undone    []*bitMove
}

var _ branchcut.Problem[bit, string] = &bits{}

func newBits(n int) *bits {
	vals := make([]int, n)
	for i := range vals {
		vals[i] = -1
	}
	return &bits{n: n, vals: vals}
}

func (b *bits) NextChoice(_ *bitMove) *bitMove {
	for i, v := range b.vals {
		if v < 0 {
			return branchcut.NewChoice(bit{Pos: i, Val: -1})
		}
	}
	return branchcut.NewChoice(bit{Pos: b.n, Val: -1})
}

func (b *bits) NextDecision(anchor *bitMove) *bitMove {
	p := anchor.Payload()
	if p.Pos >= b.n {
		return nil
	}
	switch {
	case anchor.IsChoice():
		return branchcut.NewDecision(bit{Pos: p.Pos, Val: 0})
	case p.Val == 0:
		return branchcut.NewDecision(bit{Pos: p.Pos, Val: 1})
	}
	return nil
}

func (b *bits) CheckMove(m *bitMove) branchcut.Status {
	p := m.Payload()
	switch {
	case b.vals[p.Pos] == p.Val:
		return branchcut.Void
	case b.vals[p.Pos] >= 0:
		return branchcut.Illegal
	case b.illegal != nil && b.illegal(m, b.vals):
		return branchcut.Illegal
	}
	return branchcut.OK
}

func (b *bits) PerformMove(m *bitMove) {
	if b.onPerform != nil {
		b.onPerform(m)
	}
	p := m.Payload()
	b.vals[p.Pos] = p.Val
	b.performed = append(b.performed, m)
}

func (b *bits) UndoMove(m *bitMove) {
	b.undone = append(b.undone, m)
	if m.IsChoice() {
		return
	}
	p := m.Payload()
	if b.vals[p.Pos] == p.Val {
		b.vals[p.Pos] = -1
	}
}

func (b *bits) Deductions(m *bitMove) []*bitMove {
	if b.deduce == nil {
		return nil
	}
	var out []*bitMove
	for _, d := range b.deduce(m) {
		out = append(out, branchcut.NewDeduction(d))
	}
	return out
}

func (b *bits) IsValid() bool {
	return b.valid == nil || b.valid(b.vals)
}

func (b *bits) MakeResult() (string, bool) {
	var sb strings.Builder
	for _, v := range b.vals {
		if v < 0 {
			return "", false
		}
		sb.WriteByte(byte('0' + v))
	}
	return sb.String(), true
}

// stackTracer replays pushes and pops against its own stack and
// records any pop that is not of the most recent push.
type stackTracer struct {
	stack      []uint64
	violations []uint64
	events     []branchcut.Event
}

func (t *stackTracer) Trace(p branchcut.SearchPosition) {
	t.events = append(t.events, p.Event())
	switch p.Event() {
	case branchcut.Push, branchcut.Reject:
		t.stack = append(t.stack, p.Seq())
	case branchcut.Pop:
		last := len(t.stack) - 1
		if last < 0 || t.stack[last] != p.Seq() {
			t.violations = append(t.violations, p.Seq())
			return
		}
		t.stack = t.stack[:last]
	}
}
