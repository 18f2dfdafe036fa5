package engine

import (
	"github.com/gavrog/branchcut/pkg/branchcut"
)

// entry is one position on the trail. applied is false for Choice
// markers and for moves that were rejected before being performed.
type entry[P any] struct {
	move    *branchcut.Move[P]
	applied bool
	seq     uint64
}

// trail is the chronological record of the moves between the search
// root and the current state. Entries are only ever pushed and popped
// at the end.
type trail[P any] struct {
	entries []entry[P]
	seq     uint64
}

func (t *trail[P]) push(m *branchcut.Move[P], applied bool) entry[P] {
	t.seq++
	e := entry[P]{move: m, applied: applied, seq: t.seq}
	t.entries = append(t.entries, e)
	return e
}

func (t *trail[P]) pop() (entry[P], bool) {
	if len(t.entries) == 0 {
		return entry[P]{}, false
	}
	last := len(t.entries) - 1
	e := t.entries[last]
	t.entries[last] = entry[P]{}
	t.entries = t.entries[:last]
	return e, true
}

func (t *trail[P]) len() int {
	return len(t.entries)
}

// moves returns the moves on the trail, oldest first.
func (t *trail[P]) moves() []*branchcut.Move[P] {
	out := make([]*branchcut.Move[P], len(t.entries))
	for i, e := range t.entries {
		out[i] = e.move
	}
	return out
}

// position is the SearchPosition handed to tracers.
type position struct {
	event branchcut.Event
	depth int
	move  branchcut.MoveInfo
	seq   uint64
}

var _ branchcut.SearchPosition = position{}

func (p position) Event() branchcut.Event {
	return p.event
}

func (p position) Depth() int {
	return p.depth
}

func (p position) Move() branchcut.MoveInfo {
	return p.move
}

func (p position) Seq() uint64 {
	return p.seq
}
