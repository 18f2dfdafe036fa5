// Package sudoku completes partially filled Sudoku grids of any box
// size. Every completion is a separate result.
package sudoku

import (
	"fmt"

	"github.com/gavrog/branchcut/pkg/branchcut"
)

// Placement puts Digit into Cell. Cells are numbered row by row from 0.
// Choice moves carry the cell to fill and digit 0.
type Placement struct {
	Cell  int
	Digit int
}

func (p Placement) String() string {
	return fmt.Sprintf("%d=%d", p.Cell, p.Digit)
}

type Move = branchcut.Move[Placement]

var _ branchcut.Problem[Placement, []int] = &Sudoku{}

// maxBox keeps every candidate set within a uint64.
const maxBox = 7

type Sudoku struct {
	box    int
	size   int
	cells  []int
	filled int
	peers  [][]int
}

// New returns a grid with boxes of box×box cells, so box 3 is the
// usual 9×9 puzzle. givens lists the initial cells row by row, 0 for
// blanks; a nil slice means an empty grid.
func New(box int, givens []int) (*Sudoku, error) {
	if box < 1 || box > maxBox {
		return nil, fmt.Errorf("box size must be in 1..%d, got %d", maxBox, box)
	}
	size := box * box
	s := &Sudoku{
		box:   box,
		size:  size,
		cells: make([]int, size*size),
	}
	s.peers = make([][]int, len(s.cells))
	for c := range s.cells {
		s.peers[c] = s.peersOf(c)
	}
	if givens == nil {
		return s, nil
	}
	if len(givens) != len(s.cells) {
		return nil, fmt.Errorf("expected %d cells, got %d", len(s.cells), len(givens))
	}
	for c, d := range givens {
		if d == 0 {
			continue
		}
		if d < 0 || d > size {
			return nil, fmt.Errorf("digit %d in cell %d out of range 1..%d", d, c, size)
		}
		m := branchcut.NewDecision(Placement{Cell: c, Digit: d})
		if s.CheckMove(m) != branchcut.OK {
			return nil, fmt.Errorf("given %s conflicts with another given", m.Payload())
		}
		s.PerformMove(m)
	}
	return s, nil
}

func (s *Sudoku) Size() int {
	return s.size
}

func (s *Sudoku) peersOf(cell int) []int {
	row, col := cell/s.size, cell%s.size
	br, bc := row/s.box*s.box, col/s.box*s.box
	seen := map[int]struct{}{cell: {}}
	var peers []int
	add := func(c int) {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			peers = append(peers, c)
		}
	}
	for i := 0; i < s.size; i++ {
		add(row*s.size + i)
		add(i*s.size + col)
	}
	for r := br; r < br+s.box; r++ {
		for c := bc; c < bc+s.box; c++ {
			add(r*s.size + c)
		}
	}
	return peers
}

// candidates returns the digits that can still go into an empty cell
// as a bit set, bit d standing for digit d, together with their count.
func (s *Sudoku) candidates(cell int) (uint64, int) {
	var taken uint64
	for _, p := range s.peers[cell] {
		taken |= 1 << uint(s.cells[p])
	}
	var set uint64
	n := 0
	for d := 1; d <= s.size; d++ {
		if taken&(1<<uint(d)) == 0 {
			set |= 1 << uint(d)
			n++
		}
	}
	return set, n
}

// NextChoice picks the empty cell with the fewest candidates, the
// lowest numbered one on ties. A full grid gets cell -1, whose single
// decision changes nothing and lets the grid itself be reported.
func (s *Sudoku) NextChoice(_ *Move) *Move {
	best, fewest := -1, s.size+1
	for c, d := range s.cells {
		if d != 0 {
			continue
		}
		if _, n := s.candidates(c); n < fewest {
			best, fewest = c, n
		}
	}
	return branchcut.NewChoice(Placement{Cell: best})
}

func (s *Sudoku) NextDecision(anchor *Move) *Move {
	last := anchor.Payload()
	if last.Cell < 0 {
		if anchor.IsChoice() {
			return branchcut.NewDecision(Placement{Cell: -1})
		}
		return nil
	}
	set, _ := s.candidates(last.Cell)
	for d := last.Digit + 1; d <= s.size; d++ {
		if set&(1<<uint(d)) != 0 {
			return branchcut.NewDecision(Placement{Cell: last.Cell, Digit: d})
		}
	}
	return nil
}

func (s *Sudoku) CheckMove(m *Move) branchcut.Status {
	p := m.Payload()
	if p.Cell < 0 {
		return branchcut.OK
	}
	switch s.cells[p.Cell] {
	case p.Digit:
		return branchcut.Void
	case 0:
	default:
		return branchcut.Illegal
	}
	for _, peer := range s.peers[p.Cell] {
		if s.cells[peer] == p.Digit {
			return branchcut.Illegal
		}
	}
	return branchcut.OK
}

func (s *Sudoku) PerformMove(m *Move) {
	p := m.Payload()
	if p.Cell < 0 {
		return
	}
	s.cells[p.Cell] = p.Digit
	s.filled++
}

func (s *Sudoku) UndoMove(m *Move) {
	p := m.Payload()
	if m.IsChoice() || p.Cell < 0 || s.cells[p.Cell] != p.Digit {
		return
	}
	s.cells[p.Cell] = 0
	s.filled--
}

// Deductions places naked singles: empty peers of the changed cell
// that have a single candidate left.
func (s *Sudoku) Deductions(m *Move) []*Move {
	cell := m.Payload().Cell
	if cell < 0 {
		return nil
	}
	var out []*Move
	for _, peer := range s.peers[cell] {
		if s.cells[peer] != 0 {
			continue
		}
		set, n := s.candidates(peer)
		if n != 1 {
			continue
		}
		for d := 1; d <= s.size; d++ {
			if set&(1<<uint(d)) != 0 {
				out = append(out, branchcut.NewDeduction(Placement{Cell: peer, Digit: d}))
				break
			}
		}
	}
	return out
}

// IsValid reports whether every empty cell still has a candidate.
func (s *Sudoku) IsValid() bool {
	for c, d := range s.cells {
		if d != 0 {
			continue
		}
		if _, n := s.candidates(c); n == 0 {
			return false
		}
	}
	return true
}

func (s *Sudoku) MakeResult() ([]int, bool) {
	if s.filled < len(s.cells) {
		return nil, false
	}
	out := make([]int, len(s.cells))
	copy(out, s.cells)
	return out, true
}
