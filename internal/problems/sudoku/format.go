package sudoku

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads a grid written as one character per cell, row by row.
// Blanks are '.' or '0'; whitespace is ignored. Only grids with up to
// nine digits can be written this way.
func Parse(box int, s string) ([]int, error) {
	size := box * box
	if size > 9 {
		return nil, fmt.Errorf("grids with box size %d cannot be written one character per cell", box)
	}
	var cells []int
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '.' || r == '0':
			cells = append(cells, 0)
		case r >= '1' && r <= rune('0'+size):
			cells = append(cells, int(r-'0'))
		default:
			return nil, fmt.Errorf("invalid cell %q in grid", r)
		}
	}
	if len(cells) != size*size {
		return nil, fmt.Errorf("expected %d cells, got %d", size*size, len(cells))
	}
	return cells, nil
}

// Format renders a grid with one row per line and cells separated by a
// space. Blank cells are printed as '.'.
func Format(box int, cells []int) string {
	size := box * box
	var sb strings.Builder
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if col != 0 {
				sb.WriteByte(' ')
			}
			if d := cells[row*size+col]; d != 0 {
				sb.WriteString(strconv.Itoa(d))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
