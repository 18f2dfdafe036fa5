package permutation

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a permutation as space separated elements.
func Format(perm []int) string {
	s := make([]string, len(perm))
	for i, e := range perm {
		s[i] = strconv.Itoa(e)
	}
	return strings.Join(s, " ")
}

// ParsePair reads a pair written as element:position.
func ParsePair(s string) (Pair, error) {
	elem, pos, ok := strings.Cut(s, ":")
	if !ok {
		return Pair{}, fmt.Errorf("invalid pair (%s): want element:position", s)
	}
	e, err := strconv.Atoi(elem)
	if err != nil {
		return Pair{}, fmt.Errorf("invalid element (%s) in pair (%s)", elem, s)
	}
	p, err := strconv.Atoi(pos)
	if err != nil {
		return Pair{}, fmt.Errorf("invalid position (%s) in pair (%s)", pos, s)
	}
	return Pair{Element: e, Position: p}, nil
}
