package cnf

import (
	"strconv"
	"strings"
)

// FormatModel renders a model as a DIMACS value line: one literal per
// variable, terminated by 0.
func FormatModel(model []bool) string {
	s := make([]string, 0, len(model)+1)
	for i, v := range model {
		lit := i + 1
		if !v {
			lit = -lit
		}
		s = append(s, strconv.Itoa(lit))
	}
	s = append(s, "0")
	return strings.Join(s, " ")
}
