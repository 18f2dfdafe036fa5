package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Dimacs holds the variables and clauses that make up
// a CNF problem described in DIMACS format
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
type Dimacs struct {
	numVariables int
	clauses      [][]int
}

// NumVariables is the variable count declared in the header. Variables
// are numbered from 1.
func (d *Dimacs) NumVariables() int {
	return d.numVariables
}

// Clauses returns the clauses as DIMACS literals without the
// terminating 0.
func (d *Dimacs) Clauses() [][]int {
	return d.clauses
}

var (
	commentLine = regexp.MustCompile(`^c(\s.*)?$`)
	headerLine  = regexp.MustCompile(`^p\s+cnf\s+\d+\s+\d+$`)
	clauseLine  = regexp.MustCompile(`^(-?\d+\s+)+0$`)
	cleanInput  = regexp.MustCompile(`\s+`)
)

// NewDimacs creates a Dimacs struct with the values
// parsed from the DIMACS formatted stream afforded by dimacsReader
func NewDimacs(dimacsReader io.Reader) (*Dimacs, error) {
	reader := bufio.NewReader(dimacsReader)

	numVariables := 0
	numClauses := 0
	var clauses [][]int

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading dimacs data: %w", err)
		}
		eof := err != nil
		line = strings.TrimSpace(line)

		switch {
		// ignore comments and blank lines
		case line == "" || commentLine.MatchString(line):

		// SATLIB files end their clause list with a line holding '%'
		case line == "%":
			eof = true

		case headerLine.MatchString(line):
			if clauses != nil {
				return nil, fmt.Errorf("invalid dimacs format: duplicate header (%s)", line)
			}
			problem := cleanInput.Split(line, -1)
			numVariables, _ = strconv.Atoi(problem[2])
			numClauses, _ = strconv.Atoi(problem[3])
			clauses = make([][]int, 0, numClauses)

		case clauseLine.MatchString(line):
			if clauses == nil {
				return nil, fmt.Errorf("invalid dimacs format: missing header 'p cnf <variable> <clauses>'")
			}
			fields := cleanInput.Split(line, -1)
			clause, err := parseClause(fields[:len(fields)-1], numVariables)
			if err != nil {
				return nil, fmt.Errorf("invalid clause (%s): %w", line, err)
			}
			clauses = append(clauses, clause)

		default:
			// error out if the instruction is invalid
			return nil, fmt.Errorf("invalid dimacs command: %s", line)
		}

		if eof {
			break
		}
	}

	if numVariables == 0 || clauses == nil {
		return nil, fmt.Errorf("invalid format: no variables or clauses found")
	}

	if len(clauses) != numClauses {
		return nil, fmt.Errorf("invalid format: header declares %d clauses, found %d", numClauses, len(clauses))
	}

	return &Dimacs{
		numVariables: numVariables,
		clauses:      clauses,
	}, nil
}

func parseClause(fields []string, numVariables int) ([]int, error) {
	clause := make([]int, 0, len(fields))
	for _, lit := range fields {
		litInt, err := strconv.Atoi(lit)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", lit)
		}
		if litInt == 0 {
			return nil, fmt.Errorf("0 is not a valid variable")
		}
		if litInt > numVariables || litInt < -numVariables {
			return nil, fmt.Errorf("%s is not a valid variable", lit)
		}
		clause = append(clause, litInt)
	}
	return clause, nil
}
