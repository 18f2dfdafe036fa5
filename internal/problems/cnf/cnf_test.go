package cnf_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavrog/branchcut/internal/problems/cnf"
	"github.com/gavrog/branchcut/pkg/branchcut"
	"github.com/gavrog/branchcut/pkg/branchcut/engine"
)

func models(t *testing.T, numVars int, clauses [][]int, options ...cnf.Option) ([][]bool, engine.Stats) {
	t.Helper()
	f, err := cnf.New(numVars, clauses, options...)
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	e, err := engine.New[cnf.Literal, []bool](f, engine.WithLogger(logger))
	require.NoError(t, err)
	results, err := e.Take(context.Background(), 0)
	require.NoError(t, err)
	return results, e.Stats()
}

// bruteForce counts the assignments satisfying every clause.
func bruteForce(numVars int, clauses [][]int) int {
	count := 0
	for bits := 0; bits < 1<<numVars; bits++ {
		ok := true
		for _, clause := range clauses {
			sat := false
			for _, lit := range clause {
				v := lit
				if v < 0 {
					v = -v
				}
				value := bits&(1<<(v-1)) != 0
				if value == (lit > 0) {
					sat = true
					break
				}
			}
			if !sat {
				ok = false
				break
			}
		}
		if ok {
			count++
		}
	}
	return count
}

func TestModels(t *testing.T) {
	type tc struct {
		Name     string
		NumVars  int
		Clauses  [][]int
		Expected [][]bool
	}

	for _, tt := range []tc{
		{
			Name:     "x1 forced by two clauses",
			NumVars:  2,
			Clauses:  [][]int{{1, 2}, {1, -2}},
			Expected: [][]bool{{true, true}, {true, false}},
		},
		{
			Name:     "exactly one of two",
			NumVars:  2,
			Clauses:  [][]int{{1, 2}, {-1, -2}},
			Expected: [][]bool{{true, false}, {false, true}},
		},
		{
			Name:    "contradiction",
			NumVars: 1,
			Clauses: [][]int{{1}, {-1}},
		},
		{
			Name:    "empty clause",
			NumVars: 1,
			Clauses: [][]int{{}},
		},
		{
			Name:     "no clauses",
			NumVars:  2,
			Expected: [][]bool{{true, true}, {true, false}, {false, true}, {false, false}},
		},
		{
			Name:     "implication chain",
			NumVars:  3,
			Clauses:  [][]int{{-1, 2}, {-2, 3}},
			Expected: [][]bool{{true, true, true}, {false, true, true}, {false, false, true}, {false, false, false}},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			plain, _ := models(t, tt.NumVars, tt.Clauses)
			assert.Equal(t, tt.Expected, plain)
			cut, _ := models(t, tt.NumVars, tt.Clauses, cnf.WithSATCut())
			assert.Equal(t, tt.Expected, cut)
		})
	}
}

func TestSATCutPrunesDeadSubtrees(t *testing.T) {
	// x1 is free, x2 and x3 admit no assignment at all
	clauses := [][]int{{2, 3}, {2, -3}, {-2, 3}, {-2, -3}}

	plain, plainStats := models(t, 3, clauses)
	assert.Empty(t, plain)
	assert.Equal(t, 6, plainStats.Decisions)

	cut, cutStats := models(t, 3, clauses, cnf.WithSATCut())
	assert.Empty(t, cut)
	assert.Equal(t, 2, cutStats.Decisions)
}

func TestRandomFormulasMatchBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	const numVars = 8
	for i := 0; i < 20; i++ {
		var clauses [][]int
		for c := 0; c < 4+r.Intn(20); c++ {
			clause := make([]int, 3)
			for j := range clause {
				clause[j] = 1 + r.Intn(numVars)
				if r.Intn(2) == 0 {
					clause[j] = -clause[j]
				}
			}
			clauses = append(clauses, clause)
		}
		want := bruteForce(numVars, clauses)

		plain, _ := models(t, numVars, clauses)
		assert.Len(t, plain, want, "formula %v", clauses)
		cut, _ := models(t, numVars, clauses, cnf.WithSATCut())
		assert.Equal(t, plain, cut, "formula %v", clauses)

		seen := map[string]struct{}{}
		for _, m := range plain {
			key := cnf.FormatModel(m)
			assert.NotContains(t, seen, key)
			seen[key] = struct{}{}
		}
	}
}

func TestNewRejectsBadLiterals(t *testing.T) {
	_, err := cnf.New(0, nil)
	assert.Error(t, err)
	_, err = cnf.New(2, [][]int{{1, 3}})
	assert.Error(t, err)
	_, err = cnf.New(2, [][]int{{-3}})
	assert.Error(t, err)
	_, err = cnf.New(2, [][]int{{0}})
	assert.Error(t, err)
}

func TestUnitPropagation(t *testing.T) {
	f, err := cnf.New(3, [][]int{{-1, 2}, {-1, -3}, {1, 3}})
	require.NoError(t, err)

	m := branchcut.NewDecision(cnf.Literal{Var: 1, Value: true})
	require.Equal(t, branchcut.OK, f.CheckMove(m))
	f.PerformMove(m)

	var forced []cnf.Literal
	for _, d := range f.Deductions(m) {
		assert.True(t, d.IsDeduction())
		forced = append(forced, d.Payload())
	}
	assert.Equal(t, []cnf.Literal{{Var: 2, Value: true}, {Var: 3}}, forced)

	assert.Equal(t, branchcut.Void, f.CheckMove(branchcut.NewDeduction(cnf.Literal{Var: 1, Value: true})))
	assert.Equal(t, branchcut.Illegal, f.CheckMove(branchcut.NewDeduction(cnf.Literal{Var: 1})))

	f.UndoMove(branchcut.NewDeduction(cnf.Literal{Var: 1}))
	assert.Equal(t, branchcut.Void, f.CheckMove(m), "undo of an unperformed move changes nothing")
	f.UndoMove(m)
	assert.Equal(t, branchcut.OK, f.CheckMove(m))
}
