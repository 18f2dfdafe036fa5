package root_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavrog/branchcut/cmd/root"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := root.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSubcommands(t *testing.T) {
	cmd := root.NewRootCmd()
	for _, name := range []string{"models", "permutation", "sudoku"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := root.NewRootCmd()
	for _, name := range []string{"config", "log-level", "log-format", "limit", "step-limit", "timeout", "trace"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestGolden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))

	for _, tt := range []struct {
		name string
		args []string
	}{
		{"permutation-3-forbid-1-1", []string{"permutation", "3", "--forbid", "1:1"}},
		{"permutation-derangements-3", []string{"permutation", "3", "--forbid", "1:1", "--forbid", "2:2", "--forbid", "3:3"}},
		{"permutation-limit", []string{"permutation", "4", "--limit", "3"}},
		{"sudoku-empty-4x4", []string{"sudoku", "--box", "2"}},
		{"sudoku-single-blank", []string{"sudoku", "--box", "2", "1234 3412 2143 4320"}},
		{"sudoku-unsolvable", []string{"sudoku", "--box", "2", ".2.1.4..3......."}},
		{"models-print", []string{"models", "--print", "testdata/two.cnf"}},
		{"models-many", []string{"models", "--sat-cut", "testdata/two.cnf", "testdata/xor3.cnf", "testdata/unsat.cnf"}},
		{"models-limit", []string{"models", "--limit", "2", "testdata/two.cnf", "testdata/xor3.cnf"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branchcut.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  limit: 2\n"), 0o600))

	out, err := run(t, "--config", path, "permutation", "3")
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n1 3 2\n2 permutations\n", out)

	// flags win over the file
	out, err = run(t, "--config", path, "--limit", "1", "permutation", "3")
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n1 permutations\n", out)
}

func TestErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		args []string
		err  string
	}{
		{"bad size", []string{"permutation", "x"}, `invalid size (x)`},
		{"bad pair", []string{"permutation", "3", "--forbid", "1-1"}, "1-1"},
		{"bad level", []string{"--log-level", "loud", "permutation", "3"}, "invalid log level"},
		{"bad limit", []string{"--limit", "-1", "permutation", "3"}, "must not be negative"},
		{"missing config", []string{"--config", "testdata/nope.yaml", "permutation", "3"}, "error reading config file"},
		{"missing file", []string{"models", "testdata/nope.cnf"}, "file (testdata/nope.cnf) not found"},
		{"bad grid", []string{"sudoku", "--box", "2", "12"}, "expected 16 cells, got 2"},
		{"step limit", []string{"--step-limit", "2", "sudoku"}, "step limit reached"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}
