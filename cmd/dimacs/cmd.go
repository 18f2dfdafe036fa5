package dimacs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gavrog/branchcut/internal/cli"
	"github.com/gavrog/branchcut/internal/problems/cnf"
	"github.com/gavrog/branchcut/pkg/branchcut/engine"
)

func NewModelsCommand(opts *cli.RootOptions) *cobra.Command {
	var satCut, printModels bool

	cmd := &cobra.Command{
		Use:   "models <path>...",
		Short: "Counts the models of sat problems given in dimacs format",
		Long: `Counts the models of sat problems given in dimacs format. For instance:
c
c this is a comment
c header: p cnf <number of variable> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 or not 2)

Files are searched concurrently and reported in the order given.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("file (%s) not found", path)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.Context(cmd.Context())
			defer cancel()

			reports, err := countAll(ctx, opts, args, satCut, printModels)
			out := cmd.OutOrStdout()
			for _, r := range reports {
				if r == nil {
					continue
				}
				r.write(out)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&satCut, "sat-cut", false, "prune subtrees the SAT solver proves unsatisfiable")
	cmd.Flags().BoolVar(&printModels, "print", false, "print every model after the count")

	return cmd
}

type report struct {
	path   string
	count  int
	models [][]bool
	// truncated is set when the limit ended the search before it was
	// exhausted.
	truncated bool
}

func (r *report) write(w io.Writer) {
	if r.truncated {
		fmt.Fprintf(w, "%s: at least %d models\n", r.path, r.count)
	} else {
		fmt.Fprintf(w, "%s: %d models\n", r.path, r.count)
	}
	for _, m := range r.models {
		fmt.Fprintln(w, cnf.FormatModel(m))
	}
}

// countAll enumerates the models of every file in its own goroutine.
// Reports are indexed like paths; the entry of a failed file is nil.
func countAll(ctx context.Context, opts *cli.RootOptions, paths []string, satCut, printModels bool) ([]*report, error) {
	reports := make([]*report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			r, err := count(ctx, opts, path, satCut, printModels)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	return reports, g.Wait()
}

func count(ctx context.Context, opts *cli.RootOptions, path string, satCut, printModels bool) (*report, error) {
	// open dimacs file
	dimacsFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	defer dimacsFile.Close()

	dimacs, err := NewDimacs(dimacsFile)
	if err != nil {
		return nil, fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}

	var formulaOpts []cnf.Option
	if satCut {
		formulaOpts = append(formulaOpts, cnf.WithSATCut())
	}
	formula, err := cnf.New(dimacs.NumVariables(), dimacs.Clauses(), formulaOpts...)
	if err != nil {
		return nil, fmt.Errorf("error building formula (%s): %w", path, err)
	}

	e, err := engine.New[cnf.Literal, []bool](formula, opts.EngineOptions()...)
	if err != nil {
		return nil, err
	}
	opts.Log.WithFields(logrus.Fields{
		"path":      path,
		"run":       e.ID(),
		"variables": dimacs.NumVariables(),
		"clauses":   len(dimacs.Clauses()),
	}).Debug("searching for models")

	r := &report{path: path}
	r.count, err = cli.Enumerate(ctx, e, opts.Config.Search.Limit, func(model []bool) error {
		if printModels {
			r.models = append(r.models, model)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.truncated = !e.Done()
	stats := e.Stats()
	opts.Log.WithFields(logrus.Fields{
		"path":      path,
		"models":    r.count,
		"decisions": stats.Decisions,
		"steps":     stats.Steps,
		"truncated": r.truncated,
	}).Info("search finished")
	return r, nil
}
