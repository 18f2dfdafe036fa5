package sudoku

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gavrog/branchcut/internal/cli"
	"github.com/gavrog/branchcut/internal/problems/sudoku"
	"github.com/gavrog/branchcut/pkg/branchcut/engine"
)

func NewSudokuCommand(opts *cli.RootOptions) *cobra.Command {
	var box int

	cmd := &cobra.Command{
		Use:   "sudoku [puzzle]",
		Short: "Returns solved sudoku boards",
		Long: `Returns the completions of a sudoku board.

The puzzle lists the cells row by row, '.' or '0' marking a blank
cell; whitespace is ignored. Without a puzzle the empty board is
completed, and unless --limit is given only the first board is shown.`,
		Example: `  branchcut sudoku --box 2 '.2.1 .4.. 3... ....'`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			puzzle := ""
			if len(args) == 1 {
				puzzle = args[0]
			}
			return solve(cmd, opts, box, puzzle)
		},
	}
	cmd.Flags().IntVar(&box, "box", 3, "side of a box, the board has box² rows")

	return cmd
}

func solve(cmd *cobra.Command, opts *cli.RootOptions, box int, puzzle string) error {
	limit := opts.Config.Search.Limit
	var givens []int
	if strings.TrimSpace(puzzle) == "" {
		if limit == 0 {
			limit = 1
		}
	} else {
		var err error
		if givens, err = sudoku.Parse(box, puzzle); err != nil {
			return err
		}
	}

	problem, err := sudoku.New(box, givens)
	if err != nil {
		return err
	}
	e, err := engine.New[sudoku.Placement, []int](problem, opts.EngineOptions()...)
	if err != nil {
		return err
	}

	ctx, cancel := opts.Context(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	found, err := cli.Enumerate(ctx, e, limit, func(cells []int) error {
		sep := ""
		if e.Stats().Yielded > 1 {
			sep = "\n"
		}
		_, err := fmt.Fprint(out, sep+sudoku.Format(box, cells))
		return err
	})
	if err != nil {
		return err
	}
	if found == 0 {
		fmt.Fprintln(out, "no solution found")
	}
	return nil
}
