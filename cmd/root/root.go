package root

import (
	"github.com/spf13/cobra"

	"github.com/gavrog/branchcut/cmd/dimacs"
	"github.com/gavrog/branchcut/cmd/permutation"
	"github.com/gavrog/branchcut/cmd/sudoku"
	"github.com/gavrog/branchcut/internal/cli"
)

func NewRootCmd() *cobra.Command {
	opts := &cli.RootOptions{}

	rootCmd := &cobra.Command{
		Use:   "branchcut",
		Short: "Branchcut enumerates the solutions of combinatorial problems",
		Long: `Branchcut enumerates every solution of a combinatorial problem with a
chronological backtracking search, one solution at a time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Resolve(cmd)
		},
	}
	opts.AddFlags(rootCmd)

	// add sub-commands
	rootCmd.AddCommand(dimacs.NewModelsCommand(opts))
	rootCmd.AddCommand(permutation.NewPermutationCommand(opts))
	rootCmd.AddCommand(sudoku.NewSudokuCommand(opts))

	return rootCmd
}
