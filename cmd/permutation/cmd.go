package permutation

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gavrog/branchcut/internal/cli"
	"github.com/gavrog/branchcut/internal/problems/permutation"
	"github.com/gavrog/branchcut/pkg/branchcut/engine"
)

func NewPermutationCommand(opts *cli.RootOptions) *cobra.Command {
	var forbid []string

	cmd := &cobra.Command{
		Use:   "permutation <n>",
		Short: "Lists the permutations of 1..n",
		Long: `Lists the permutations of 1..n in lexicographic order.

Each --forbid e:p excludes the permutations placing element e at
position p, both counted from 1. Forbidding i:i for every i lists
the derangements of n.`,
		Example: `  branchcut permutation 3 --forbid 1:1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid size (%s): %w", args[0], err)
			}
			pairs := make([]permutation.Pair, 0, len(forbid))
			for _, f := range forbid {
				p, err := permutation.ParsePair(f)
				if err != nil {
					return err
				}
				pairs = append(pairs, p)
			}
			return list(cmd, opts, n, pairs)
		},
	}
	cmd.Flags().StringArrayVar(&forbid, "forbid", nil, "forbidden element:position pair, may be repeated")

	return cmd
}

func list(cmd *cobra.Command, opts *cli.RootOptions, n int, forbidden []permutation.Pair) error {
	problem, err := permutation.New(n, forbidden...)
	if err != nil {
		return err
	}
	e, err := engine.New[permutation.Pair, []int](problem, opts.EngineOptions()...)
	if err != nil {
		return err
	}

	ctx, cancel := opts.Context(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	found, err := cli.Enumerate(ctx, e, opts.Config.Search.Limit, func(perm []int) error {
		_, err := fmt.Fprintln(out, permutation.Format(perm))
		return err
	})
	fmt.Fprintf(out, "%d permutations\n", found)
	return err
}
