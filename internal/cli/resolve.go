package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/phasedb/internal/lookup"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	All bool
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve <identifier>",
		Short: "Resolve an identifier to a compound id",
		Long: `Resolve a name, alternate name, CAS number or formula to a compound id.

A CAS number or formula match takes priority over a name match. With --all
every matching row is listed with the column it matched.

Examples:
  phasedb resolve water
  phasedb resolve 7732-18-5
  phasedb resolve NH3 --all`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "list every candidate match")

	return cmd
}

func runResolve(opts *ResolveOptions, identifier string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := opts.openCatalog(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	id, err := cat.Resolve(identifier)
	if err != nil {
		return formatter.Fail(err)
	}

	result := ResolveResult{Query: identifier, ID: id}
	if opts.All {
		cands := cat.Candidates(identifier)
		result.Candidates = candidateViews(cands)
		formatter.VerboseLog("%d candidate(s), %d distinct compound(s)", len(cands), len(lookup.DistinctIDs(cands)))
	}
	return formatter.Success(result)
}

func candidateViews(cands []lookup.Candidate) []CandidateView {
	out := make([]CandidateView, 0, len(cands))
	for _, c := range cands {
		out = append(out, CandidateView{ID: c.ID, Field: string(c.Field), Row: c.Row})
	}
	return out
}
