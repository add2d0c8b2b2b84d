package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/phasedb/internal/units"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <identifier>",
		Short: "Show the identification record of a compound",
		Long: `Show CAS number, formula, molar mass and every recorded name of a compound.

Examples:
  phasedb info "carbon dioxide"
  phasedb info 124-38-9 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInfo(opts *RootOptions, identifier string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := opts.openCatalog(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	id, err := cat.Resolve(identifier)
	if err != nil {
		return formatter.Fail(err)
	}
	comp, err := cat.Identification(id)
	if err != nil {
		return formatter.Fail(err)
	}
	rows, err := cat.Names(id)
	if err != nil {
		return formatter.Fail(err)
	}

	names := []string{}
	for _, n := range rows {
		names = append(names, n.Spellings()...)
	}

	return formatter.Success(InfoResult{
		ID:        comp.ID,
		CAS:       comp.CAS,
		Formula:   comp.Formula,
		MolarMass: newQuantityView(units.New(comp.MolarMass, units.GramPerMole)),
		NameRef:   comp.NameRef,
		Names:     names,
	})
}
