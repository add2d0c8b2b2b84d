package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/phasedb/internal/lookup"
	"github.com/roach88/phasedb/internal/units"
)

// PropertyOptions holds flags shared by the property commands.
type PropertyOptions struct {
	*RootOptions
	selection
	Unit string
}

func newPropertyOptions(rootOpts *RootOptions) *PropertyOptions {
	return &PropertyOptions{RootOptions: rootOpts}
}

func (o *PropertyOptions) registerUnit(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Unit, "unit", "", "convert values to this unit (e.g. kg/m3, J/mol)")
}

// NewDensityCommand creates the density command.
func NewDensityCommand(rootOpts *RootOptions) *cobra.Command {
	opts := newPropertyOptions(rootOpts)

	cmd := &cobra.Command{
		Use:   "density <identifier> <state>",
		Short: "Show the density of a compound in a physical state",
		Long: `Show the density of a compound in a physical state (g/cm³ unless --unit).

Examples:
  phasedb density water liquid
  phasedb density water liquid --index 1 --unit kg/m3
  phasedb density H2O solid --all`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDensity(opts, args[0], args[1], cmd)
		},
	}

	opts.register(cmd)
	opts.registerUnit(cmd)

	return cmd
}

func runDensity(opts *PropertyOptions, identifier, stateLabel string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := opts.openCatalog(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	id, err := cat.Resolve(identifier)
	if err != nil {
		return formatter.Fail(err)
	}
	state, err := cat.StateID(stateLabel)
	if err != nil {
		return formatter.Fail(err)
	}
	conv, err := quantityIn(opts.Unit)
	if err != nil {
		return formatter.Fail(err)
	}

	ents, err := entries(opts.selection,
		func() ([]units.Quantity, error) { return cat.Densities(id, state) },
		func(i int) (units.Quantity, error) { return cat.Density(id, state, i) },
		conv,
	)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(PropertyResult[QuantityView]{
		Compound: id,
		Property: lookup.KindDensity,
		State:    strings.TrimSpace(stateLabel),
		Entries:  ents,
	})
}

// NewAntoineCommand creates the antoine command.
func NewAntoineCommand(rootOpts *RootOptions) *cobra.Command {
	opts := newPropertyOptions(rootOpts)

	cmd := &cobra.Command{
		Use:   "antoine <identifier>",
		Short: "Show Antoine vapor-pressure coefficients",
		Long: `Show the Antoine coefficients A, B, C of a compound and the temperature
range each set applies to.

Examples:
  phasedb antoine water --all
  phasedb antoine CO2`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAntoine(opts, args[0], cmd)
		},
	}

	opts.register(cmd)

	return cmd
}

func runAntoine(opts *PropertyOptions, identifier string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := opts.openCatalog(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	id, err := cat.Resolve(identifier)
	if err != nil {
		return formatter.Fail(err)
	}

	ents, err := entries(opts.selection,
		func() ([]lookup.Antoine, error) { return cat.AntoineSets(id) },
		func(i int) (lookup.Antoine, error) { return cat.AntoineAt(id, i) },
		func(a lookup.Antoine) (AntoineView, error) { return newAntoineView(a), nil },
	)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(PropertyResult[AntoineView]{
		Compound: id,
		Property: lookup.KindAntoine,
		Entries:  ents,
	})
}

// NewPointCommand creates the point command.
func NewPointCommand(rootOpts *RootOptions) *cobra.Command {
	opts := newPropertyOptions(rootOpts)

	cmd := &cobra.Command{
		Use:   "point <identifier> <kind>",
		Short: "Show a phase point such as the triple or critical point",
		Long: `Show a phase point of a compound. Point kinds are the tables with id,
temperature and pressure columns; list them with "phasedb tables".

Examples:
  phasedb point water triple_point
  phasedb point water critical_point --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPoint(opts, args[0], args[1], cmd)
		},
	}

	opts.register(cmd)

	return cmd
}

func runPoint(opts *PropertyOptions, identifier, kind string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := opts.openCatalog(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	id, err := cat.Resolve(identifier)
	if err != nil {
		return formatter.Fail(err)
	}

	ents, err := entries(opts.selection,
		func() ([]lookup.Point, error) { return cat.Points(id, kind) },
		func(i int) (lookup.Point, error) { return cat.Point(id, kind, i) },
		func(p lookup.Point) (PointView, error) { return newPointView(p), nil },
	)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(PropertyResult[PointView]{
		Compound: id,
		Property: kind,
		Entries:  ents,
	})
}

// NewEnthalpyCommand creates the enthalpy command.
func NewEnthalpyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := newPropertyOptions(rootOpts)

	cmd := &cobra.Command{
		Use:   "enthalpy <identifier> <fusion|sublimation|vaporization>",
		Short: "Show a transition enthalpy",
		Long: `Show the enthalpy of fusion, sublimation or vaporization of a compound
(kJ/mol unless --unit).

Examples:
  phasedb enthalpy water vaporization --all
  phasedb enthalpy water fusion --unit J/mol`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnthalpy(opts, args[0], args[1], cmd)
		},
	}

	opts.register(cmd)
	opts.registerUnit(cmd)

	return cmd
}

func runEnthalpy(opts *PropertyOptions, identifier, kindName string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := opts.openCatalog(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	id, err := cat.Resolve(identifier)
	if err != nil {
		return formatter.Fail(err)
	}
	kind, err := lookup.ParseEnthalpyKind(kindName)
	if err != nil {
		return formatter.Fail(err)
	}
	conv, err := quantityIn(opts.Unit)
	if err != nil {
		return formatter.Fail(err)
	}

	ents, err := entries(opts.selection,
		func() ([]units.Quantity, error) { return cat.Enthalpies(id, kind) },
		func(i int) (units.Quantity, error) { return cat.Enthalpy(id, kind, i) },
		conv,
	)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(PropertyResult[QuantityView]{
		Compound: id,
		Property: kind.Table(),
		Entries:  ents,
	})
}

// NewVolumeFusionCommand creates the vfusion command.
func NewVolumeFusionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := newPropertyOptions(rootOpts)
	var (
		tabulated bool
		indices   lookup.DensityIndices
	)

	cmd := &cobra.Command{
		Use:   "vfusion <identifier>",
		Short: "Show the molar volume change on fusion",
		Long: `Show the molar volume change on melting (cm³/mol unless --unit).

By default the value is derived from the solid and liquid densities and the
molar mass: ΔV = (1/ρ_liquid - 1/ρ_solid) × M. With --tabulated the stored
value is read instead.

Examples:
  phasedb vfusion water
  phasedb vfusion water --liquid-index 1
  phasedb vfusion water --tabulated`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fusion := lookup.FusionOptions{
				Index:          opts.Index,
				UseCalculation: !tabulated,
				DensityIndices: indices,
			}
			return runVolumeFusion(opts, args[0], fusion, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Index, "index", 0, "ordinal of the tabulated value")
	cmd.Flags().BoolVar(&tabulated, "tabulated", false, "read the stored value instead of calculating")
	cmd.Flags().IntVar(&indices.Solid, "solid-index", 0, "ordinal of the solid density")
	cmd.Flags().IntVar(&indices.Liquid, "liquid-index", 0, "ordinal of the liquid density")
	opts.registerUnit(cmd)

	return cmd
}

func runVolumeFusion(opts *PropertyOptions, identifier string, fusion lookup.FusionOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := opts.openCatalog(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	id, err := cat.Resolve(identifier)
	if err != nil {
		return formatter.Fail(err)
	}
	conv, err := quantityIn(opts.Unit)
	if err != nil {
		return formatter.Fail(err)
	}

	dv, err := cat.VolumeChangeFusion(id, fusion)
	if err != nil {
		return formatter.Fail(err)
	}
	view, err := conv(dv)
	if err != nil {
		return formatter.Fail(err)
	}

	method, index := "tabulated", fusion.Index
	if fusion.UseCalculation {
		method, index = "calculated", 0
		formatter.VerboseLog("densities: solid #%d, liquid #%d", fusion.DensityIndices.Solid, fusion.DensityIndices.Liquid)
	}

	result := PropertyResult[QuantityView]{
		Compound: id,
		Property: lookup.KindVolumeChangeFusion,
		Method:   method,
		Entries:  []Entry[QuantityView]{{Index: index, Value: view}},
	}
	return formatter.Success(result)
}
