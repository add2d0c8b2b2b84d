package lookup

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/phasedb/internal/chem"
	"github.com/roach88/phasedb/internal/units"
)

// State labels the fusion calculation reads densities for.
const (
	StateSolid  = "solid"
	StateLiquid = "liquid"
)

// ErrNonPositiveDensity is returned when a density fed to the fusion
// calculation is zero, negative or not finite.
var ErrNonPositiveDensity = errors.New("density must be positive and finite")

// DensityIndices selects which solid and liquid density rows feed the
// fusion volume calculation.
type DensityIndices struct {
	Solid  int
	Liquid int
}

// FusionOptions configures VolumeChangeFusion.
type FusionOptions struct {
	// Index selects the tabulated value when UseCalculation is false.
	Index int

	// UseCalculation derives the value from densities and molar mass
	// instead of reading the v_melt table.
	UseCalculation bool

	DensityIndices DensityIndices
}

// DefaultFusionOptions calculates from the first solid and liquid densities.
func DefaultFusionOptions() FusionOptions {
	return FusionOptions{UseCalculation: true}
}

// VolumeChangeFusion returns the molar volume change on melting in cm³/mol,
// either derived from density data or read from the tabulated values.
//
// A *units.MismatchError from the calculation means the operands were
// tagged with the wrong units; it is a defect, not a data problem.
func (c *Catalog) VolumeChangeFusion(id chem.CompoundID, opts FusionOptions) (units.Quantity, error) {
	if !opts.UseCalculation {
		return c.tabulatedVolumeChange(id, opts.Index)
	}

	solid, err := c.StateID(StateSolid)
	if err != nil {
		return units.Quantity{}, err
	}
	liquid, err := c.StateID(StateLiquid)
	if err != nil {
		return units.Quantity{}, err
	}

	rhoSolid, err := c.Density(id, solid, opts.DensityIndices.Solid)
	if err != nil {
		return units.Quantity{}, err
	}
	rhoLiquid, err := c.Density(id, liquid, opts.DensityIndices.Liquid)
	if err != nil {
		return units.Quantity{}, err
	}
	comp, err := c.requireCompound(id)
	if err != nil {
		return units.Quantity{}, err
	}

	return CalculateVolumeChangeFusion(rhoLiquid, rhoSolid, units.New(comp.MolarMass, units.GramPerMole))
}

func (c *Catalog) tabulatedVolumeChange(id chem.CompoundID, index int) (units.Quantity, error) {
	cands, err := c.TabulatedVolumeChanges(id)
	if err != nil {
		var le *Error
		if errors.As(err, &le) && le.Code == CodePropertyNotFound {
			le.Message += "; retry with calculation enabled"
		}
		return units.Quantity{}, err
	}
	return Select(KindVolumeChangeFusion, cands, index)
}

// CalculateVolumeChangeFusion computes ΔV = (1/ρ_liquid − 1/ρ_solid) × M.
// Densities must be densities and the molar mass a molar mass, whatever
// their units; the result is in cm³/mol.
func CalculateVolumeChangeFusion(liquid, solid, molarMass units.Quantity) (units.Quantity, error) {
	rhoL, err := units.Require("liquid density", liquid, units.GramPerCubicCentimeter)
	if err != nil {
		return units.Quantity{}, err
	}
	rhoS, err := units.Require("solid density", solid, units.GramPerCubicCentimeter)
	if err != nil {
		return units.Quantity{}, err
	}
	m, err := units.Require("molar mass", molarMass, units.GramPerMole)
	if err != nil {
		return units.Quantity{}, err
	}
	for _, rho := range []struct {
		name string
		q    units.Quantity
	}{{"liquid density", rhoL}, {"solid density", rhoS}} {
		if !(rho.q.Magnitude > 0) || math.IsInf(rho.q.Magnitude, 0) {
			return units.Quantity{}, fmt.Errorf("%s %s: %w", rho.name, rho.q, ErrNonPositiveDensity)
		}
	}

	specific, err := rhoL.Inverse().Sub(rhoS.Inverse())
	if err != nil {
		return units.Quantity{}, fmt.Errorf("specific volume change: %w", err)
	}
	dv, err := specific.Mul(m).To(units.CubicCentimeterPerMole)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("molar volume change: %w", err)
	}
	return dv, nil
}
