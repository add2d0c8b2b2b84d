package lookup

import (
	"sort"

	"github.com/roach88/phasedb/internal/chem"
	"github.com/roach88/phasedb/internal/store"
	"github.com/roach88/phasedb/internal/units"
)

// Property kind labels used in errors.
const (
	KindDensity            = store.TableDensity
	KindAntoine            = store.TableAntoine
	KindVolumeChangeFusion = store.TableVMelt
)

// Antoine holds one set of vapor-pressure coefficients and the temperature
// range they apply to.
type Antoine struct {
	TMin units.Quantity
	TMax units.Quantity
	A    units.Quantity
	B    units.Quantity
	C    units.Quantity
}

// Point is a phase point.
type Point struct {
	Temperature units.Quantity
	Pressure    units.Quantity
}

// EnthalpyKind names a phase transition.
type EnthalpyKind string

const (
	Fusion       EnthalpyKind = "fusion"
	Sublimation  EnthalpyKind = "sublimation"
	Vaporization EnthalpyKind = "vaporization"
)

var enthalpyTables = map[EnthalpyKind]string{
	Fusion:       store.TableHMelt,
	Sublimation:  store.TableHSub,
	Vaporization: store.TableHVapBoil,
}

// EnthalpyKinds lists the supported transition names.
func EnthalpyKinds() []EnthalpyKind {
	return []EnthalpyKind{Fusion, Sublimation, Vaporization}
}

// Table returns the table holding enthalpies of this kind.
func (k EnthalpyKind) Table() string { return enthalpyTables[k] }

// ParseEnthalpyKind maps a transition name to its kind, failing with
// CodeInvalidPropertyKind for anything else.
func ParseEnthalpyKind(name string) (EnthalpyKind, error) {
	k := EnthalpyKind(normalize(name))
	if _, ok := enthalpyTables[k]; !ok {
		return "", invalidPropertyKind(name, enthalpyKindNames())
	}
	return k, nil
}

// Densities returns every density of a compound in a state, in g/cm³.
func (c *Catalog) Densities(id chem.CompoundID, state chem.StateID) ([]units.Quantity, error) {
	if _, err := c.requireCompound(id); err != nil {
		return nil, err
	}
	label, err := c.stateLabel(state)
	if err != nil {
		return nil, err
	}

	out := []units.Quantity{}
	for _, r := range c.snap.Density() {
		if r.ID == id && r.State == state {
			out = append(out, units.New(r.Value, units.GramPerCubicCentimeter))
		}
	}
	if len(out) == 0 {
		return nil, propertyNotFound(id, KindDensity, label)
	}
	return out, nil
}

// Density returns the density at ordinal index.
func (c *Catalog) Density(id chem.CompoundID, state chem.StateID, index int) (units.Quantity, error) {
	cands, err := c.Densities(id, state)
	if err != nil {
		return units.Quantity{}, err
	}
	return Select(KindDensity, cands, index)
}

// AntoineSets returns every Antoine coefficient set of a compound.
// Coefficients are dimensionless, range bounds in kelvin.
func (c *Catalog) AntoineSets(id chem.CompoundID) ([]Antoine, error) {
	if _, err := c.requireCompound(id); err != nil {
		return nil, err
	}

	out := []Antoine{}
	for _, r := range c.snap.Antoine() {
		if r.ID != id {
			continue
		}
		out = append(out, Antoine{
			TMin: units.New(r.TMin, units.Kelvin),
			TMax: units.New(r.TMax, units.Kelvin),
			A:    units.New(r.A, units.One),
			B:    units.New(r.B, units.One),
			C:    units.New(r.C, units.One),
		})
	}
	if len(out) == 0 {
		return nil, propertyNotFound(id, KindAntoine, "")
	}
	return out, nil
}

// AntoineAt returns the Antoine coefficient set at ordinal index.
func (c *Catalog) AntoineAt(id chem.CompoundID, index int) (Antoine, error) {
	cands, err := c.AntoineSets(id)
	if err != nil {
		return Antoine{}, err
	}
	return Select(KindAntoine, cands, index)
}

// PointKinds returns the available point kinds, e.g. "triple_point".
func (c *Catalog) PointKinds() []string {
	return c.snap.PointKinds()
}

// Points returns every point of the given kind for a compound, in K and Pa.
// An unknown kind fails with CodeInvalidPropertyKind.
func (c *Catalog) Points(id chem.CompoundID, kind string) ([]Point, error) {
	rows, ok := c.snap.Points(kind)
	if !ok {
		return nil, invalidPropertyKind(kind, c.snap.PointKinds())
	}
	if _, err := c.requireCompound(id); err != nil {
		return nil, err
	}

	out := []Point{}
	for _, r := range rows {
		if r.ID != id {
			continue
		}
		out = append(out, Point{
			Temperature: units.New(r.Temperature, units.Kelvin),
			Pressure:    units.New(r.Pressure, units.Pascal),
		})
	}
	if len(out) == 0 {
		return nil, propertyNotFound(id, kind, "")
	}
	return out, nil
}

// Point returns the point of the given kind at ordinal index.
func (c *Catalog) Point(id chem.CompoundID, kind string, index int) (Point, error) {
	cands, err := c.Points(id, kind)
	if err != nil {
		return Point{}, err
	}
	return Select(kind, cands, index)
}

// Enthalpies returns every transition enthalpy of a kind, in kJ/mol.
func (c *Catalog) Enthalpies(id chem.CompoundID, kind EnthalpyKind) ([]units.Quantity, error) {
	table := kind.Table()
	if table == "" {
		return nil, invalidPropertyKind(string(kind), enthalpyKindNames())
	}
	if _, err := c.requireCompound(id); err != nil {
		return nil, err
	}

	out := []units.Quantity{}
	for _, r := range c.snap.Enthalpies(table) {
		if r.ID == id {
			out = append(out, units.New(r.Value, units.KilojoulePerMole))
		}
	}
	if len(out) == 0 {
		return nil, propertyNotFound(id, table, "")
	}
	return out, nil
}

// Enthalpy returns the transition enthalpy at ordinal index.
func (c *Catalog) Enthalpy(id chem.CompoundID, kind EnthalpyKind, index int) (units.Quantity, error) {
	cands, err := c.Enthalpies(id, kind)
	if err != nil {
		return units.Quantity{}, err
	}
	return Select(kind.Table(), cands, index)
}

// TabulatedVolumeChanges returns the tabulated molar volume changes on
// fusion of a compound, in cm³/mol.
func (c *Catalog) TabulatedVolumeChanges(id chem.CompoundID) ([]units.Quantity, error) {
	if _, err := c.requireCompound(id); err != nil {
		return nil, err
	}

	out := []units.Quantity{}
	for _, r := range c.snap.VolumeChangesFusion() {
		if r.ID == id {
			out = append(out, units.New(r.Value, units.CubicCentimeterPerMole))
		}
	}
	if len(out) == 0 {
		return nil, propertyNotFound(id, KindVolumeChangeFusion, "")
	}
	return out, nil
}

func enthalpyKindNames() []string {
	out := make([]string, 0, len(enthalpyTables))
	for k := range enthalpyTables {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}
