// Package chem defines the immutable records held by the property store.
//
// Every dependent record references a Compound through CompoundID; density
// rows additionally reference a PhysicalState through StateID. Raw magnitudes
// are stored in the canonical unit of their table (see the field comments);
// unit tagging happens in the lookup layer.
package chem

// CompoundID is the canonical key joining every property table.
type CompoundID int64

// StateID identifies a physical state (solid, liquid, gas, ...).
type StateID int64

// Compound is the primary identity record of a substance.
type Compound struct {
	ID        CompoundID
	CAS       string
	Formula   string
	MolarMass float64 // g/mol
	NameRef   string
}

// Name holds the spellings under which a compound may be queried.
// Alternate names are empty when absent.
type Name struct {
	ID       CompoundID
	Name     string
	AltName1 string
	AltName2 string
	AltName3 string
}

// Spellings returns the non-empty names in column order.
func (n Name) Spellings() []string {
	out := make([]string, 0, 4)
	for _, s := range []string{n.Name, n.AltName1, n.AltName2, n.AltName3} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PhysicalState is one entry of the state enumeration.
type PhysicalState struct {
	ID    StateID
	State string
}

// DensityRow is one literature density value.
type DensityRow struct {
	ID    CompoundID
	State StateID
	Value float64 // g/cm³
}

// AntoineRow holds vapor-pressure correlation coefficients valid between
// TMin and TMax.
type AntoineRow struct {
	ID   CompoundID
	TMin float64 // K
	TMax float64 // K
	A    float64
	B    float64
	C    float64
}

// PointRow is a (temperature, pressure) phase point such as a triple or
// critical point.
type PointRow struct {
	ID          CompoundID
	Temperature float64 // K
	Pressure    float64 // Pa
}

// EnthalpyRow is one transition enthalpy value.
type EnthalpyRow struct {
	ID    CompoundID
	Value float64 // kJ/mol
}

// VolumeChangeFusionRow is a tabulated molar volume change on melting.
type VolumeChangeFusionRow struct {
	ID    CompoundID
	Value float64 // cm³/mol
}
