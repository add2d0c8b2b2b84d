package units

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Dimension holds the exponents of the SI base dimensions a unit spans.
type Dimension struct {
	Mass        int8
	Length      int8
	Time        int8
	Temperature int8
	Amount      int8
}

// Dimensionless is the zero dimension.
var Dimensionless = Dimension{}

func (d Dimension) add(o Dimension) Dimension {
	return Dimension{
		Mass:        d.Mass + o.Mass,
		Length:      d.Length + o.Length,
		Time:        d.Time + o.Time,
		Temperature: d.Temperature + o.Temperature,
		Amount:      d.Amount + o.Amount,
	}
}

func (d Dimension) neg() Dimension {
	return Dimension{
		Mass:        -d.Mass,
		Length:      -d.Length,
		Time:        -d.Time,
		Temperature: -d.Temperature,
		Amount:      -d.Amount,
	}
}

// String renders the dimension as a product of base symbols, e.g. "M L^-3".
func (d Dimension) String() string {
	if d == Dimensionless {
		return "1"
	}
	parts := make([]string, 0, 5)
	for _, p := range []struct {
		sym string
		exp int8
	}{
		{"M", d.Mass},
		{"L", d.Length},
		{"T", d.Time},
		{"Θ", d.Temperature},
		{"N", d.Amount},
	} {
		switch p.exp {
		case 0:
		case 1:
			parts = append(parts, p.sym)
		default:
			parts = append(parts, fmt.Sprintf("%s^%d", p.sym, p.exp))
		}
	}
	return strings.Join(parts, " ")
}

// Unit is a named unit of measure.
//
// Scale converts a magnitude expressed in this unit to SI base units:
// si = magnitude * Scale.
type Unit struct {
	Symbol string
	Dim    Dimension
	Scale  float64
}

func (u Unit) String() string { return u.Symbol }

// Compatible reports whether u and o measure the same dimension.
func (u Unit) Compatible(o Unit) bool { return u.Dim == o.Dim }

// Catalogue of units used by the property tables.
var (
	One = Unit{Symbol: "", Dim: Dimensionless, Scale: 1}

	Gram     = Unit{Symbol: "g", Dim: Dimension{Mass: 1}, Scale: 1e-3}
	Kilogram = Unit{Symbol: "kg", Dim: Dimension{Mass: 1}, Scale: 1}

	Kelvin = Unit{Symbol: "K", Dim: Dimension{Temperature: 1}, Scale: 1}

	Pascal     = Unit{Symbol: "Pa", Dim: Dimension{Mass: 1, Length: -1, Time: -2}, Scale: 1}
	Kilopascal = Unit{Symbol: "kPa", Dim: Dimension{Mass: 1, Length: -1, Time: -2}, Scale: 1e3}
	Bar        = Unit{Symbol: "bar", Dim: Dimension{Mass: 1, Length: -1, Time: -2}, Scale: 1e5}

	GramPerCubicCentimeter = Unit{Symbol: "g/cm³", Dim: Dimension{Mass: 1, Length: -3}, Scale: 1e3}
	KilogramPerCubicMeter  = Unit{Symbol: "kg/m³", Dim: Dimension{Mass: 1, Length: -3}, Scale: 1}

	GramPerMole = Unit{Symbol: "g/mol", Dim: Dimension{Mass: 1, Amount: -1}, Scale: 1e-3}

	CubicCentimeterPerMole = Unit{Symbol: "cm³/mol", Dim: Dimension{Length: 3, Amount: -1}, Scale: 1e-6}
	CubicMeterPerMole      = Unit{Symbol: "m³/mol", Dim: Dimension{Length: 3, Amount: -1}, Scale: 1}

	JoulePerMole     = Unit{Symbol: "J/mol", Dim: Dimension{Mass: 1, Length: 2, Time: -2, Amount: -1}, Scale: 1}
	KilojoulePerMole = Unit{Symbol: "kJ/mol", Dim: Dimension{Mass: 1, Length: 2, Time: -2, Amount: -1}, Scale: 1e3}
)

// aliases maps accepted spellings to catalogue units.
var aliases = map[string]Unit{
	"1":             One,
	"dimensionless": One,
	"g":             Gram,
	"kg":            Kilogram,
	"K":             Kelvin,
	"kelvin":        Kelvin,
	"Pa":            Pascal,
	"pascal":        Pascal,
	"kPa":           Kilopascal,
	"bar":           Bar,
	"g/cm³":         GramPerCubicCentimeter,
	"g/cm3":         GramPerCubicCentimeter,
	"g/cm**3":       GramPerCubicCentimeter,
	"kg/m³":         KilogramPerCubicMeter,
	"kg/m3":         KilogramPerCubicMeter,
	"g/mol":         GramPerMole,
	"cm³/mol":       CubicCentimeterPerMole,
	"cm3/mol":       CubicCentimeterPerMole,
	"m³/mol":        CubicMeterPerMole,
	"m3/mol":        CubicMeterPerMole,
	"J/mol":         JoulePerMole,
	"kJ/mol":        KilojoulePerMole,
}

// ErrUnknownUnit is returned by Parse for unrecognized symbols.
var ErrUnknownUnit = errors.New("unknown unit")

// Parse looks up a unit by symbol or accepted alias.
func Parse(symbol string) (Unit, error) {
	if u, ok := aliases[strings.TrimSpace(symbol)]; ok {
		return u, nil
	}
	return Unit{}, fmt.Errorf("%w %q", ErrUnknownUnit, symbol)
}

// Symbols lists the accepted unit spellings in sorted order.
func Symbols() []string {
	out := make([]string, 0, len(aliases))
	for s := range aliases {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
