package units

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrDimensionalMismatch is matched by every *MismatchError.
var ErrDimensionalMismatch = errors.New("dimensional mismatch")

// MismatchError reports an operation between quantities whose dimensions
// disagree. It signals a programming or data-configuration defect.
type MismatchError struct {
	Op   string
	From Unit
	To   Unit
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: cannot relate %q [%s] to %q [%s]: %v",
		e.Op, e.From.Symbol, e.From.Dim, e.To.Symbol, e.To.Dim, ErrDimensionalMismatch)
}

// Is makes errors.Is(err, ErrDimensionalMismatch) hold.
func (e *MismatchError) Is(target error) bool { return target == ErrDimensionalMismatch }

// IsDimensionalMismatch reports whether err is or wraps a *MismatchError.
func IsDimensionalMismatch(err error) bool {
	var me *MismatchError
	return errors.As(err, &me)
}

// Quantity is a magnitude tagged with its unit.
type Quantity struct {
	Magnitude float64
	Unit      Unit
}

// New tags a magnitude with a unit.
func New(magnitude float64, u Unit) Quantity {
	return Quantity{Magnitude: magnitude, Unit: u}
}

// SI returns the magnitude expressed in SI base units.
func (q Quantity) SI() float64 { return q.Magnitude * q.Unit.Scale }

// To converts q to u. Conversion between different dimensions fails.
func (q Quantity) To(u Unit) (Quantity, error) {
	if !q.Unit.Compatible(u) {
		return Quantity{}, &MismatchError{Op: "convert", From: q.Unit, To: u}
	}
	if q.Unit == u {
		return q, nil
	}
	return Quantity{Magnitude: q.SI() / u.Scale, Unit: u}, nil
}

// Require converts q to the expected unit, labelling any mismatch with op.
func Require(op string, q Quantity, expected Unit) (Quantity, error) {
	out, err := q.To(expected)
	if err != nil {
		return Quantity{}, &MismatchError{Op: op, From: q.Unit, To: expected}
	}
	return out, nil
}

// Add returns q + o in q's unit.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	oc, err := o.To(q.Unit)
	if err != nil {
		return Quantity{}, &MismatchError{Op: "add", From: o.Unit, To: q.Unit}
	}
	return Quantity{Magnitude: q.Magnitude + oc.Magnitude, Unit: q.Unit}, nil
}

// Sub returns q - o in q's unit.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	oc, err := o.To(q.Unit)
	if err != nil {
		return Quantity{}, &MismatchError{Op: "subtract", From: o.Unit, To: q.Unit}
	}
	return Quantity{Magnitude: q.Magnitude - oc.Magnitude, Unit: q.Unit}, nil
}

// Mul returns q × o with the product unit.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{
		Magnitude: q.Magnitude * o.Magnitude,
		Unit: Unit{
			Symbol: compose(q.Unit.Symbol, "·", o.Unit.Symbol),
			Dim:    q.Unit.Dim.add(o.Unit.Dim),
			Scale:  q.Unit.Scale * o.Unit.Scale,
		},
	}
}

// Div returns q ÷ o with the quotient unit.
func (q Quantity) Div(o Quantity) Quantity {
	return q.Mul(o.Inverse())
}

// Inverse returns 1/q.
func (q Quantity) Inverse() Quantity {
	sym := ""
	if q.Unit.Symbol != "" {
		sym = "1/(" + q.Unit.Symbol + ")"
	}
	return Quantity{
		Magnitude: 1 / q.Magnitude,
		Unit: Unit{
			Symbol: sym,
			Dim:    q.Unit.Dim.neg(),
			Scale:  1 / q.Unit.Scale,
		},
	}
}

// String formats the quantity as "<magnitude> <unit>".
func (q Quantity) String() string {
	m := strconv.FormatFloat(q.Magnitude, 'g', -1, 64)
	if q.Unit.Symbol == "" {
		return m
	}
	return m + " " + q.Unit.Symbol
}

func compose(a, op, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + op + b
}
