package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/phasedb/internal/chem"
	"github.com/roach88/phasedb/internal/lookup"
	"github.com/roach88/phasedb/internal/units"
)

// QuantityView is a magnitude with its unit symbol.
type QuantityView struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func newQuantityView(q units.Quantity) QuantityView {
	return QuantityView{Value: q.Magnitude, Unit: q.Unit.Symbol}
}

func (v QuantityView) String() string {
	s := formatFloat(v.Value)
	if v.Unit == "" {
		return s
	}
	return s + " " + v.Unit
}

// AntoineView is one Antoine coefficient set.
type AntoineView struct {
	A    float64      `json:"a"`
	B    float64      `json:"b"`
	C    float64      `json:"c"`
	TMin QuantityView `json:"t_min"`
	TMax QuantityView `json:"t_max"`
}

func newAntoineView(a lookup.Antoine) AntoineView {
	return AntoineView{
		A:    a.A.Magnitude,
		B:    a.B.Magnitude,
		C:    a.C.Magnitude,
		TMin: newQuantityView(a.TMin),
		TMax: newQuantityView(a.TMax),
	}
}

func (v AntoineView) String() string {
	return fmt.Sprintf("A=%s B=%s C=%s valid %s to %s",
		formatFloat(v.A), formatFloat(v.B), formatFloat(v.C), v.TMin, v.TMax)
}

// PointView is a phase point.
type PointView struct {
	Temperature QuantityView `json:"temperature"`
	Pressure    QuantityView `json:"pressure"`
}

func newPointView(p lookup.Point) PointView {
	return PointView{
		Temperature: newQuantityView(p.Temperature),
		Pressure:    newQuantityView(p.Pressure),
	}
}

func (v PointView) String() string {
	return fmt.Sprintf("T=%s p=%s", v.Temperature, v.Pressure)
}

// Entry is one selected value and its ordinal index.
type Entry[T fmt.Stringer] struct {
	Index int `json:"index"`
	Value T   `json:"value"`
}

// PropertyResult is the output of the property commands.
type PropertyResult[T fmt.Stringer] struct {
	Compound chem.CompoundID `json:"compound"`
	Property string          `json:"property"`
	State    string          `json:"state,omitempty"`
	Method   string          `json:"method,omitempty"`
	Entries  []Entry[T]      `json:"entries"`
}

func (r PropertyResult[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "compound %d %s", r.Compound, r.Property)
	if r.State != "" {
		fmt.Fprintf(&b, " (%s)", r.State)
	}
	if r.Method != "" {
		fmt.Fprintf(&b, " [%s]", r.Method)
	}
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "\n  [%d] %s", e.Index, e.Value)
	}
	return b.String()
}

// CandidateView is one identifier match.
type CandidateView struct {
	ID    chem.CompoundID `json:"id"`
	Field string          `json:"field"`
	Row   int             `json:"row"`
}

// ResolveResult is the output of the resolve command.
type ResolveResult struct {
	Query      string          `json:"query"`
	ID         chem.CompoundID `json:"id"`
	Candidates []CandidateView `json:"candidates,omitempty"`
}

func (r ResolveResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: compound %d", r.Query, r.ID)
	for _, c := range r.Candidates {
		fmt.Fprintf(&b, "\n  %d %s row %d", c.ID, c.Field, c.Row)
	}
	return b.String()
}

// InfoResult is the output of the info command.
type InfoResult struct {
	ID        chem.CompoundID `json:"id"`
	CAS       string          `json:"cas"`
	Formula   string          `json:"formula"`
	MolarMass QuantityView    `json:"molar_mass"`
	NameRef   string          `json:"name_ref"`
	Names     []string        `json:"names"`
}

func (r InfoResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "id:         %d\n", r.ID)
	fmt.Fprintf(&b, "cas:        %s\n", r.CAS)
	fmt.Fprintf(&b, "formula:    %s\n", r.Formula)
	fmt.Fprintf(&b, "molar mass: %s\n", r.MolarMass)
	fmt.Fprintf(&b, "name ref:   %s\n", r.NameRef)
	fmt.Fprintf(&b, "names:      %s", strings.Join(r.Names, ", "))
	return b.String()
}

// TableView is a loaded table and its row count.
type TableView struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// TablesResult is the output of the tables command.
type TablesResult struct {
	Version    string      `json:"version"`
	Tables     []TableView `json:"tables"`
	PointKinds []string    `json:"point_kinds"`
}

// String omits the version, which changes on every load.
func (r TablesResult) String() string {
	var b strings.Builder
	for _, t := range r.Tables {
		fmt.Fprintf(&b, "%-16s %d\n", t.Name, t.Rows)
	}
	fmt.Fprintf(&b, "point kinds: %s", strings.Join(r.PointKinds, ", "))
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
