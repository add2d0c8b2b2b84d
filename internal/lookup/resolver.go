package lookup

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/phasedb/internal/chem"
)

// MatchField names the column an identifier matched.
type MatchField string

const (
	FieldCAS      MatchField = "cas"
	FieldFormula  MatchField = "formula"
	FieldName     MatchField = "name"
	FieldAltName1 MatchField = "alt_name1"
	FieldAltName2 MatchField = "alt_name2"
	FieldAltName3 MatchField = "alt_name3"
)

// Structural reports whether the field is a CAS number or formula.
func (f MatchField) Structural() bool {
	return f == FieldCAS || f == FieldFormula
}

// Candidate is one row matching an identifier.
type Candidate struct {
	ID    chem.CompoundID
	Field MatchField
	// Row is the position of the matching row in its table.
	Row int
}

// Candidates returns every row matching query: compound-table matches on
// CAS or formula first, then name-table matches, each in table order. A row
// contributes at most one candidate, tagged with its first matching column.
func (c *Catalog) Candidates(query string) []Candidate {
	q := normalize(query)
	if q == "" {
		return []Candidate{}
	}
	out := c.structuralMatches(q)
	return append(out, c.nameMatches(q)...)
}

// structuralMatches is the compound pass.
func (c *Catalog) structuralMatches(q string) []Candidate {
	out := []Candidate{}
	for i, comp := range c.snap.Compounds() {
		switch q {
		case normalize(comp.CAS):
			out = append(out, Candidate{ID: comp.ID, Field: FieldCAS, Row: i})
		case normalize(comp.Formula):
			out = append(out, Candidate{ID: comp.ID, Field: FieldFormula, Row: i})
		}
	}
	return out
}

// nameMatches is the name pass.
func (c *Catalog) nameMatches(q string) []Candidate {
	out := []Candidate{}
	for i, n := range c.snap.Names() {
		for _, f := range []struct {
			field MatchField
			value string
		}{
			{FieldName, n.Name},
			{FieldAltName1, n.AltName1},
			{FieldAltName2, n.AltName2},
			{FieldAltName3, n.AltName3},
		} {
			if normalize(f.value) == q {
				out = append(out, Candidate{ID: n.ID, Field: f.field, Row: i})
				break
			}
		}
	}
	return out
}

// PreferStructural is the resolution tie-break: the first CAS or formula
// match wins; without one, the first name match wins. Formula and CAS are
// structurally unambiguous, free-text names are not. The result is a best
// guess when candidates disagree.
func PreferStructural(candidates []Candidate) (Candidate, bool) {
	for _, cand := range candidates {
		if cand.Field.Structural() {
			return cand, true
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}
	return Candidate{}, false
}

// DistinctIDs returns the compound ids of candidates, first occurrence order.
func DistinctIDs(candidates []Candidate) []chem.CompoundID {
	seen := make(map[chem.CompoundID]struct{}, len(candidates))
	out := []chem.CompoundID{}
	for _, cand := range candidates {
		if _, ok := seen[cand.ID]; ok {
			continue
		}
		seen[cand.ID] = struct{}{}
		out = append(out, cand.ID)
	}
	return out
}

// Resolve maps a name, alternate name, CAS number or formula to a compound
// id using PreferStructural. It fails with CodeCompoundNotFound when nothing
// matches, and in strict mode with CodeAmbiguousIdentifier when candidates
// disagree.
func (c *Catalog) Resolve(query string) (chem.CompoundID, error) {
	cands := c.Candidates(query)
	best, ok := PreferStructural(cands)
	if !ok {
		return 0, compoundNotFound(query)
	}
	if c.strict {
		if ids := DistinctIDs(cands); len(ids) > 1 {
			return 0, ambiguousIdentifier(query, ids)
		}
	}
	return best.ID, nil
}

// StateID resolves a physical-state label such as "solid" to its id. A label
// carried by more than one state row is rejected rather than guessed.
func (c *Catalog) StateID(label string) (chem.StateID, error) {
	q := normalize(label)
	if q == "" {
		return 0, invalidState(label)
	}
	var ids []chem.StateID
	for _, st := range c.snap.States() {
		if normalize(st.State) == q {
			ids = append(ids, st.ID)
		}
	}
	switch len(ids) {
	case 0:
		return 0, invalidState(label)
	case 1:
		return ids[0], nil
	default:
		return 0, duplicateState(label, ids)
	}
}

// stateLabel returns the label of a state id.
func (c *Catalog) stateLabel(id chem.StateID) (string, error) {
	for _, st := range c.snap.States() {
		if st.ID == id {
			return st.State, nil
		}
	}
	return "", invalidStateID(id)
}

// Identification returns the compound record for id.
func (c *Catalog) Identification(id chem.CompoundID) (chem.Compound, error) {
	return c.requireCompound(id)
}

// Names returns the name rows of a compound in table order. A compound
// without name rows yields an empty slice.
func (c *Catalog) Names(id chem.CompoundID) ([]chem.Name, error) {
	if _, err := c.requireCompound(id); err != nil {
		return nil, err
	}
	out := []chem.Name{}
	for _, n := range c.snap.Names() {
		if n.ID == id {
			out = append(out, n)
		}
	}
	return out, nil
}

// normalize trims surrounding whitespace and applies Unicode NFC so
// canonically equivalent spellings compare equal.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
