package store

import (
	"fmt"
	"slices"

	"github.com/roach88/phasedb/internal/chem"
)

// Snapshot is an immutable in-memory copy of every table of a compound
// database. It is safe for concurrent use; accessors return copies.
type Snapshot struct {
	version string
	tables  map[string]Table
	order   []string

	compounds   []chem.Compound
	compoundIdx map[chem.CompoundID]int
	names       []chem.Name
	states      []chem.PhysicalState
	density     []chem.DensityRow
	antoine     []chem.AntoineRow
	points      map[string][]chem.PointRow
	pointKinds  []string
	enthalpies  map[string][]chem.EnthalpyRow
	vmelt       []chem.VolumeChangeFusionRow
}

// Version identifies this load for log correlation. Two loads of the same
// database have different versions but identical contents.
func (s *Snapshot) Version() string { return s.version }

// Tables returns the loaded table names in sorted order.
func (s *Snapshot) Tables() []string { return slices.Clone(s.order) }

// Table returns a copy of the raw table with the given name.
func (s *Snapshot) Table(name string) (Table, bool) {
	t, ok := s.tables[name]
	if !ok {
		return Table{}, false
	}
	return t.clone(), true
}

// RowCount returns the number of rows of a table, or -1 if it is absent.
func (s *Snapshot) RowCount(name string) int {
	t, ok := s.tables[name]
	if !ok {
		return -1
	}
	return len(t.Rows)
}

// Compounds returns the compound records in table order.
func (s *Snapshot) Compounds() []chem.Compound { return slices.Clone(s.compounds) }

// Compound returns the record with the given id.
func (s *Snapshot) Compound(id chem.CompoundID) (chem.Compound, bool) {
	i, ok := s.compoundIdx[id]
	if !ok {
		return chem.Compound{}, false
	}
	return s.compounds[i], true
}

// Names returns the name records in table order.
func (s *Snapshot) Names() []chem.Name { return slices.Clone(s.names) }

// States returns the physical-state enumeration in table order.
func (s *Snapshot) States() []chem.PhysicalState { return slices.Clone(s.states) }

// Density returns the density rows in table order.
func (s *Snapshot) Density() []chem.DensityRow { return slices.Clone(s.density) }

// Antoine returns the Antoine coefficient rows in table order.
func (s *Snapshot) Antoine() []chem.AntoineRow { return slices.Clone(s.antoine) }

// PointKinds returns the names of the discovered point tables, sorted.
func (s *Snapshot) PointKinds() []string { return slices.Clone(s.pointKinds) }

// Points returns the rows of a point table. The boolean is false when no
// point table with that name exists.
func (s *Snapshot) Points(kind string) ([]chem.PointRow, bool) {
	rows, ok := s.points[kind]
	if !ok {
		return nil, false
	}
	return slices.Clone(rows), true
}

// Enthalpies returns the rows of an enthalpy table; an absent table yields
// no rows.
func (s *Snapshot) Enthalpies(table string) []chem.EnthalpyRow {
	return slices.Clone(s.enthalpies[table])
}

// VolumeChangesFusion returns the tabulated fusion volume changes.
func (s *Snapshot) VolumeChangesFusion() []chem.VolumeChangeFusionRow {
	return slices.Clone(s.vmelt)
}

// checkReferences enforces that every dependent row references a loaded
// compound, and every density row a loaded physical state.
func (s *Snapshot) checkReferences() error {
	known := func(table string, row int, id chem.CompoundID) error {
		if _, ok := s.compoundIdx[id]; !ok {
			return rowError(table, row, fmt.Errorf("compound id %d not in %s", id, TableCompounds))
		}
		return nil
	}

	for i, r := range s.names {
		if err := known(TableNames, i, r.ID); err != nil {
			return err
		}
	}

	stateIDs := make(map[chem.StateID]struct{}, len(s.states))
	for _, st := range s.states {
		stateIDs[st.ID] = struct{}{}
	}
	for i, r := range s.density {
		if err := known(TableDensity, i, r.ID); err != nil {
			return err
		}
		if _, ok := stateIDs[r.State]; !ok {
			return rowError(TableDensity, i, fmt.Errorf("state id %d not in %s", r.State, TablePhysStates))
		}
	}

	for i, r := range s.antoine {
		if err := known(TableAntoine, i, r.ID); err != nil {
			return err
		}
	}
	for _, kind := range s.pointKinds {
		for i, r := range s.points[kind] {
			if err := known(kind, i, r.ID); err != nil {
				return err
			}
		}
	}
	for _, table := range EnthalpyTables {
		for i, r := range s.enthalpies[table] {
			if err := known(table, i, r.ID); err != nil {
				return err
			}
		}
	}
	for i, r := range s.vmelt {
		if err := known(TableVMelt, i, r.ID); err != nil {
			return err
		}
	}
	return nil
}
