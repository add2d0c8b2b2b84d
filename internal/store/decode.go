package store

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/phasedb/internal/chem"
)

// Table names read by the typed decoders.
const (
	TableCompounds  = "compounds"
	TableNames      = "names"
	TablePhysStates = "phys_states"
	TableDensity    = "density"
	TableAntoine    = "antoine"
	TableHMelt      = "h_melt"
	TableHSub       = "h_sub"
	TableHVapBoil   = "h_vap_boil"
	TableVMelt      = "v_melt"
)

// EnthalpyTables lists the transition enthalpy tables.
var EnthalpyTables = []string{TableHMelt, TableHSub, TableHVapBoil}

// namedTables are never treated as point tables even if their shape fits.
var namedTables = map[string]struct{}{
	TableCompounds:  {},
	TableNames:      {},
	TablePhysStates: {},
	TableDensity:    {},
	TableAntoine:    {},
	TableHMelt:      {},
	TableHSub:       {},
	TableHVapBoil:   {},
	TableVMelt:      {},
}

var pointColumns = []string{"id", "temperature", "pressure"}

// decodeSnapshot builds typed relations from raw tables and checks
// referential integrity.
func decodeSnapshot(tables map[string]Table, order []string) (*Snapshot, error) {
	snap := &Snapshot{
		version:    uuid.Must(uuid.NewV7()).String(),
		tables:     tables,
		order:      order,
		points:     map[string][]chem.PointRow{},
		pointKinds: []string{},
		enthalpies: map[string][]chem.EnthalpyRow{},
	}

	for _, required := range []string{TableCompounds, TableNames, TablePhysStates} {
		if _, ok := tables[required]; !ok {
			return nil, tableError(required, fmt.Errorf("required table missing"))
		}
	}

	var err error
	if snap.compounds, snap.compoundIdx, err = decodeCompounds(tables[TableCompounds]); err != nil {
		return nil, err
	}
	if snap.names, err = decodeNames(tables[TableNames]); err != nil {
		return nil, err
	}
	if snap.states, err = decodeStates(tables[TablePhysStates]); err != nil {
		return nil, err
	}
	if t, ok := tables[TableDensity]; ok {
		if snap.density, err = decodeDensity(t); err != nil {
			return nil, err
		}
	}
	if t, ok := tables[TableAntoine]; ok {
		if snap.antoine, err = decodeAntoine(t); err != nil {
			return nil, err
		}
	}
	for _, name := range EnthalpyTables {
		t, ok := tables[name]
		if !ok {
			continue
		}
		rows, err := decodeValueRows(t)
		if err != nil {
			return nil, err
		}
		out := make([]chem.EnthalpyRow, len(rows))
		for i, r := range rows {
			out[i] = chem.EnthalpyRow(r)
		}
		snap.enthalpies[name] = out
	}
	if t, ok := tables[TableVMelt]; ok {
		rows, err := decodeValueRows(t)
		if err != nil {
			return nil, err
		}
		snap.vmelt = make([]chem.VolumeChangeFusionRow, len(rows))
		for i, r := range rows {
			snap.vmelt[i] = chem.VolumeChangeFusionRow(r)
		}
	}
	for _, name := range order {
		if _, named := namedTables[name]; named {
			continue
		}
		t := tables[name]
		if !t.HasColumns(pointColumns...) {
			continue
		}
		rows, err := decodePoints(t)
		if err != nil {
			return nil, err
		}
		snap.points[name] = rows
		snap.pointKinds = append(snap.pointKinds, name)
	}
	sort.Strings(snap.pointKinds)

	if err := snap.checkReferences(); err != nil {
		return nil, err
	}
	return snap, nil
}

// valueRow is the shared shape of enthalpy and v_melt tables.
type valueRow struct {
	ID    chem.CompoundID
	Value float64
}

func decodeCompounds(t Table) ([]chem.Compound, map[chem.CompoundID]int, error) {
	c, err := columns(t, "id", "cas", "formula", "molar_mass", "name_ref")
	if err != nil {
		return nil, nil, err
	}
	out := make([]chem.Compound, 0, len(t.Rows))
	idx := make(map[chem.CompoundID]int, len(t.Rows))
	for i, r := range t.Rows {
		var rec chem.Compound
		id, err := cellInt(r[c[0]])
		if err != nil {
			return nil, nil, rowError(t.Name, i, fmt.Errorf("id: %w", err))
		}
		rec.ID = chem.CompoundID(id)
		if _, dup := idx[rec.ID]; dup {
			return nil, nil, rowError(t.Name, i, fmt.Errorf("duplicate compound id %d", id))
		}
		if rec.CAS, err = cellString(r[c[1]]); err != nil {
			return nil, nil, rowError(t.Name, i, fmt.Errorf("cas: %w", err))
		}
		if rec.Formula, err = cellString(r[c[2]]); err != nil {
			return nil, nil, rowError(t.Name, i, fmt.Errorf("formula: %w", err))
		}
		if rec.MolarMass, err = cellFloat(r[c[3]]); err != nil {
			return nil, nil, rowError(t.Name, i, fmt.Errorf("molar_mass: %w", err))
		}
		if rec.NameRef, err = cellString(r[c[4]]); err != nil {
			return nil, nil, rowError(t.Name, i, fmt.Errorf("name_ref: %w", err))
		}
		idx[rec.ID] = len(out)
		out = append(out, rec)
	}
	return out, idx, nil
}

func decodeNames(t Table) ([]chem.Name, error) {
	c, err := columns(t, "id", "name")
	if err != nil {
		return nil, err
	}
	// Alternate name columns are optional
	alt := [3]int{t.ColumnIndex("alt_name1"), t.ColumnIndex("alt_name2"), t.ColumnIndex("alt_name3")}

	out := make([]chem.Name, 0, len(t.Rows))
	for i, r := range t.Rows {
		var rec chem.Name
		id, err := cellInt(r[c[0]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("id: %w", err))
		}
		rec.ID = chem.CompoundID(id)
		if rec.Name, err = cellString(r[c[1]]); err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("name: %w", err))
		}
		dst := [3]*string{&rec.AltName1, &rec.AltName2, &rec.AltName3}
		for k, col := range alt {
			if col < 0 {
				continue
			}
			if *dst[k], err = cellString(r[col]); err != nil {
				return nil, rowError(t.Name, i, fmt.Errorf("%s: %w", t.Columns[col], err))
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeStates(t Table) ([]chem.PhysicalState, error) {
	c, err := columns(t, "id", "state")
	if err != nil {
		return nil, err
	}
	out := make([]chem.PhysicalState, 0, len(t.Rows))
	for i, r := range t.Rows {
		id, err := cellInt(r[c[0]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("id: %w", err))
		}
		label, err := cellString(r[c[1]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("state: %w", err))
		}
		out = append(out, chem.PhysicalState{ID: chem.StateID(id), State: label})
	}
	return out, nil
}

func decodeDensity(t Table) ([]chem.DensityRow, error) {
	c, err := columns(t, "id", "state", "value")
	if err != nil {
		return nil, err
	}
	out := make([]chem.DensityRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		id, err := cellInt(r[c[0]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("id: %w", err))
		}
		state, err := cellInt(r[c[1]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("state: %w", err))
		}
		v, err := cellFloat(r[c[2]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("value: %w", err))
		}
		out = append(out, chem.DensityRow{ID: chem.CompoundID(id), State: chem.StateID(state), Value: v})
	}
	return out, nil
}

func decodeAntoine(t Table) ([]chem.AntoineRow, error) {
	c, err := columns(t, "id", "t_min", "t_max", "A", "B", "C")
	if err != nil {
		return nil, err
	}
	out := make([]chem.AntoineRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		id, err := cellInt(r[c[0]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("id: %w", err))
		}
		rec := chem.AntoineRow{ID: chem.CompoundID(id)}
		for k, dst := range []*float64{&rec.TMin, &rec.TMax, &rec.A, &rec.B, &rec.C} {
			if *dst, err = cellFloat(r[c[k+1]]); err != nil {
				return nil, rowError(t.Name, i, fmt.Errorf("%s: %w", t.Columns[c[k+1]], err))
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodePoints(t Table) ([]chem.PointRow, error) {
	c, err := columns(t, pointColumns...)
	if err != nil {
		return nil, err
	}
	out := make([]chem.PointRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		id, err := cellInt(r[c[0]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("id: %w", err))
		}
		temp, err := cellFloat(r[c[1]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("temperature: %w", err))
		}
		pres, err := cellFloat(r[c[2]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("pressure: %w", err))
		}
		out = append(out, chem.PointRow{ID: chem.CompoundID(id), Temperature: temp, Pressure: pres})
	}
	return out, nil
}

func decodeValueRows(t Table) ([]valueRow, error) {
	c, err := columns(t, "id", "value")
	if err != nil {
		return nil, err
	}
	out := make([]valueRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		id, err := cellInt(r[c[0]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("id: %w", err))
		}
		v, err := cellFloat(r[c[1]])
		if err != nil {
			return nil, rowError(t.Name, i, fmt.Errorf("value: %w", err))
		}
		out = append(out, valueRow{ID: chem.CompoundID(id), Value: v})
	}
	return out, nil
}

// columns resolves column positions, failing on the first missing one.
func columns(t Table, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = t.ColumnIndex(n)
		if idx[i] < 0 {
			return nil, tableError(t.Name, fmt.Errorf("missing column %q", n))
		}
	}
	return idx, nil
}

func cellInt(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("non-integral value %v", x)
		}
		return int64(x), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64)
	case nil:
		return 0, fmt.Errorf("unexpected NULL")
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}

func cellFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
	case nil:
		return 0, fmt.Errorf("unexpected NULL")
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}

// cellString maps NULL to the empty string.
func cellString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("unsupported type %T", v)
}
