package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phasedb/internal/testutil"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestCommands_Golden(t *testing.T) {
	db := testutil.FixtureDB(t)

	tests := []struct {
		name string
		args []string
	}{
		{"resolve_all", []string{"resolve", "NH3", "--all"}},
		{"info", []string{"info", "carbon dioxide"}},
		{"density_all", []string{"density", "water", "liquid", "--all"}},
		{"antoine_all", []string{"antoine", "H2O", "--all"}},
		{"point_critical", []string{"point", "water", "critical_point"}},
		{"enthalpy_all", []string{"enthalpy", "7732-18-5", "vaporization", "--all"}},
		{"vfusion_tabulated", []string{"vfusion", "water", "--tabulated"}},
		{"tables", []string{"tables"}},
		{"compound_not_found", []string{"resolve", "definitely-not-a-real-compound"}},
	}

	g := newGoldie(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, _ := execute(t, append([]string{"--db", db}, tt.args...)...)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestCommands_ExitCodes(t *testing.T) {
	db := testutil.FixtureDB(t)

	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
	}{
		{"found", []string{"resolve", "water"}, ExitSuccess, ""},
		{"not found", []string{"resolve", "definitely-not-a-real-compound"}, ExitFailure, "COMPOUND_NOT_FOUND"},
		{"strict ambiguity", []string{"--strict", "resolve", "NH3"}, ExitFailure, "AMBIGUOUS_IDENTIFIER"},
		{"invalid state", []string{"density", "water", "plasma"}, ExitFailure, "INVALID_STATE"},
		{"missing property", []string{"density", "CO2", "liquid"}, ExitFailure, "PROPERTY_NOT_FOUND"},
		{"index out of range", []string{"density", "water", "liquid", "--index", "2"}, ExitFailure, "INDEX_OUT_OF_RANGE"},
		{"negative index", []string{"antoine", "water", "--index", "-1"}, ExitFailure, "INDEX_OUT_OF_RANGE"},
		{"unknown point kind", []string{"point", "water", "boiling_point"}, ExitFailure, "INVALID_PROPERTY_KIND"},
		{"unknown enthalpy kind", []string{"enthalpy", "water", "melting"}, ExitFailure, "INVALID_PROPERTY_KIND"},
		{"unknown unit", []string{"density", "water", "liquid", "--unit", "furlong"}, ExitCommandError, ErrCodeUnit},
		{"incompatible unit", []string{"enthalpy", "water", "fusion", "--unit", "K"}, ExitCommandError, ErrCodeDimension},
		{"missing database", []string{"--db", "/nonexistent/phasedb.db", "tables"}, ExitCommandError, ErrCodeLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--db", db, "--format", "json"}, tt.args...)
			out, _, err := execute(t, args...)
			assert.Equal(t, tt.wantExit, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
			if tt.wantCode == "" {
				assert.Equal(t, "ok", resp.Status)
				return
			}
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

type quantityResponse struct {
	Status string                       `json:"status"`
	Data   PropertyResult[QuantityView] `json:"data"`
}

func runJSON(t *testing.T, args ...string) quantityResponse {
	t.Helper()
	db := testutil.FixtureDB(t)
	out, _, err := execute(t, append([]string{"--db", db, "--format", "json"}, args...)...)
	require.NoError(t, err, out)

	var resp quantityResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

func TestDensity_IndexAndUnit(t *testing.T) {
	resp := runJSON(t, "density", "water", "liquid", "--index", "1", "--unit", "kg/m3")

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "density", resp.Data.Property)
	assert.Equal(t, "liquid", resp.Data.State)
	require.Len(t, resp.Data.Entries, 1)
	assert.Equal(t, 1, resp.Data.Entries[0].Index)
	assert.InDelta(t, 997.0, resp.Data.Entries[0].Value.Value, 1e-9)
	assert.Equal(t, "kg/m³", resp.Data.Entries[0].Value.Unit)
}

func TestVolumeFusion_Calculated(t *testing.T) {
	resp := runJSON(t, "vfusion", "testium")

	assert.Equal(t, "v_melt", resp.Data.Property)
	assert.Equal(t, "calculated", resp.Data.Method)
	require.Len(t, resp.Data.Entries, 1)
	assert.InDelta(t, 2.0, resp.Data.Entries[0].Value.Value, 1e-9)
	assert.Equal(t, "cm³/mol", resp.Data.Entries[0].Value.Unit)
}

func TestVolumeFusion_DensityIndex(t *testing.T) {
	resp := runJSON(t, "vfusion", "water", "--liquid-index", "1")
	assert.InDelta(t, -1.5828050, resp.Data.Entries[0].Value.Value, 1e-6)

	resp = runJSON(t, "vfusion", "water", "--unit", "m3/mol")
	assert.InDelta(t, -1.6334089e-6, resp.Data.Entries[0].Value.Value, 1e-12)
}

func TestVolumeFusion_TabulatedMissing(t *testing.T) {
	db := testutil.FixtureDB(t)

	out, _, err := execute(t, "--db", db, "vfusion", "CO2", "--tabulated")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "PROPERTY_NOT_FOUND")
	assert.Contains(t, out, "retry with calculation enabled")
}

func TestIndexOutOfRange_Details(t *testing.T) {
	db := testutil.FixtureDB(t)

	out, _, err := execute(t, "--db", db, "--format", "json", "density", "water", "liquid", "--index", "5")
	require.Error(t, err)

	var resp struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "INDEX_OUT_OF_RANGE", resp.Error.Code)
	assert.Equal(t, float64(5), resp.Error.Details["index"])
	assert.Equal(t, float64(2), resp.Error.Details["available"])
	assert.Equal(t, "density", resp.Error.Details["kind"])
}

func TestTables_JSONVersion(t *testing.T) {
	db := testutil.FixtureDB(t)

	out, _, err := execute(t, "--db", db, "--format", "json", "tables")
	require.NoError(t, err)

	var resp struct {
		Data TablesResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.Data.Version)
	assert.Len(t, resp.Data.Tables, 11)
	assert.Equal(t, []string{"critical_point", "triple_point"}, resp.Data.PointKinds)
}

func TestUsageErrors(t *testing.T) {
	_, _, err := execute(t, "density", "water")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}
