package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phasedb/internal/config"
	"github.com/roach88/phasedb/internal/testutil"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "phasedb", cmd.Use)
	assert.Contains(t, cmd.Long, "CAS number")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"resolve", "info", "density", "antoine", "point", "enthalpy", "vfusion", "tables"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, config.DefaultDatabase, dbFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("strict"))
}

func TestPropertyCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"density", "antoine", "point", "enthalpy"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.NotNil(t, sub.Flags().Lookup("index"), name)
		assert.NotNil(t, sub.Flags().Lookup("all"), name)
	}

	vfusion, _, err := cmd.Find([]string{"vfusion"})
	require.NoError(t, err)
	for _, flag := range []string{"index", "tabulated", "solid-index", "liquid-index", "unit"} {
		assert.NotNil(t, vfusion.Flags().Lookup(flag), flag)
	}
}

func TestInvalidFormat(t *testing.T) {
	db := testutil.FixtureDB(t)

	out, errOut, err := execute(t, "--db", db, "--format", "xml", "resolve", "water")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error [CONFIG_ERROR]")
	assert.Contains(t, errOut, "xml")
}

func TestConfigFile(t *testing.T) {
	db := testutil.FixtureDB(t)
	path := filepath.Join(t.TempDir(), "phasedb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: "+db+"\nformat: json\n"), 0o600))

	out, _, err := execute(t, "--config", path, "resolve", "water")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"query":"water","id":1}}`, out)

	// Flags beat the file.
	out, _, err = execute(t, "--config", path, "--format", "text", "resolve", "water")
	require.NoError(t, err)
	assert.Equal(t, "water: compound 1\n", out)
}

func TestConfigFile_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phasedb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("databse: x.db\n"), 0o600))

	_, errOut, err := execute(t, "--config", path, "tables")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "CONFIG_ERROR")
}

func TestEnvironment(t *testing.T) {
	db := testutil.FixtureDB(t)
	t.Setenv("PHASEDB_DATABASE", db)
	t.Setenv("PHASEDB_STRICT_RESOLVE", "true")

	out, _, err := execute(t, "resolve", "NH3")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "AMBIGUOUS_IDENTIFIER")

	out, _, err = execute(t, "--strict=false", "resolve", "NH3")
	require.NoError(t, err)
	assert.Equal(t, "NH3: compound 3\n", out)
}

func TestVerboseLogging(t *testing.T) {
	db := testutil.FixtureDB(t)

	_, errOut, err := execute(t, "--db", db, "-v", "tables")
	require.NoError(t, err)
	assert.Contains(t, errOut, "snapshot loaded")

	_, errOut, err = execute(t, "--db", db, "tables")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "snapshot loaded")
}

func TestVerboseFromLogLevel(t *testing.T) {
	db := testutil.FixtureDB(t)
	path := filepath.Join(t.TempDir(), "phasedb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: "+db+"\nlog_level: debug\n"), 0o600))

	out, errOut, err := execute(t, "--config", path, "resolve", "--all", "NH3")
	require.NoError(t, err)
	assert.Contains(t, out, "NH3: compound 3")
	assert.Contains(t, errOut, "snapshot loaded")
	assert.Contains(t, errOut, "2 candidate(s), 2 distinct compound(s)")

	t.Setenv("PHASEDB_DATABASE", db)
	t.Setenv("PHASEDB_LOG_LEVEL", "debug")
	_, errOut, err = execute(t, "resolve", "--all", "NH3")
	require.NoError(t, err)
	assert.Contains(t, errOut, "2 candidate(s)")

	t.Setenv("PHASEDB_LOG_LEVEL", "info")
	_, errOut, err = execute(t, "resolve", "--all", "NH3")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "candidate(s)")
}
