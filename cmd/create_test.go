package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCreateCmd_Exists verifies getCreateCmd returns
// a valid command.
func TestGetCreateCmd_Exists(t *testing.T) {
	cmd := getCreateCmd()
	require.NotNil(t, cmd, "Create command should exist")
	assert.Equal(t, "create", cmd.Use,
		"Command name should be create")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetCreateCmd_LongDescription verifies long
// description.
func TestGetCreateCmd_LongDescription(t *testing.T) {
	cmd := getCreateCmd()

	assert.Contains(t, cmd.Short, "schema",
		"Short description should mention schema")
	assert.Contains(t, cmd.Long, "PostgreSQL",
		"Long description should mention PostgreSQL")
	assert.Contains(t, cmd.Long, "SQLite",
		"Long description should mention SQLite")
	assert.Contains(t, cmd.Long, "GORM AutoMigrate",
		"Long description should mention GORM")
}

// TestGetCreateCmd_ForceFlag verifies --force flag exists.
func TestGetCreateCmd_ForceFlag(t *testing.T) {
	cmd := getCreateCmd()

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag,
		"--force flag should exist")

	assert.Equal(t, "f", forceFlag.Shorthand,
		"Short form should be -f")
	assert.Equal(t, "false", forceFlag.DefValue,
		"Default should be false")
	assert.Contains(t, forceFlag.Usage, "drop",
		"Usage should mention drop")
}

// TestGetCreateCmd_HelpText verifies help text content.
func TestGetCreateCmd_HelpText(t *testing.T) {
	cmd := getCreateCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "--force",
		"Help should mention --force flag")
	assert.Contains(t, helpText, "gntag create --force",
		"Should show force example")
	assert.Contains(t, helpText, "Examples:",
		"Help should include examples")
}

// TestGetCreateCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetCreateCmd_IndependentInstances(t *testing.T) {
	cmd1 := getCreateCmd()
	cmd2 := getCreateCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each call should return new instance")
}

func TestRunCreate(t *testing.T) {
	testConfig(t)

	require.NoError(t, runCreate(nil, nil, true))
	// existing tables are dropped without a prompt
	require.NoError(t, runCreate(nil, nil, true))

	c, closeDB, err := openCurator(t.Context())
	require.NoError(t, err)
	defer closeDB()

	orphans, err := c.ListOrphans(t.Context())
	require.NoError(t, err)
	assert.Empty(t, orphans)
}
