package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gnames/gntag/pkg/duplicates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetOptimizeCmd_Exists verifies getOptimizeCmd
// returns a valid command.
func TestGetOptimizeCmd_Exists(t *testing.T) {
	cmd := getOptimizeCmd()
	require.NotNil(t, cmd,
		"Optimize command should exist")
	assert.Equal(t, "optimize", cmd.Use,
		"Command name should be optimize")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetOptimizeCmd_LongDescription verifies long
// description.
func TestGetOptimizeCmd_LongDescription(t *testing.T) {
	cmd := getOptimizeCmd()

	assert.Contains(t, cmd.Long, "Prerequisites",
		"Long description should mention prerequisites")
	assert.Contains(t, cmd.Long, "gntag create",
		"Long description should mention create command")
	assert.Contains(t, cmd.Long, "VACUUM",
		"Long description should mention VACUUM")
}

func TestRunOptimize_EmptyDatabase(t *testing.T) {
	testConfig(t)

	buf := new(bytes.Buffer)
	require.NoError(t, runOptimize(buf))
	assert.Empty(t, buf.String())
}

func TestRunOptimize(t *testing.T) {
	seedStore(t)

	out, err := execute(t, getOptimizeCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Tags: 5, orphans: 0")

	_, err = execute(t, getDeleteCmd(), "--id", similarParentIDs(t)[0],
		"--reason", "generic-term")
	require.NoError(t, err)

	out, err = execute(t, getOptimizeCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Tags: 4, orphans: 1")
}

// similarParentIDs returns ids of the only pair of similar parents.
func similarParentIDs(t *testing.T) []string {
	t.Helper()
	out, err := execute(t, getDuplicatesCmd(), "--json")
	require.NoError(t, err)
	var rep duplicates.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.ParentPairs, 1)
	require.Len(t, rep.ParentPairs[0].IDs, 2)
	return rep.ParentPairs[0].IDs
}
