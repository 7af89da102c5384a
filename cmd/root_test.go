package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chtemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestConfigInitWritesFile(t *testing.T) {
	chtemp(t)

	rootCmd.SetArgs([]string{"config", "init"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile("config.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "zillow-working-api.p.rapidapi.com")
	assert.Contains(t, string(data), "driver: sqlite")

	// Refuses to clobber without --force.
	rootCmd.SetArgs([]string{"config", "init"})
	require.Error(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"config", "init", "--force"})
	require.NoError(t, rootCmd.Execute())
}

func TestRentalCommand(t *testing.T) {
	chtemp(t)

	rootCmd.SetArgs([]string{"rental", "100000", "1200"})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"rental", "not-a-number", "1200"})
	require.Error(t, rootCmd.Execute())
}

func TestRunsListEmptyStore(t *testing.T) {
	chtemp(t)

	rootCmd.SetArgs([]string{"runs", "list"})
	require.NoError(t, rootCmd.Execute())
}
