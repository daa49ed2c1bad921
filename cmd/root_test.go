package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"enrich", "check"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "data-scraper", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotNil(t, rootCmd.PersistentPreRunE)
	assert.True(t, rootCmd.SilenceUsage)
	for _, name := range []string{"enrich", "check", "SCRAPER_"} {
		assert.Contains(t, rootCmd.Long, name)
	}

	flag := rootCmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestEnrichCommand_Flags(t *testing.T) {
	defaults := map[string]string{
		"input":       "firms.csv",
		"output":      "",
		"failure-log": "",
		"plan":        "",
		"limit":       "0",
		"dry-run":     "false",
	}
	for name, def := range defaults {
		flag := enrichCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "enrich should have --%s flag", name)
		assert.Equal(t, def, flag.DefValue, name)
	}
}

func TestCheckCommand_Flags(t *testing.T) {
	for _, name := range []string{"url", "email", "phone"} {
		assert.NotNil(t, checkCmd.Flags().Lookup(name), "check should have --%s flag", name)
	}
}
