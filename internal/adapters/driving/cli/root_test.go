package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/logger"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"validate", "watch", "reports", "rules", "browse", "mcp", "version"} {
		assert.True(t, names[want], "%s should be registered", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "rules", "data-dir"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_VerboseEnablesDebug(t *testing.T) {
	defer logger.SetVerbose(false)

	_, err := execute(t, context.Background(), "--verbose", "version")
	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())

	_, err = execute(t, context.Background(), "version")
	require.NoError(t, err)
	assert.False(t, logger.IsVerbose())
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execute(t, context.Background(), "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "decomposition corpus")
	assert.Contains(t, out, "validate")
}
