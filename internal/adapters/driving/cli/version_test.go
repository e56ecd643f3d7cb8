package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, context.Background(), "version")

	require.NoError(t, err)
	assert.Contains(t, out, "corpuslint version test-version-1.0.0")
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	originalVersion := version
	version = "dev"
	defer func() { version = originalVersion }()

	out, err := execute(t, context.Background(), "version")

	require.NoError(t, err)
	assert.Contains(t, out, "corpuslint version dev")
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, context.Background(), "version", "extra")
	assert.Error(t, err)
}
