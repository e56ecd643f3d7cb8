package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/watch"
)

func TestWatchCmd_Flags(t *testing.T) {
	assert.NotNil(t, watchCmd.Flags().Lookup("phrases"))

	debounce := watchCmd.Flags().Lookup("debounce")
	require.NotNil(t, debounce)
	assert.Equal(t, watch.DefaultDebounce.String(), debounce.DefValue)
}

func TestWatchCmd_ValidatesThenStopsOnCancel(t *testing.T) {
	ws := newWorkspace(t)
	path := ws.write(t, "corpus.json", cleanCorpus)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	out, err := ws.runContext(t, ctx, "watch", path)

	require.NoError(t, err)
	assert.Contains(t, out, "No findings.")
	assert.Contains(t, out, "Watching 2 files")
}

func TestWatchCmd_RequiresCorpus(t *testing.T) {
	ws := newWorkspace(t)

	_, err := ws.run(t, "watch")
	assert.Error(t, err)
}
