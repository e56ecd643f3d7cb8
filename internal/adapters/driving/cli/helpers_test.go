package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const cleanCorpus = `{
  "version": "v1",
  "items": [
    {"source": "hola", "target": "hello", "units": [{"target": "hello", "source": "hola"}]}
  ]
}`

// brokenCorpus has an item whose units do not tile its target.
const brokenCorpus = `{
  "version": "v2",
  "items": [
    {"source": "hola mundo", "target": "hello world", "units": [{"target": "hello", "source": "hola"}]}
  ]
}`

// workspace holds per-test rule and data locations.
type workspace struct {
	dir   string
	rules string
	data  string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return &workspace{
		dir:   dir,
		rules: filepath.Join(dir, "rules.toml"),
		data:  filepath.Join(dir, "data"),
	}
}

func (w *workspace) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(w.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes the root command with the workspace's rule and data paths.
func (w *workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return w.runContext(t, context.Background(), args...)
}

func (w *workspace) runContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	args = append([]string{"--rules", w.rules, "--data-dir", w.data}, args...)
	return execute(t, ctx, args...)
}

// execute runs rootCmd with fresh flag values and captures its output.
func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

// resetFlags restores every flag to its default; cobra keeps parsed
// values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func findCommand(t *testing.T, path ...string) *cobra.Command {
	t.Helper()
	cmd, rest, err := rootCmd.Find(path)
	require.NoError(t, err)
	require.Empty(t, rest)
	return cmd
}
