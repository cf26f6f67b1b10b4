package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/raphi011/cfgpair/internal/config"
	"github.com/raphi011/cfgpair/internal/log"
	"github.com/raphi011/cfgpair/internal/output"
)

// testEnv is an isolated invocation environment: a temp dir holding the
// config files plus buffers capturing stdout and stderr.
type testEnv struct {
	dir     string
	primary string
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	v       *viper.Viper
}

// newTestEnv writes global to app.cfg and, if non-empty, local to
// app_local.cfg in a fresh temp dir.
func newTestEnv(t *testing.T, global, local string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:     dir,
		primary: filepath.Join(dir, "app.cfg"),
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		v:       viper.New(),
	}
	env.v.Set("config", env.primary)

	if global != "" {
		writeTestFile(t, env.primary, global)
	}
	if local != "" {
		writeTestFile(t, config.LocalPathFor(env.primary), local)
	}
	return env
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// context returns a context carrying the env's settings, a logger on stderr
// and a printer on stdout.
func (e *testEnv) context(verbose bool) context.Context {
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(e.stderr, verbose, false))
	ctx = output.WithPrinter(ctx, e.stdout)
	return withSettings(ctx, e.v)
}

// run executes cmd with args in the env.
func (e *testEnv) run(t *testing.T, cmd *cobra.Command, verbose bool, args ...string) error {
	t.Helper()
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetContext(e.context(verbose))
	cmd.SetArgs(args)
	return cmd.Execute()
}
