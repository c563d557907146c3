package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorak1103/dk/internal/config"
	"github.com/zorak1103/dk/internal/engine"
	"github.com/zorak1103/dk/internal/engine/enginetest"
	apperrors "github.com/zorak1103/dk/internal/errors"
	"github.com/zorak1103/dk/internal/ui"
)

// Listing fixtures in the engine's --format layout
const (
	psOutput = "web|aaa111|nginx:1.27|Up 2 hours\n" +
		"db|bbb222|postgres:16|Exited (0) 3 days ago\n" +
		"cache|ccc333|redis:7|Up 1 hour\n"
	imagesOutput = "111aaa|nginx|1.27|187MB|2024-09-01 10:00:00 +0000 UTC\n" +
		"222bbb|<none>|<none>|50MB|2024-08-01 10:00:00 +0000 UTC\n" +
		"333ccc|portainer/portainer-ce|latest|300MB|2024-07-01 10:00:00 +0000 UTC\n"
	volumesOutput = "data\ncache\n"
)

// harness runs the real command tree against a recording engine and a
// catalog in a temp directory.
type harness struct {
	rec         *enginetest.Recorder
	catalogPath string
	out         *bytes.Buffer
	gotSettings *config.Settings
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		rec:         enginetest.New(),
		catalogPath: filepath.Join(t.TempDir(), config.CatalogFileName),
		out:         &bytes.Buffer{},
	}

	origRunner, origDaemon := newRunner, newDaemonClient
	newRunner = func(s *config.Settings, _ *ui.Printer, _ *log.Logger) engine.Runner {
		h.gotSettings = s
		return h.rec
	}
	rootCmd.SetOut(h.out)
	rootCmd.SetErr(h.out)

	t.Cleanup(func() {
		newRunner, newDaemonClient = origRunner, origDaemon
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
		settings, store, catalog, runner, printer, logger = nil, nil, nil, nil, nil, nil
	})
	return h
}

// run executes dk with args and returns the exit code.
func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.rec.Calls = nil
	rootCmd.SetArgs(append([]string{"--config=" + h.catalogPath}, args...))
	return run()
}

// noEngineCalls asserts nothing reached the engine.
func (h *harness) noEngineCalls(t *testing.T) {
	t.Helper()
	assert.Empty(t, h.rec.Commands(), "engine must not be invoked")
}

func (h *harness) writeCatalog(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(h.catalogPath, []byte(content), 0o600))
}

// resetFlags restores every flag of the tree to its default so that one
// test's flags do not leak into the next Execute.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRequireTargets(t *testing.T) {
	check := requireTargets("container")

	err := check(rmCmd, nil)
	require.Error(t, err)
	var usageErr *apperrors.UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, "'rm' command requires at least one container", usageErr.Message)

	assert.NoError(t, check(rmCmd, []string{"1"}))
}

func TestExactlyOneTarget(t *testing.T) {
	assert.Error(t, exactlyOneTarget(shellCmd, nil))
	assert.Error(t, exactlyOneTarget(shellCmd, []string{"a", "b"}))
	assert.NoError(t, exactlyOneTarget(shellCmd, []string{"a"}))
}

func TestNoSubcommand(t *testing.T) {
	err := noSubcommand(imCmd, []string{"frobnicate"})
	require.Error(t, err)
	assert.Equal(t, `unknown command "frobnicate" for "dk im"`, err.Error())
	assert.NoError(t, noSubcommand(imCmd, nil))
}

func TestBatch(t *testing.T) {
	printer = ui.New(&bytes.Buffer{})
	t.Cleanup(func() { printer = nil })

	t.Run("keeps going and returns the last failure", func(t *testing.T) {
		var seen []string
		err := batch([]string{"a", "b", "c"}, "Error on %s", func(item string) error {
			seen = append(seen, item)
			switch item {
			case "a":
				return &apperrors.EngineError{Command: "x", ExitCode: 2}
			case "b":
				return &apperrors.EngineError{Command: "x", ExitCode: 4}
			}
			return nil
		})

		assert.Equal(t, []string{"a", "b", "c"}, seen)
		assert.True(t, apperrors.IsReported(err))
		assert.Equal(t, 4, apperrors.ExitCode(err))
	})

	t.Run("launch failure stops the batch", func(t *testing.T) {
		var seen []string
		err := batch([]string{"a", "b"}, "Error on %s", func(item string) error {
			seen = append(seen, item)
			return apperrors.ErrNotLaunched
		})

		assert.Equal(t, []string{"a"}, seen)
		assert.Equal(t, apperrors.ExitNotLaunched, apperrors.ExitCode(err))
	})

	t.Run("all succeed", func(t *testing.T) {
		assert.NoError(t, batch([]string{"a"}, "Error on %s", func(string) error { return nil }))
	})
}
