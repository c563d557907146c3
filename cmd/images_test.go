package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorak1103/dk/internal/engine/enginetest"
	"github.com/zorak1103/dk/internal/listing"
)

func newImageHarness(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	h.rec.Respond("docker images --format {{.ID}}", imagesOutput)
	return h
}

func TestIm_ShowsImages(t *testing.T) {
	h := newImageHarness(t)

	code := h.run("im")

	assert.Equal(t, 0, code)
	out := h.out.String()
	assert.Contains(t, out, "Tag")
	assert.Regexp(t, `1\s+111aaa\s+nginx\s+1\.27\s+187MB`, out)
	assert.Regexp(t, `3\s+333ccc\s+portainer/portainer-ce\s+latest`, out)
	assert.Equal(t, []string{"docker images --format " + listing.ImageFormat}, h.rec.Commands())
}

func TestImRm_ResolvesToReferenceOrID(t *testing.T) {
	h := newImageHarness(t)

	code := h.run("im", "rm", "1", "2", "alpine")

	assert.Equal(t, 0, code)
	assert.Equal(t, []string{
		"docker rmi nginx:1.27",
		"docker rmi 222bbb",
		"docker rmi alpine",
	}, h.rec.CommandsFor(enginetest.ModeRun))
	assert.Contains(t, h.out.String(), "Removing image nginx:1.27")
}

func TestImRm_RequiresTarget(t *testing.T) {
	h := newImageHarness(t)

	code := h.run("im", "rm")

	assert.Equal(t, 1, code)
	assert.Contains(t, h.out.String(), "'rm' command requires at least one image")
	h.noEngineCalls(t)
}

func TestImScan_RunsTrivy(t *testing.T) {
	h := newImageHarness(t)

	code := h.run("im", "scan", "3")

	assert.Equal(t, 0, code)
	assert.Equal(t, []string{
		"docker run --tty --rm -v trivy:/cachedata ghcr.io/aquasecurity/trivy:latest image --scanners vuln --cache-dir /cachedata portainer/portainer-ce:latest",
	}, h.rec.CommandsFor(enginetest.ModeRun))
}

func TestImLoad_LoadsEveryFile(t *testing.T) {
	h := newImageHarness(t)
	h.rec.Fail("docker load -i broken.tar", 1, "")

	code := h.run("im", "load", "broken.tar", "nginx.1.27.tar.gz")

	assert.Equal(t, 1, code)
	assert.Equal(t, []string{
		"docker load -i broken.tar",
		"docker load -i nginx.1.27.tar.gz",
	}, h.rec.CommandsFor(enginetest.ModeRun))
	assert.Contains(t, h.out.String(), "Error loading image file broken.tar")
	assert.Empty(t, h.rec.CommandsFor(enginetest.ModeCapture), "file names are never ranks")
}

func TestImLoad_RequiresFile(t *testing.T) {
	h := newImageHarness(t)

	code := h.run("im", "load")

	assert.Equal(t, 1, code)
	assert.Contains(t, h.out.String(), "'load' command requires at least one file")
}

func TestImSave_WritesArchive(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	h := newImageHarness(t)
	h.rec.Respond("docker save", "layers")

	code := h.run("im", "save", "3")

	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"docker save portainer/portainer-ce:latest"}, h.rec.CommandsFor(enginetest.ModeStream))
	_, err := os.Stat(filepath.Join(dir, "portainer_portainer-ce.latest.tar.gz"))
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Saving image portainer/portainer-ce:latest into portainer_portainer-ce.latest.tar.gz")
}

func TestImSave_ReportsEngineError(t *testing.T) {
	t.Chdir(t.TempDir())
	h := newImageHarness(t)
	h.rec.Fail("docker save", 1, "reference does not exist")

	code := h.run("im", "save", "ghost:1")

	assert.Equal(t, 1, code)
	assert.Contains(t, h.out.String(), "Error saving image ghost:1")
	assert.Contains(t, h.out.String(), "reference does not exist")
}

func TestImPull_SkipsPresentImage(t *testing.T) {
	t.Chdir(t.TempDir())
	h := newImageHarness(t)
	h.rec.Respond("docker images --format {{.Repository}}", "nginx:1.27\n")

	code := h.run("im", "pull", "1")

	assert.Equal(t, 0, code)
	assert.Empty(t, h.rec.CommandsFor(enginetest.ModeRun))
	assert.Contains(t, h.out.String(), "Image nginx:1.27 is already present")
}

func TestImPull_PullsAndSaves(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	h := newImageHarness(t)
	h.rec.Respond("docker save", "layers")

	code := h.run("im", "pull", "redis:7")

	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"docker pull redis:7"}, h.rec.CommandsFor(enginetest.ModeRun))
	assert.Equal(t, []string{"docker save redis:7"}, h.rec.CommandsFor(enginetest.ModeStream))
	_, err := os.Stat(filepath.Join(dir, "redis.7.tar.gz"))
	assert.NoError(t, err)
}

func TestImPull_LoadsLocalArchive(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "redis.7.tar.gz"), []byte("archived"), 0o600))
	h := newImageHarness(t)

	code := h.run("im", "pull", "redis:7")

	assert.Equal(t, 0, code)
	runs := h.rec.CommandsFor(enginetest.ModeRun)
	require.Len(t, runs, 1)
	assert.Contains(t, runs[0], "docker load -i ")
	assert.Contains(t, runs[0], "redis.7.tar.gz")
}
