package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigCmd_Structure(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
	assert.NotEmpty(t, configCmd.Short)
	assert.NotEmpty(t, configCmd.Long)
	assert.NotEmpty(t, configCmd.Example)
}

func TestConfigCmd_ShowsSettingsAndCatalog(t *testing.T) {
	t.Setenv("DK_ENGINE", "podman")
	t.Setenv("DK_DOCKER_HOST", "unix:///run/podman/podman.sock")
	h := newHarness(t)

	code := h.run("config")

	assert.Equal(t, 0, code)
	out := h.out.String()
	assert.Contains(t, out, "Settings:")
	assert.Regexp(t, `engine\s+podman`, out)
	assert.Regexp(t, `docker_host\s+unix:///run/podman/podman\.sock`, out)
	assert.Contains(t, out, h.catalogPath)
	assert.Regexp(t, `cadvisor\s+25005\s+ots_cadvisor`, out)
	h.noEngineCalls(t)
}

func TestConfigCmd_HelpOutput(t *testing.T) {
	h := newHarness(t)

	code := h.run("config", "--help")

	assert.Equal(t, 0, code)
	for _, want := range []string{"DK_ENGINE", "DK_DOCKER_HOST", ".env", "--config"} {
		assert.Contains(t, h.out.String(), want)
	}
}
