package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("KISAN_CONFIG", path)
}

func TestParseFlagsReadsConfigFile(t *testing.T) {
	writeConfig(t, `
[mandi]
location = "Pune"

[delays]
listen = "1s"

[provider]
retries = 4
`)

	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	require.Equal(t, "Pune", cfg.Location)
	require.Equal(t, time.Second, cfg.ListenDelay)
	require.Equal(t, 2*time.Second, cfg.ProcessDelay)
	require.Equal(t, uint(4), cfg.ProviderRetries)
	require.Empty(t, cfg.CatalogPath)
	require.NotEmpty(t, cfg.LogPath)
}

func TestParseFlagsPrecedence(t *testing.T) {
	writeConfig(t, "[mandi]\nlocation = \"Pune\"\n")
	t.Setenv("KISAN_MANDI_LOCATION", "Delhi")

	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	require.Equal(t, "Delhi", cfg.Location)

	cfg, err = ParseFlags([]string{"-location", "Mumbai", "-fast"})
	require.NoError(t, err)
	require.Equal(t, "Mumbai", cfg.Location)
	require.Zero(t, cfg.ListenDelay)
	require.Zero(t, cfg.AnalyzeDelay)
}

func TestParseFlagsRejectsUnknownLocation(t *testing.T) {
	writeConfig(t, "")

	_, err := ParseFlags([]string{"-location", "Gotham"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Gotham")
}

func TestParseFlagsAgmarknetSettings(t *testing.T) {
	writeConfig(t, "[agmarknet]\nstate = \"Maharashtra\"\n")

	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	require.Equal(t, "Maharashtra", cfg.AgmarknetState)

	t.Setenv("KISAN_AGMARKNET_STATE", "Karnataka")
	cfg, err = ParseFlags(nil)
	require.NoError(t, err)
	require.Equal(t, "Karnataka", cfg.AgmarknetState)
}
