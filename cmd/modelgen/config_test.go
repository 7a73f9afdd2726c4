package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(newViper(), "")
	require.NoError(t, err)

	want := &Config{Renderer: "plain", HTTP: HTTPConfig{Timeout: defaultTimeout}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modelgen.yaml"), []byte(`
source: site.yaml
format: OpenAPI
renderer: ansi
theme:
  name: solarized
  variant: light
http:
  timeout: 2s
`), 0o644))

	t.Setenv("MODELGEN_RENDERER", "html")
	t.Setenv("MODELGEN_THEME_VARIANT", "dark")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("theme-variant", "", "")
	flags.String("source", "", "")
	require.NoError(t, flags.Parse([]string{"--theme-variant", "contrast"}))

	v := newViper()
	require.NoError(t, bindFlags(v, flags))
	cfg, err := LoadConfig(v, "")
	require.NoError(t, err)

	require.Equal(t, "site.yaml", cfg.Source, "unchanged flag must not mask the file")
	require.Equal(t, "openapi", cfg.Format)
	require.Equal(t, "html", cfg.Renderer, "env wins over file")
	require.Equal(t, "solarized", cfg.Theme.Name)
	require.Equal(t, "contrast", cfg.Theme.Variant, "flag wins over env")
	require.Equal(t, 2*time.Second, cfg.HTTP.Timeout)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dsn: models.db\nlog:\n  json: true\n"), 0o644))

	cfg, err := LoadConfig(newViper(), path)
	require.NoError(t, err)
	require.Equal(t, "models.db", cfg.DSN)
	require.True(t, cfg.Log.JSON)

	_, err = LoadConfig(newViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
