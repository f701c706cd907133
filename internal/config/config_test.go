package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-ux4g/pkg/markup"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ux4g.yaml")
	data := []byte("syntax: jsx\ncache:\n  ttl: 1m\nadmin:\n  addr: 127.0.0.1:9464\ntheme:\n  variant: dark\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("UX4G_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	want := Defaults()
	want.Syntax = "jsx"
	want.Cache.TTL = time.Minute
	want.Admin.Addr = "127.0.0.1:9464"
	want.Theme.Variant = "dark"
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	syntax, err := cfg.OutputSyntax()
	require.NoError(t, err)
	require.Equal(t, markup.JSX, syntax)
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ux4g.yaml"), []byte("log:\n  json: true\n"), 0o600))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.True(t, cfg.Log.JSON)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("syntax: [\n"), 0o600))

	_, err := Load(viper.New(), bad)
	require.ErrorContains(t, err, "config: read")

	_, err = Load(viper.New(), filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"syntax", func(c *Config) { c.Syntax = "svelte" }, "config: syntax"},
		{"level", func(c *Config) { c.Log.Level = "chatty" }, "config: log.level"},
		{"variant", func(c *Config) { c.Theme.Variant = "sepia" }, "config: theme.variant"},
		{"ttl", func(c *Config) { c.Cache.TTL = 0 }, "config: cache.ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	cfg := Defaults()
	cfg.Cache.Enabled = false
	cfg.Cache.TTL = 0
	require.NoError(t, cfg.Validate())
}
