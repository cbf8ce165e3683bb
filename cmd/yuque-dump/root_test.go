package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yuque-dump.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
store: ~/notes/yuque
workers: 4
prune: true
repos:
  - Team/Docs
  - Handbook
request-timeout: 30s
`)

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "~/notes/yuque", config.StorePath)
	require.NotNil(t, config.Workers)
	assert.Equal(t, 4, *config.Workers)
	require.NotNil(t, config.Prune)
	assert.True(t, *config.Prune)
	assert.Nil(t, config.FrontMatter)
	assert.Equal(t, []string{"Team/Docs", "Handbook"}, config.Repos)
	assert.Equal(t, "30s", config.RequestTimeout)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "confluence-instance: example.atlassian.net\n")

	_, err := loadConfig(path)
	assert.ErrorContains(t, err, "issue parsing config file")
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "error reading config file")
}

type boundFlags struct {
	store    string
	workers  int
	prune    bool
	progress bool
	repos    []string
	timeout  time.Duration
}

func newBindTarget(t *testing.T, args ...string) (*cobra.Command, *boundFlags) {
	t.Helper()

	bound := &boundFlags{}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&bound.store, "store", "./yuque", "")
	cmd.Flags().IntVar(&bound.workers, "workers", 0, "")
	cmd.Flags().BoolVar(&bound.prune, "prune", false, "")
	cmd.Flags().BoolVar(&bound.progress, "progress", true, "")
	cmd.Flags().StringArrayVar(&bound.repos, "repos", []string{}, "")
	cmd.Flags().DurationVar(&bound.timeout, "request-timeout", 0, "")
	require.NoError(t, cmd.ParseFlags(args))

	return cmd, bound
}

func TestBindFlags(t *testing.T) {
	t.Parallel()

	workers := 3
	prune := true
	progress := false
	config := YamlConfig{
		StorePath:      "/srv/yuque",
		Workers:        &workers,
		Prune:          &prune,
		Progress:       &progress,
		Repos:          []string{"a", "b"},
		RequestTimeout: "15s",
		// no such flag on this command
		BaseURL: "https://example.com/api/v2",
	}

	cmd, bound := newBindTarget(t)
	require.NoError(t, bindFlags(cmd, config))

	assert.Equal(t, "/srv/yuque", bound.store)
	assert.Equal(t, 3, bound.workers)
	assert.True(t, bound.prune)
	assert.False(t, bound.progress)
	assert.Equal(t, []string{"a", "b"}, bound.repos)
	assert.Equal(t, 15*time.Second, bound.timeout)
}

func TestBindFlagsCommandLineWins(t *testing.T) {
	t.Parallel()

	workers := 3
	config := YamlConfig{
		StorePath: "/srv/yuque",
		Workers:   &workers,
		Repos:     []string{"from-config"},
	}

	cmd, bound := newBindTarget(t, "--store", "/tmp/elsewhere", "--repos", "from-flag")
	require.NoError(t, bindFlags(cmd, config))

	assert.Equal(t, "/tmp/elsewhere", bound.store)
	assert.Equal(t, 3, bound.workers)
	assert.Equal(t, []string{"from-flag"}, bound.repos)
}

func TestBindFlagsLeavesUnsetValuesAlone(t *testing.T) {
	t.Parallel()

	cmd, bound := newBindTarget(t)
	require.NoError(t, bindFlags(cmd, YamlConfig{}))

	assert.Equal(t, "./yuque", bound.store)
	assert.Equal(t, 0, bound.workers)
	assert.True(t, bound.progress)
	assert.Empty(t, bound.repos)
}

func TestBindFlagsBadValue(t *testing.T) {
	t.Parallel()

	cmd, _ := newBindTarget(t)
	err := bindFlags(cmd, YamlConfig{RequestTimeout: "soon"})
	assert.ErrorContains(t, err, "bad value for request-timeout")
}

func TestShortVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		version  string
		revision string
		dirty    bool
		want     string
	}{
		{"nothing known", "unknown", "unknown", true, "devel"},
		{"devel build", "(devel)", "", false, "devel"},
		{"tagged", "v1.2.0", "", false, "v1.2.0"},
		{"clean revision", "unknown", "abc123", false, "rev-abc123"},
		{"dirty tagged revision", "v1.2.0", "abc123", true, "v1.2.0-rev-abc123-dirty"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, shortVersion(tt.version, tt.revision, tt.dirty))
		})
	}
}
