// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
region: us-west-2
output_file: people.csv
tags:
  - team-a
  - team-b
attempts: 3
setup:
  bucket_name: setup-bucket
  export_users: true
cleanup:
  region: eu-west-1
  confirm: false
`

// setupTestConfig writes content to a temp file, points Q3P_CFG_FILE at it and
// resets the global Config so the next getter reloads.
func setupTestConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "q3p.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("Q3P_CFG_FILE", path)

	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	return path
}

func TestLoad(t *testing.T) {
	path := setupTestConfig(t, sampleConfig)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "us-west-2", cfg.Data["region"])
	assert.Empty(t, cfg.Namespace)
}

func TestLoad_Namespace(t *testing.T) {
	setupTestConfig(t, sampleConfig)

	cfg, err := Load("cleanup")
	require.NoError(t, err)
	assert.Equal(t, "cleanup", cfg.Namespace)

	// Namespaced key wins over the global one.
	region, err := GetString("region")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", region)

	// Falls back to the global key when the namespace lacks it.
	out, err := GetString("output_file")
	require.NoError(t, err)
	assert.Equal(t, "people.csv", out)
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("Q3P_CFG_FILE", "/nonexistent/path/q3p.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv("Q3P_CFG_FILE", t.TempDir())
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_InvalidYAML(t *testing.T) {
	setupTestConfig(t, "region: [unterminated")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetString(t *testing.T) {
	setupTestConfig(t, sampleConfig)

	tests := []struct {
		name     string
		key      string
		def      []string
		expected string
		wantErr  bool
	}{
		{name: "top level", key: "region", expected: "us-west-2"},
		{name: "nested", key: "setup.bucket_name", expected: "setup-bucket"},
		{name: "missing with default", key: "nope", def: []string{"fallback"}, expected: "fallback"},
		{name: "missing without default", key: "nope", wantErr: true},
		{name: "not a string", key: "attempts", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetString(tt.key, tt.def...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetBool(t *testing.T) {
	setupTestConfig(t, sampleConfig)

	got, err := GetBool("setup.export_users")
	assert.NoError(t, err)
	assert.True(t, got)

	got, err = GetBool("cleanup.confirm", true)
	assert.NoError(t, err)
	assert.False(t, got)

	got, err = GetBool("missing", true)
	assert.NoError(t, err)
	assert.True(t, got)

	_, err = GetBool("region")
	assert.Error(t, err)
}

func TestGetBool_Namespace(t *testing.T) {
	setupTestConfig(t, sampleConfig)
	_, err := Load("setup")
	require.NoError(t, err)

	got, err := GetBool("export_users")
	assert.NoError(t, err)
	assert.True(t, got)

	Config.Namespace = "cleanup"
	got, err = GetBool("confirm", true)
	assert.NoError(t, err)
	assert.False(t, got)
}

func TestGetStringSlice(t *testing.T) {
	setupTestConfig(t, sampleConfig)

	got, err := GetStringSlice("tags")
	assert.NoError(t, err)
	assert.Equal(t, []string{"team-a", "team-b"}, got)

	got, err = GetStringSlice("missing", []string{"x"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)

	_, err = GetStringSlice("region")
	assert.Error(t, err)
}

func TestLazyReload(t *testing.T) {
	setupTestConfig(t, sampleConfig)
	Config = Type{}

	got, err := GetString("region")
	assert.NoError(t, err)
	assert.Equal(t, "us-west-2", got)
	assert.NotEmpty(t, Config.Source)
}
