// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets BLDCTL_CFG to point to a test config file and resets
// the package-level Config so the next access reloads.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("BLDCTL_CFG", absPath)
	Config = Type{}

	t.Cleanup(func() {
		Config = Type{}
	})
}

func TestLoad(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.Source)
	assert.Contains(t, cfg.Data, "marker")
	assert.Equal(t, "bldc", cfg.Data["marker"])
}

func TestGetString(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	tests := []struct {
		name    string
		key     string
		def     []string
		want    string
		wantErr bool
	}{
		{name: "top level", key: "marker", want: "bldc"},
		{name: "dotted path", key: "toolchain.version", want: "3.1"},
		{name: "missing with default", key: "nope", def: []string{"dflt"}, want: "dflt"},
		{name: "missing without default", key: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetString(tt.key, tt.def...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	got, err := GetInt("cache.clean")
	assert.NoError(t, err)
	assert.Equal(t, 24, got)

	got, err = GetInt("missing", 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestGetStringSlice(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	got, err := GetStringSlice("package.markers")
	assert.NoError(t, err)
	assert.Equal(t, []string{"__pkg__.mx", "__pkg__.mxi"}, got)

	_, err = GetStringSlice("marker")
	assert.Error(t, err, "scalar is not a list")
}

func TestNamespaceFallback(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	_, err := Load("resolve")
	require.NoError(t, err)

	// The namespaced key wins over the top-level one.
	got, err := GetString("marker")
	assert.NoError(t, err)
	assert.Equal(t, "bldx", got)
}
