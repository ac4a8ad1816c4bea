package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "PUBLIC_DIR", "SUBSTREAMS_BIN", "SUBSTREAMS_ENDPOINT",
		"SUBSTREAMS_PACKAGE", "SUBSTREAMS_MODULE", "SUBSTREAMS_START_BLOCK",
		"SUBSTREAMS_STOP_BLOCK", "SUBSTREAMS_RUN_TIMEOUT", "SUBSTREAMS_MAX_CONCURRENT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3002", c.Port)
	assert.Equal(t, DefaultPublicDir, c.PublicDir)
	assert.Equal(t, DefaultBinary, c.Binary)
	assert.Equal(t, BuiltinDefaults(), c.Defaults())
	assert.Zero(t, c.RunTimeout)
	assert.Zero(t, c.MaxConcurrent)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SUBSTREAMS_ENDPOINT", "polygon.streamingfast.io:443")
	t.Setenv("SUBSTREAMS_START_BLOCK", "17000000")
	t.Setenv("SUBSTREAMS_RUN_TIMEOUT", "90s")
	t.Setenv("SUBSTREAMS_MAX_CONCURRENT", "4")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, "polygon.streamingfast.io:443", c.Endpoint)
	assert.Equal(t, "17000000", c.StartBlock)
	assert.Equal(t, 90*time.Second, c.RunTimeout)
	assert.Equal(t, 4, c.MaxConcurrent)
}

func TestLoad_BlankStringsUseBuiltins(t *testing.T) {
	t.Setenv("SUBSTREAMS_ENDPOINT", "  ")
	t.Setenv("SUBSTREAMS_MODULE", "")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, c.Endpoint)
	assert.Equal(t, DefaultModule, c.Module)
}

func TestLoad_RejectsNegativeConcurrency(t *testing.T) {
	t.Setenv("SUBSTREAMS_MAX_CONCURRENT", "-1")

	_, err := Load()
	require.Error(t, err)
}

func TestResolve_Precedence(t *testing.T) {
	env := Defaults{
		Endpoint:   "env-endpoint:443",
		Package:    "env-pkg@v1",
		Module:     "env_module",
		StartBlock: "100",
		StopBlock:  "",
	}

	tests := []struct {
		name string
		in   Overrides
		want Params
	}{
		{
			name: "environment wins over builtin",
			in:   Overrides{},
			want: Params{
				Endpoint:   "env-endpoint:443",
				Package:    "env-pkg@v1",
				Module:     "env_module",
				StartBlock: "100",
				StopBlock:  DefaultStopBlock,
			},
		},
		{
			name: "request wins over environment",
			in: Overrides{
				Endpoint:   "req:443",
				Package:    "req-pkg",
				Module:     "req_module",
				StartBlock: "5",
				StopBlock:  "10",
			},
			want: Params{
				Endpoint:   "req:443",
				Package:    "req-pkg",
				Module:     "req_module",
				StartBlock: "5",
				StopBlock:  "10",
			},
		},
		{
			name: "zero start block from request is kept",
			in:   Overrides{StartBlock: "0"},
			want: Params{
				Endpoint:   "env-endpoint:443",
				Package:    "env-pkg@v1",
				Module:     "env_module",
				StartBlock: "0",
				StopBlock:  DefaultStopBlock,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, env.Resolve(tt.in))
		})
	}
}

func TestResolve_EmptyDefaultsFallBackToBuiltins(t *testing.T) {
	got := Defaults{}.Resolve(Overrides{})
	want := BuiltinDefaults().Resolve(Overrides{})
	assert.Equal(t, want, got)
}

func TestLoadDotEnv_FillsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=4000\nSUBSTREAMS_MODULE=map_from_file\n# comment\nSUBSTREAMS_STOP_BLOCK=+10\n"), 0644))

	t.Setenv("PORT", "5000")
	for _, key := range []string{"SUBSTREAMS_MODULE", "SUBSTREAMS_STOP_BLOCK"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	require.NoError(t, LoadDotEnv(path))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", c.Port, "environment wins over the file")
	assert.Equal(t, "map_from_file", c.Module)
	assert.Equal(t, "+10", c.StopBlock)
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadWithEnvFile_UsesEnvFileVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.env")
	require.NoError(t, os.WriteFile(path, []byte("SUBSTREAMS_PACKAGE=from-file@v1\n"), 0644))

	t.Setenv(EnvFileVar, path)
	t.Setenv("SUBSTREAMS_PACKAGE", "")
	os.Unsetenv("SUBSTREAMS_PACKAGE")

	c, err := LoadWithEnvFile()
	require.NoError(t, err)
	assert.Equal(t, "from-file@v1", c.Package)
}
