package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"misleadviz/internal/config"
	"misleadviz/internal/fixtures"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "misleadviz dev\n", out)
}

func TestFixturesYAML(t *testing.T) {
	out, err := execute(t, "fixtures", "--format", "yaml", "--dataset", "polling")
	require.NoError(t, err)

	var b fixtures.Bundle
	require.NoError(t, yaml.Unmarshal([]byte(out), &b))
	require.NotNil(t, b.Polling)
	assert.Equal(t, fixtures.PollingYears, b.Polling.Years)
	assert.Empty(t, b.Income)
}

func TestFixturesUnknownDataset(t *testing.T) {
	_, err := execute(t, "fixtures", "--dataset", "weather")
	assert.ErrorContains(t, err, `unknown dataset "weather"`)
}

func TestServeRejectsInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  ttl: 0s\n"), 0o600))

	_, err := execute(t, "serve", "--config", path)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestServeReadsDotenv(t *testing.T) {
	const key = "MISLEADVIZ_ACTIONS_BURST"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	env := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(env, []byte(key+"=0\n"), 0o600))

	_, err := execute(t, "serve", "--env-file", env)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestMissingDotenvIsIgnored(t *testing.T) {
	_, err := execute(t, "version", "--env-file", "does-not-exist.env")
	assert.NoError(t, err)
}
