package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/goseed/pkg/constants"
	"github.com/agentstation/goseed/pkg/errors"
)

// clearEnv blanks every SEED_* variable; viper ignores empty values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(k), "")
	}
}

func TestLoadJSON(t *testing.T) {
	clearEnv(t)

	conn, err := Load("testdata/seed-config.json")
	require.NoError(t, err)
	assert.Equal(t, "seed_api_test", conn.Name)
	assert.Equal(t, "user@seed-platform.org", conn.Username)
	assert.Equal(t, 8000, conn.Port)
	assert.False(t, conn.UseSSL)
	assert.Equal(t, constants.DefaultHTTPTimeout, conn.Timeout)
	assert.Equal(t, "http://127.0.0.1:8000", conn.URL())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)

	conn, err := Load("testdata/seed-config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, conn.Timeout)
	assert.Equal(t, "https://seed.example.com", conn.URL())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEED_API_KEY", "from-env")
	t.Setenv("SEED_PORT", "443")

	conn, err := Load("testdata/seed-config.json")
	require.NoError(t, err)
	assert.Equal(t, "from-env", conn.APIKey)
	assert.Equal(t, "http://127.0.0.1:443", conn.URL())
}

func TestLoadEnvironmentOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEED_BASE_URL", "https://seed.example.org/")
	t.Setenv("SEED_USERNAME", "env-user")
	t.Setenv("SEED_API_KEY", "env-key")

	conn, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "seed", conn.Name)
	assert.Equal(t, "https://seed.example.org", conn.URL())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load("testdata/absent.json")
		var cfgErr *errors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Error(), "not found")
	})

	t.Run("missing required settings", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"base_url":"http://localhost"}`), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing username, api_key")
	})

	t.Run("malformed file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"base_url":`), 0o600))

		_, err := Load(path)
		var cfgErr *errors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Error(), "cannot read")
	})
}

func TestConnectionValidate(t *testing.T) {
	conn := &Connection{BaseURL: "http://x", Username: "u", APIKey: "k", Port: 70000}
	assert.Error(t, conn.Validate())

	conn.Port = 0
	assert.NoError(t, conn.Validate())
	assert.Equal(t, "http://x", conn.URL())
}
