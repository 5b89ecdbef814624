// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaultsFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://crm@localhost/crm
redis:
  url: redis://localhost:6379/0
server:
  port: 9090
import:
  fetch_timeout: 10s
`)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TYPEFORM_WEBHOOK_SECRET", "shh")

	c, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, 10*time.Second, c.Import.FetchTimeout)
	assert.Equal(t, int64(25<<20), c.Import.MaxFileBytes)
	assert.Equal(t, "shh", c.Import.WebhookSecret)
	assert.Equal(t, "0.0.0.0:9090", c.Server.Address())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	path := writeConfig(t, `
redis:
  url: redis://localhost:6379/0
`)
	t.Setenv("DATABASE_URL", "")

	_, err := load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidateRejectsWildcardWithCredentials(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://crm@localhost/crm
redis:
  url: redis://localhost:6379/0
cors:
  allowed_origins: ["*"]
  allow_credentials: true
`)

	_, err := load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wildcard")
}
