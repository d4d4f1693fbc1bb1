package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", c.AppEnv)
	assert.Equal(t, 3000, c.Port)
	assert.Equal(t, ":3000", c.HTTPAddr())
	assert.Equal(t, "easybooking", c.DBName)
	assert.Equal(t, DefaultSessionSecret, c.SessionSecret)
	assert.Equal(t, 6*time.Hour, c.SessionTTL)
	assert.Equal(t, "admin12345", c.AdminPassword)
	assert.True(t, c.AuthEnabled)
	assert.Equal(t, 15*time.Minute, c.CacheTTL())
	assert.False(t, c.Production())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("DB_NAME", "bookings")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	c, err := Load()
	require.NoError(t, err)
	assert.True(t, c.Production())
	assert.Equal(t, 8081, c.Port)
	assert.Equal(t, "bookings", c.DBName)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.False(t, c.AuthEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_name: fromfile\nport: 4000\n"), 0o644))
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "5000")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fromfile", c.DBName)
	assert.Equal(t, 5000, c.Port)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "0")
	t.Setenv("SESSION_TTL", "-1h")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "SESSION_TTL")
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
