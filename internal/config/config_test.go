package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{"APP_ENV", "PORT", "STORE_DRIVER", "DB_URL", "DB_NAME", "SQLITE_PATH", "LOG_DEV"}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Options{EnvDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "comments", cfg.DBName)
	assert.True(t, cfg.DevLogging())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", `
env: production
port: "9000"
store: mongo
db_url: mongodb://db:27017
db_name: prod_comments
`)

	cfg, err := Load(Options{File: file, EnvDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, "mongodb://db:27017", cfg.DBURL)
	assert.Equal(t, "prod_comments", cfg.DBName)
	assert.False(t, cfg.DevLogging())
}

func TestLoadDotenvForEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env.test", "DB_NAME=comments_test\nPORT=9100\n")
	writeFile(t, dir, ".env.development", "DB_NAME=wrong\n")
	t.Setenv("APP_ENV", "test")

	cfg, err := Load(Options{EnvDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "comments_test", cfg.DBName)
	assert.Equal(t, "9100", cfg.Port)
	assert.False(t, cfg.DevLogging())
}

func TestEnvironmentBeatsDotenv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env.development", "DB_NAME=from_file\n")
	t.Setenv("DB_NAME", "from_env")

	cfg, err := Load(Options{EnvDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.DBName)
}

func TestEnvironmentBeatsYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", "port: \"9000\"\nlog_dev: true\n")
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_DEV", "false")

	cfg, err := Load(Options{File: file, EnvDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.False(t, cfg.DevLogging())
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(Options{File: filepath.Join(dir, "missing.yaml"), EnvDir: dir})
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "port: [unclosed\n")
	_, err = Load(Options{File: bad, EnvDir: dir})
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "postgres")
	_, err = Load(Options{EnvDir: dir})
	assert.ErrorContains(t, err, "unknown store")
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	cfg.Store = StoreMongo
	cfg.DBURL = ""
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())
}
