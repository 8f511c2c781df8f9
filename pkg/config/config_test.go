package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "POSTGRES_CONN_STR=postgres://from-dotenv\n" +
		"MONGO_URI=mongodb://from-dotenv\n" +
		"GRANT_FN_COMMENTS=fn-comments-dotenv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Chdir(dir)
	t.Cleanup(func() {
		os.Unsetenv("POSTGRES_CONN_STR")
		os.Unsetenv("MONGO_URI")
		os.Unsetenv("GRANT_FN_COMMENTS")
	})

	cfg := Load()
	assert.Equal(t, "postgres://from-dotenv", cfg.PostgresConnStr)
	assert.Equal(t, "mongodb://from-dotenv", cfg.MongoURI)
	assert.Equal(t, "fn-comments-dotenv", cfg.GrantFnComments)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 100, cfg.PingBatchSize)
}

func TestLoadEnvOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9999\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("PORT", "7777")

	cfg := Load()
	assert.Equal(t, "7777", cfg.Port)
}
