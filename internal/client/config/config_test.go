package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"healthportal"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:5000/api", cfg.ServerBaseURL)
	require.Equal(t, "healthportal.db", cfg.DatabasePath)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_Flags(t *testing.T) {
	setArgs(t, "-a", "http://portal.example.com/api", "-d", "custom.db", "-t", "30")

	cfg := LoadConfig()
	require.Equal(t, "http://portal.example.com/api", cfg.ServerBaseURL)
	require.Equal(t, "custom.db", cfg.DatabasePath)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Env(t *testing.T) {
	setArgs(t)
	t.Setenv("HP_SERVER_BASE_URL", "http://env.example.com/api")
	t.Setenv("HP_DATABASE_PATH", "env.db")
	t.Setenv("HP_REQUEST_TIMEOUT", "20s")
	t.Setenv("HP_LOG_LEVEL", "debug")

	cfg := LoadConfig()
	require.Equal(t, "http://env.example.com/api", cfg.ServerBaseURL)
	require.Equal(t, "env.db", cfg.DatabasePath)
	require.Equal(t, 20*time.Second, cfg.RequestTimeout)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_JsonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"server_base_url":"http://json.example.com/api","request_timeout":"45s"}`,
	), 0o600))

	setArgs(t, "-c", path)

	cfg := LoadConfig()
	require.Equal(t, "http://json.example.com/api", cfg.ServerBaseURL)
	require.Equal(t, 45*time.Second, cfg.RequestTimeout)
	// Fields the file leaves out keep their defaults.
	require.Equal(t, "healthportal.db", cfg.DatabasePath)
}

func TestLoadConfig_FlagsWinOverJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"server_base_url":"http://json.example.com/api"}`,
	), 0o600))

	setArgs(t, "-c", path, "-a", "http://flag.example.com/api")

	cfg := LoadConfig()
	require.Equal(t, "http://flag.example.com/api", cfg.ServerBaseURL)
}
