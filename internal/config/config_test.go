package config

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"TELEGRAM_BOT_TOKEN",
	"DATA_DIR",
	"COOKIES_FILE",
	"MAX_CONCURRENT_DOWNLOADS",
	"DOWNLOAD_TIMEOUT",
	"MAX_UPLOAD_SIZE",
	"YTDLP_RETRIES",
	"RATE_LIMIT_PER_MINUTE",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expectError bool
	}{
		{
			name:        "Valid configuration",
			env:         map[string]string{"TELEGRAM_BOT_TOKEN": "test-token"},
			expectError: false,
		},
		{
			name:        "Missing bot token",
			env:         map[string]string{},
			expectError: true,
		},
		{
			name:        "Blank bot token",
			env:         map[string]string{"TELEGRAM_BOT_TOKEN": "   "},
			expectError: true,
		},
		{
			name: "Invalid download settings",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN":       "test-token",
				"MAX_CONCURRENT_DOWNLOADS": "0",
			},
			expectError: true,
		},
		{
			name: "Negative retries",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "test-token",
				"YTDLP_RETRIES":      "-1",
			},
			expectError: true,
		},
		{
			name: "Zero upload size",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "test-token",
				"MAX_UPLOAD_SIZE":    "0",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			config, err := NewConfig()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "configuration validation failed")
				assert.True(t, errors.Is(err, utils.ErrConfigurationError))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, config)
		})
	}
}

func TestConfigValidation_LeavesLoggingToCaller(t *testing.T) {
	clearConfigEnv(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	_, err := NewConfig()
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	config, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-token", config.BotToken)
	assert.Equal(t, DefaultDataDir, config.DataDir)
	assert.Equal(t, filepath.Join(DefaultDataDir, "cookies.txt"), config.CookiesFile)
	assert.Equal(t, filepath.Join(DefaultDataDir, "media"), config.MediaDir())
	assert.Equal(t, DefaultMaxConcurrentDownloads, config.DownloadSettings.MaxConcurrentDownloads)
	assert.Equal(t, DefaultDownloadTimeout, config.DownloadSettings.DownloadTimeout)
	assert.Equal(t, int64(DefaultMaxUploadSize), config.DownloadSettings.MaxUploadSize)
	assert.Equal(t, DefaultSocketTimeout, config.YtdlpSettings.SocketTimeout)
	assert.Equal(t, DefaultRetries, config.YtdlpSettings.Retries)
	assert.Equal(t, DefaultYtdlpBinary, config.YtdlpSettings.BinaryPath)
	assert.Equal(t, time.Hour, config.LimitSettings.CallbackCacheTTL)
}

func TestConfigIgnoresMalformedNumbers(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("MAX_CONCURRENT_DOWNLOADS", "many")
	t.Setenv("DOWNLOAD_TIMEOUT", "soon")

	config, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxConcurrentDownloads, config.DownloadSettings.MaxConcurrentDownloads)
	assert.Equal(t, DefaultDownloadTimeout, config.DownloadSettings.DownloadTimeout)
}

func TestCookiesFileIfExists(t *testing.T) {
	dir := t.TempDir()
	cookies := filepath.Join(dir, "cookies.txt")
	config := &Config{CookiesFile: cookies}

	assert.Empty(t, config.CookiesFileIfExists())

	require.NoError(t, os.WriteFile(cookies, []byte("# Netscape HTTP Cookie File\n"), 0o600))
	assert.Equal(t, cookies, config.CookiesFileIfExists())

	config.CookiesFile = dir
	assert.Empty(t, config.CookiesFileIfExists())
}

func TestLoadEnvFile(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()

	require.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))

	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("TELEGRAM_BOT_TOKEN=from-dotenv\n"), 0o600))
	require.NoError(t, LoadEnvFile(envPath))
	t.Cleanup(func() { os.Unsetenv("TELEGRAM_BOT_TOKEN") })

	config, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", config.BotToken)
}
