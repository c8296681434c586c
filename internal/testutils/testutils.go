package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/config"
)

// TestConfig creates a configuration suitable for testing
func TestConfig(tempDir string) *config.Config {
	return &config.Config{
		BotToken:     "test-bot-token",
		DataDir:      tempDir,
		CookiesFile:  filepath.Join(tempDir, "cookies.txt"),
		LogLevel:     "debug",
		LogHTTPLevel: "warn",
		Lang:         "en",

		DownloadSettings: config.DownloadConfig{
			MaxConcurrentDownloads: 2,
			DownloadTimeout:        30 * time.Second,
			MaxUploadSize:          config.DefaultMaxUploadSize,
		},

		YtdlpSettings: config.YtdlpConfig{
			BinaryPath:    config.DefaultYtdlpBinary,
			SocketTimeout: config.DefaultSocketTimeout,
			Retries:       config.DefaultRetries,
		},

		LimitSettings: config.LimitConfig{
			RateLimitPerMinute: 0,
			CallbackCacheTTL:   time.Hour,
		},
	}
}

// TempDir creates a temporary directory for tests
func TempDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
