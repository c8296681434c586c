package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/utils"
	"github.com/joho/godotenv"
)

const (
	DefaultDataDir                = "data"
	DefaultYtdlpBinary            = "yt-dlp"
	DefaultSocketTimeout          = 24 * time.Second
	DefaultRetries                = 3
	DefaultDownloadTimeout        = 10 * time.Minute
	DefaultMaxConcurrentDownloads = 3
	// Bot API refuses uploads above 50 MB.
	DefaultMaxUploadSize      = 50 * 1024 * 1024
	DefaultRateLimitPerMinute = 20
	DefaultCallbackCacheTTL   = time.Hour
)

type Config struct {
	BotToken     string
	DataDir      string
	CookiesFile  string
	LogLevel     string
	LogHTTPLevel string
	Lang         string

	DownloadSettings DownloadConfig
	YtdlpSettings    YtdlpConfig
	LimitSettings    LimitConfig
}

type DownloadConfig struct {
	MaxConcurrentDownloads int
	DownloadTimeout        time.Duration
	MaxUploadSize          int64
}

type YtdlpConfig struct {
	BinaryPath     string
	SocketTimeout  time.Duration
	Retries        int
	AutoUpdate     bool
	UpdateInterval time.Duration
}

type LimitConfig struct {
	RateLimitPerMinute int
	CallbackCacheTTL   time.Duration
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// LoadEnvFile loads variables from a .env file when one exists. Variables already
// present in the environment win.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func NewConfig() (*Config, error) {
	dataDir := getEnv("DATA_DIR", DefaultDataDir)

	config := &Config{
		BotToken:     strings.TrimSpace(getEnv("TELEGRAM_BOT_TOKEN", "")),
		DataDir:      dataDir,
		CookiesFile:  getEnv("COOKIES_FILE", filepath.Join(dataDir, "cookies.txt")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogHTTPLevel: getEnv("LOG_HTTP_LEVEL", "warn"),
		Lang:         getEnv("BOT_LANG", "en"),

		DownloadSettings: DownloadConfig{
			MaxConcurrentDownloads: getEnvInt("MAX_CONCURRENT_DOWNLOADS", DefaultMaxConcurrentDownloads),
			DownloadTimeout:        getEnvDuration("DOWNLOAD_TIMEOUT", DefaultDownloadTimeout),
			MaxUploadSize:          getEnvInt64("MAX_UPLOAD_SIZE", DefaultMaxUploadSize),
		},

		YtdlpSettings: YtdlpConfig{
			BinaryPath:     getEnv("YTDLP_PATH", DefaultYtdlpBinary),
			SocketTimeout:  getEnvDuration("YTDLP_SOCKET_TIMEOUT", DefaultSocketTimeout),
			Retries:        getEnvInt("YTDLP_RETRIES", DefaultRetries),
			AutoUpdate:     getEnvBool("YTDLP_AUTO_UPDATE", false),
			UpdateInterval: getEnvDuration("YTDLP_UPDATE_INTERVAL", 0),
		},

		LimitSettings: LimitConfig{
			RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", DefaultRateLimitPerMinute),
			CallbackCacheTTL:   getEnvDuration("CALLBACK_CACHE_TTL", DefaultCallbackCacheTTL),
		},
	}

	if err := config.validate(); err != nil {
		return nil, utils.WrapError(err, "configuration validation failed", map[string]any{
			"data_dir": config.DataDir,
		})
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.BotToken == "" {
		return utils.WrapError(utils.ErrConfigurationError, "missing required environment variables", map[string]any{
			"missing_fields": []string{"TELEGRAM_BOT_TOKEN"},
		})
	}

	if c.DataDir == "" {
		return utils.WrapError(utils.ErrConfigurationError, "data directory cannot be empty", nil)
	}

	if c.DownloadSettings.MaxConcurrentDownloads <= 0 {
		return utils.WrapError(utils.ErrConfigurationError, "max concurrent downloads must be positive", nil)
	}

	if c.DownloadSettings.DownloadTimeout <= 0 {
		return utils.WrapError(utils.ErrConfigurationError, "download timeout must be positive", nil)
	}

	if c.DownloadSettings.MaxUploadSize <= 0 {
		return utils.WrapError(utils.ErrConfigurationError, "max upload size must be positive", nil)
	}

	if c.YtdlpSettings.Retries < 0 {
		return utils.WrapError(utils.ErrConfigurationError, "yt-dlp retries cannot be negative", nil)
	}

	if c.LimitSettings.RateLimitPerMinute < 0 {
		return utils.WrapError(utils.ErrConfigurationError, "rate limit cannot be negative", nil)
	}

	return nil
}

// MediaDir is where per-job download directories are created.
func (c *Config) MediaDir() string {
	return filepath.Join(c.DataDir, "media")
}

// DatabasePath is the SQLite file holding callback links.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "bot.db")
}

// CookiesFileIfExists returns the cookie file path, or "" when the file is absent.
func (c *Config) CookiesFileIfExists() string {
	if c.CookiesFile == "" {
		return ""
	}
	if info, err := os.Stat(c.CookiesFile); err != nil || info.IsDir() {
		return ""
	}
	return c.CookiesFile
}
