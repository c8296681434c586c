package main

import (
	"context"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/app"
	tmsbot "github.com/NikitaDmitryuk/telegram-media-downloader/internal/bot"
	tmsconfig "github.com/NikitaDmitryuk/telegram-media-downloader/internal/config"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/database"
	tmsfactory "github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader/factory"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/handlers/common"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/lang"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/ratelimit"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/shutdown"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/transport/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

const shutdownTimeout = 2 * time.Minute

func main() {
	if err := tmsconfig.LoadEnvFile(".env"); err != nil {
		logutils.Log.WithError(err).Warn("Failed to load .env file")
	}

	config, err := tmsconfig.NewConfig()
	if err != nil {
		logutils.Log.WithError(err).Fatal("Failed to initialize configuration")
	}

	logutils.InitLogger(config.LogLevel)
	logutils.InitTelegramLogger(config.LogHTTPLevel)
	lang.SetupLang(config.Lang)

	logutils.Log.WithFields(map[string]any{
		"version":    Version,
		"build_time": BuildTime,
	}).Info("Starting Telegram Media Downloader")

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	db, err := database.NewDatabase(config)
	if err != nil {
		logutils.Log.WithError(err).Fatal("Failed to initialize the database")
	}

	tmsfactory.RunUpdatersOnStart(ctx, config)
	tmsfactory.StartPeriodicUpdaters(ctx, config)

	botInstance, err := tmsbot.InitBot(config)
	if err != nil {
		logutils.Log.WithError(err).Fatal("Bot initialization failed")
	}

	a := &app.App{
		Bot:        botInstance,
		Downloader: tmsfactory.NewDownloader(config),
		Links:      db,
		Config:     config,
		Limiter:    ratelimit.NewChatLimiter(config.LimitSettings.RateLimitPerMinute, ratelimit.DefaultBurst, nil),
	}

	poller := telegram.NewPoller(config.DownloadSettings.MaxConcurrentDownloads, func(ctx context.Context, update *tgbotapi.Update) {
		common.Router(ctx, a, update)
	})

	shutdownManager := shutdown.NewManager(shutdownTimeout)
	shutdownManager.Register(shutdown.Func{ServiceName: "database", Fn: func(context.Context) error {
		return db.Close()
	}})
	shutdownManager.Register(shutdown.Func{ServiceName: "update_handlers", Fn: poller.Wait})

	updates := botInstance.Api.GetUpdatesChan(telegram.NewUpdateConfig())
	logutils.Log.Info("Telegram Media Downloader started successfully")

	poller.Run(ctx, updates)

	logutils.Log.Info("Received shutdown signal, starting graceful shutdown...")
	botInstance.Api.StopReceivingUpdates()

	if err := shutdownManager.Shutdown(); err != nil {
		logutils.Log.WithError(err).Error("Graceful shutdown finished with errors")
	}
	logutils.Log.Info("Telegram Media Downloader shutdown complete")
}
