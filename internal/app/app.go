package app

import (
	tmsbot "github.com/NikitaDmitryuk/telegram-media-downloader/internal/bot"
	tmsconfig "github.com/NikitaDmitryuk/telegram-media-downloader/internal/config"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/database"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/downloader"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/ratelimit"
)

// App holds the dependencies shared by update handlers.
type App struct {
	Bot        tmsbot.Service
	Downloader downloader.Downloader
	Links      database.LinkStore
	Config     *tmsconfig.Config
	Limiter    *ratelimit.ChatLimiter
}
