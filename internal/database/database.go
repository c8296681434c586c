package database

import (
	"context"

	tmsconfig "github.com/NikitaDmitryuk/telegram-media-downloader/internal/config"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
)

// LinkStore persists callback links behind short keys.
type LinkStore interface {
	SaveLink(ctx context.Context, url, platform string) (string, error)
	GetLink(ctx context.Context, key string) (CallbackLink, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// Database is the full storage interface.
type Database interface {
	Init(config *tmsconfig.Config) error
	Close() error
	LinkStore
}

func NewDatabase(config *tmsconfig.Config) (Database, error) {
	database := NewSQLiteDatabase(config.LimitSettings.CallbackCacheTTL)
	if err := database.Init(config); err != nil {
		logutils.Log.WithError(err).Error("Failed to initialize the database")
		return nil, err
	}

	logutils.Log.Info("Database initialized successfully")
	return database, nil
}
