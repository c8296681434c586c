package database

import (
	"fmt"
	"os"
	"time"

	tmsconfig "github.com/NikitaDmitryuk/telegram-media-downloader/internal/config"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/timeutil"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type SQLiteDatabase struct {
	db    *gorm.DB
	ttl   time.Duration
	clock timeutil.TimeProvider
}

func NewSQLiteDatabase(ttl time.Duration) *SQLiteDatabase {
	return &SQLiteDatabase{
		ttl:   ttl,
		clock: timeutil.NewSystemTimeProvider(),
	}
}

func (s *SQLiteDatabase) Init(config *tmsconfig.Config) error {
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return s.open(config.DatabasePath())
}

func (s *SQLiteDatabase) open(dsn string) error {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) runMigrations() error {
	if err := s.db.AutoMigrate(&CallbackLink{}); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
