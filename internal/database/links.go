package database

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const linkKeyLength = 8

// LinkKey is the short key stored in a callback payload for platform and url.
func LinkKey(url, platform string) string {
	sum := md5.Sum([]byte(platform + "|" + url))
	return hex.EncodeToString(sum[:])[:linkKeyLength]
}

// SaveLink stores url under its key, refreshing the timestamp when it already exists.
// Expired links are purged first.
func (s *SQLiteDatabase) SaveLink(ctx context.Context, url, platform string) (string, error) {
	if _, err := s.PurgeExpired(ctx); err != nil {
		logutils.Log.WithError(err).Warn("Failed to purge expired callback links")
	}

	link := CallbackLink{
		Key:      LinkKey(url, platform),
		URL:      url,
		Platform: platform,
		StoredAt: s.clock.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&link).Error
	if err != nil {
		return "", fmt.Errorf("save callback link: %w", err)
	}
	return link.Key, nil
}

// GetLink returns the link for key, or utils.ErrLinkExpired when it is missing or older than the TTL.
func (s *SQLiteDatabase) GetLink(ctx context.Context, key string) (CallbackLink, error) {
	if key == "" {
		return CallbackLink{}, utils.ErrLinkExpired
	}
	var link CallbackLink
	err := s.db.WithContext(ctx).Where(&CallbackLink{Key: key}).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CallbackLink{}, utils.ErrLinkExpired
	}
	if err != nil {
		return CallbackLink{}, fmt.Errorf("load callback link: %w", err)
	}
	if s.ttl > 0 && s.clock.Now().Sub(link.StoredAt) > s.ttl {
		return CallbackLink{}, utils.ErrLinkExpired
	}
	return link, nil
}

func (s *SQLiteDatabase) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.clock.Now().Add(-s.ttl)
	res := s.db.WithContext(ctx).Where("stored_at < ?", cutoff).Delete(&CallbackLink{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		logutils.Log.WithField("count", res.RowsAffected).Debug("Purged expired callback links")
	}
	return res.RowsAffected, nil
}
