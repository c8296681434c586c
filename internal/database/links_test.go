package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/timeutil"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T, ttl time.Duration) (*SQLiteDatabase, *timeutil.MockTimeProvider) {
	t.Helper()
	clock := timeutil.NewMockTimeProvider(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s := NewSQLiteDatabase(ttl)
	s.clock = clock
	require.NoError(t, s.open(":memory:"))
	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = s.Close() })
	return s, clock
}

func TestLinkKey(t *testing.T) {
	key := LinkKey("https://youtu.be/abc", "youtube")
	assert.Len(t, key, linkKeyLength)
	assert.Equal(t, key, LinkKey("https://youtu.be/abc", "youtube"))
	assert.NotEqual(t, key, LinkKey("https://youtu.be/abc", "tiktok"))
}

func TestSaveAndGetLink(t *testing.T) {
	s, _ := newTestDatabase(t, time.Hour)
	ctx := context.Background()
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLlongplaylistidentifier0123456789"

	key, err := s.SaveLink(ctx, url, "youtube")
	require.NoError(t, err)
	assert.Equal(t, LinkKey(url, "youtube"), key)

	link, err := s.GetLink(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, url, link.URL)
	assert.Equal(t, "youtube", link.Platform)
}

func TestSaveLink_SameURLTwice(t *testing.T) {
	s, clock := newTestDatabase(t, time.Hour)
	ctx := context.Background()

	first, err := s.SaveLink(ctx, "https://vm.tiktok.com/x", "tiktok")
	require.NoError(t, err)
	clock.AdvanceTime(50 * time.Minute)
	second, err := s.SaveLink(ctx, "https://vm.tiktok.com/x", "tiktok")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The second save refreshed the timestamp.
	clock.AdvanceTime(30 * time.Minute)
	_, err = s.GetLink(ctx, first)
	assert.NoError(t, err)
}

func TestGetLink_Expired(t *testing.T) {
	s, clock := newTestDatabase(t, time.Hour)
	ctx := context.Background()

	key, err := s.SaveLink(ctx, "https://x.com/user/status/1", "twitter")
	require.NoError(t, err)

	clock.AdvanceTime(time.Hour + time.Second)
	_, err = s.GetLink(ctx, key)
	assert.True(t, errors.Is(err, utils.ErrLinkExpired))
}

func TestGetLink_Unknown(t *testing.T) {
	s, _ := newTestDatabase(t, time.Hour)
	_, err := s.GetLink(context.Background(), "deadbeef")
	assert.True(t, errors.Is(err, utils.ErrLinkExpired))
}

func TestPurgeExpired(t *testing.T) {
	s, clock := newTestDatabase(t, time.Hour)
	ctx := context.Background()

	_, err := s.SaveLink(ctx, "https://pin.it/old", "pinterest")
	require.NoError(t, err)
	clock.AdvanceTime(2 * time.Hour)
	fresh, err := s.SaveLink(ctx, "https://pin.it/new", "pinterest")
	require.NoError(t, err)

	var count int64
	require.NoError(t, s.db.Model(&CallbackLink{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = s.GetLink(ctx, fresh)
	assert.NoError(t, err)
}
