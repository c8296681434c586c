package ratelimit

import (
	"testing"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/timeutil"
	"github.com/stretchr/testify/assert"
)

func TestChatLimiter_BurstThenRefill(t *testing.T) {
	clock := timeutil.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	limiter := NewChatLimiter(60, 3, clock)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(1), "request %d within burst", i)
	}
	assert.False(t, limiter.Allow(1))

	// 60 per minute refills one token per second.
	clock.AdvanceTime(time.Second)
	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1))
}

func TestChatLimiter_ChatsAreIndependent(t *testing.T) {
	clock := timeutil.NewMockTimeProvider(time.Now())
	limiter := NewChatLimiter(1, 1, clock)

	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1))
	assert.True(t, limiter.Allow(2))
}

func TestChatLimiter_Disabled(t *testing.T) {
	limiter := NewChatLimiter(0, 0, nil)
	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow(42))
	}

	var nilLimiter *ChatLimiter
	assert.True(t, nilLimiter.Allow(42))
}

func TestChatLimiter_PrunesIdleChats(t *testing.T) {
	clock := timeutil.NewMockTimeProvider(time.Now())
	limiter := NewChatLimiter(60, 1, clock)

	for id := int64(0); id < pruneAbove; id++ {
		limiter.Allow(id)
	}
	clock.AdvanceTime(idleAfter + time.Minute)
	limiter.Allow(pruneAbove + 1)

	assert.Len(t, limiter.buckets, 1)
}
