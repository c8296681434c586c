package ratelimit

import (
	"sync"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/timeutil"
	"golang.org/x/time/rate"
)

const (
	DefaultBurst = 5
	idleAfter    = 30 * time.Minute
	pruneAbove   = 1024
)

// ChatLimiter applies one token bucket per chat.
type ChatLimiter struct {
	perMinute int
	burst     int
	clock     timeutil.TimeProvider

	mu      sync.Mutex
	buckets map[int64]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewChatLimiter returns a limiter allowing perMinute requests per chat.
// perMinute <= 0 disables limiting.
func NewChatLimiter(perMinute, burst int, clock timeutil.TimeProvider) *ChatLimiter {
	if burst <= 0 {
		burst = DefaultBurst
	}
	if clock == nil {
		clock = timeutil.NewSystemTimeProvider()
	}
	return &ChatLimiter{
		perMinute: perMinute,
		burst:     burst,
		clock:     clock,
		buckets:   make(map[int64]*bucket),
	}
}

func (l *ChatLimiter) Allow(chatID int64) bool {
	if l == nil || l.perMinute <= 0 {
		return true
	}

	now := l.clock.Now()

	l.mu.Lock()
	b, ok := l.buckets[chatID]
	if !ok {
		if len(l.buckets) >= pruneAbove {
			l.pruneLocked(now)
		}
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60), l.burst)}
		l.buckets[chatID] = b
	}
	b.lastSeen = now
	allowed := b.limiter.AllowN(now, 1)
	l.mu.Unlock()

	if !allowed {
		logutils.Log.WithField("chat_id", chatID).Debug("Rate limit exceeded")
	}
	return allowed
}

func (l *ChatLimiter) pruneLocked(now time.Time) {
	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleAfter {
			delete(l.buckets, id)
		}
	}
}
