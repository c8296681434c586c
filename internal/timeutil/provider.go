package timeutil

import (
	"sync"
	"time"
)

// TimeProvider is the clock used by TTL and rate-limit code.
type TimeProvider interface {
	Now() time.Time
}

type SystemTimeProvider struct{}

func NewSystemTimeProvider() TimeProvider {
	return SystemTimeProvider{}
}

func (SystemTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually advanced clock for tests.
type MockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
}

func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

func (m *MockTimeProvider) AdvanceTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(duration)
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}
