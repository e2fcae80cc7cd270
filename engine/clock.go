package engine

import (
	"sync"
	"time"
)

// TimeProvider supplies the monotonic clock the Engine derives delta
// time from. The default implementation reads the system clock; tests
// substitute MockTimeProvider.
type TimeProvider interface {
	Now() time.Time
}

// SystemClock is the real time source with monotonic clock readings.
type SystemClock struct{}

// Now returns the current time with a monotonic clock reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a controllable time source for deterministic
// tests.
type MockTimeProvider struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockTimeProvider creates a mock starting at the given time.
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{current: start}
}

// Now returns the current mocked time.
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// SetTime sets the mocked time.
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the mocked time forward by d.
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
