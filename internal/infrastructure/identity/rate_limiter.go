package identity

import (
	"sync"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
)

type slidingWindowLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

// NewLoginLimiter creates an in-memory sliding window LoginLimiter. Keys are
// typically username plus client address.
func NewLoginLimiter(settings *config.AuthSettings) users.LoginLimiter {
	return &slidingWindowLimiter{
		attempts: make(map[string][]time.Time),
		limit:    settings.LoginRateLimit,
		window:   time.Duration(settings.LoginRateWindowSeconds) * time.Second,
		now:      time.Now,
	}
}

func (l *slidingWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.attempts[key][:0]
	for _, at := range l.attempts[key] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	if len(kept) >= l.limit {
		l.attempts[key] = kept
		return false
	}

	l.attempts[key] = append(kept, now)
	return true
}
