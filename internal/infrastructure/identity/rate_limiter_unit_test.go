//go:build unit
// +build unit

package identity

import (
	"testing"
	"time"

	"github.com/jtsigarra/xferdx/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter_AllowsWithinLimit(t *testing.T) {
	limiter := NewLoginLimiter(&config.AuthSettings{
		LoginRateLimit:         3,
		LoginRateWindowSeconds: 300,
	})

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("rmadrigal|10.0.0.1"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow("rmadrigal|10.0.0.1"))
}

func TestLoginLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewLoginLimiter(&config.AuthSettings{
		LoginRateLimit:         1,
		LoginRateWindowSeconds: 300,
	})

	assert.True(t, limiter.Allow("alice|10.0.0.1"))
	assert.False(t, limiter.Allow("alice|10.0.0.1"))
	assert.True(t, limiter.Allow("bob|10.0.0.1"))
	assert.True(t, limiter.Allow("alice|10.0.0.2"))
}

func TestLoginLimiter_WindowSlides(t *testing.T) {
	current := time.Now()
	limiter := &slidingWindowLimiter{
		attempts: make(map[string][]time.Time),
		limit:    2,
		window:   time.Minute,
		now:      func() time.Time { return current },
	}

	assert.True(t, limiter.Allow("key"))
	assert.True(t, limiter.Allow("key"))
	assert.False(t, limiter.Allow("key"))

	// Attempts fall out of the window as time advances
	current = current.Add(61 * time.Second)
	assert.True(t, limiter.Allow("key"))
}
