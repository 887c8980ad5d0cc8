package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		scope    string
		client   string
		expected string
	}{
		{"ipv4", "login", "203.0.113.7", "ratelimit:login:203.0.113.7"},
		{"ipv6", "forgot-password", "2001:db8::1", "ratelimit:forgot-password:2001:db8::1"},
		{"empty client", "register", "", "ratelimit:register:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RateLimitKey(tt.scope, tt.client))
		})
	}
}

func TestNewRedis(t *testing.T) {
	t.Run("rejects malformed uri", func(t *testing.T) {
		r, err := NewRedis("redis://:bad:port:here/x/y")

		assert.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("fails when server is unreachable", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping dial timeout in short mode")
		}
		r, err := NewRedis("127.0.0.1:1")

		require.Error(t, err)
		assert.Nil(t, r)
	})
}
