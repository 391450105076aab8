package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"what2watch/config"
)

func newLimiter(perMinute, perDay int) *ChatQuotaLimiter {
	cfg := config.AppConfig{}
	cfg.ChatQuota.RequestsPerMinute = perMinute
	cfg.ChatQuota.RequestsPerDay = perDay
	return NewChatQuotaLimiterFromConfig(cfg)
}

func TestTryReserveMinuteLimit(t *testing.T) {
	l := newLimiter(2, 0)

	assert.True(t, l.TryReserve())
	assert.True(t, l.TryReserve())
	assert.False(t, l.TryReserve())
}

func TestTryReserveDailyLimit(t *testing.T) {
	l := newLimiter(0, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.TryReserve())
	}
	assert.False(t, l.TryReserve())
}

func TestTryReserveUnlimitedWhenZero(t *testing.T) {
	l := newLimiter(0, 0)

	for i := 0; i < 100; i++ {
		assert.True(t, l.TryReserve())
	}
}

func TestNegativeConfigTreatedAsUnlimited(t *testing.T) {
	l := newLimiter(-1, -1)

	assert.True(t, l.TryReserve())
	assert.True(t, l.TryReserve())
}
