package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifications_Expire(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	n := newNotifications()
	n.now = func() time.Time { return now }

	n.Add(LevelError, "old")
	now = now.Add(3 * time.Second)
	n.Add(LevelInfo, "new")

	assert.True(t, n.Expire(2*time.Second))
	assert.Len(t, n.All(), 1)
	assert.Equal(t, "new", n.All()[0].Message)

	assert.False(t, n.Expire(2*time.Second))

	n.Clear()
	assert.False(t, n.HasAny())
}
