package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenExpired(t *testing.T) {
	now := time.Now().UTC()
	live := Token{ExpiresAt: now.Add(time.Minute)}
	dead := Token{ExpiresAt: now.Add(-time.Minute)}

	assert.False(t, live.Expired(now))
	assert.True(t, dead.Expired(now))

	// Active and expired are independent states.
	activeButDead := Token{Active: true, ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, activeButDead.Expired(now))
}
