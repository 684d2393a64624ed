package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	base, max := time.Second, 30*time.Second

	assert.Equal(t, time.Second, Backoff(base, max, 0))
	assert.Equal(t, 4*time.Second, Backoff(base, max, 2))
	assert.Equal(t, max, Backoff(base, max, 5))
	assert.Equal(t, max, Backoff(base, max, 100))
}

func TestDurationWithRand(t *testing.T) {
	d := 10 * time.Second

	assert.Equal(t, d, DurationWithRand(d, DefaultJitter, func() float64 { return 0 }))
	assert.Equal(t, 15*time.Second, DurationWithRand(d, DefaultJitter, func() float64 { return 1 }))
	assert.Equal(t, d, DurationWithRand(d, 0, func() float64 { return 1 }))

	for range 100 {
		got := ExponentialBackoff(time.Second, 30*time.Second, 3, DefaultJitter)
		assert.GreaterOrEqual(t, got, 8*time.Second)
		assert.LessOrEqual(t, got, 12*time.Second)
	}
}
