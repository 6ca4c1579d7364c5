package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	c := NewMockClock(start)
	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	earlier := start.Add(-time.Hour)
	c.Set(earlier)
	assert.Equal(t, earlier, c.Now())
}

func TestInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	utc := time.Date(2026, time.October, 14, 19, 30, 0, 0, time.UTC)
	c := InLocation(NewMockClock(utc), loc)

	now := c.Now()
	assert.Equal(t, loc, now.Location())
	assert.Equal(t, 12, now.Hour())
	assert.True(t, now.Equal(utc))
}

func TestInLocation_NilLocation(t *testing.T) {
	base := NewMockClock(time.Unix(0, 0))
	assert.Same(t, base, InLocation(base, nil))
}

func TestRealClock(t *testing.T) {
	before := time.Now()
	assert.False(t, NewRealClock().Now().Before(before))
}
