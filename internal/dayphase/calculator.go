package dayphase

import (
	"sync"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"go.uber.org/zap"
)

// DayPhase is a coarse bucket of the local hour
type DayPhase string

const (
	DayPhaseMorning   DayPhase = "morning"
	DayPhaseMidday    DayPhase = "midday"
	DayPhaseAfternoon DayPhase = "afternoon"
	DayPhaseEvening   DayPhase = "evening"
	DayPhaseNight     DayPhase = "night"
)

// PhaseForHour buckets an hour of day (0-23):
// 5-11 morning, 12-14 midday, 15-17 afternoon, 18-21 evening, otherwise night
func PhaseForHour(hour int) DayPhase {
	switch {
	case hour >= 5 && hour <= 11:
		return DayPhaseMorning
	case hour >= 12 && hour <= 14:
		return DayPhaseMidday
	case hour >= 15 && hour <= 17:
		return DayPhaseAfternoon
	case hour >= 18 && hour <= 21:
		return DayPhaseEvening
	default:
		return DayPhaseNight
	}
}

// Calculator answers daylight questions for a fixed location
type Calculator struct {
	latitude  float64
	longitude float64
	logger    *zap.Logger

	mu      sync.Mutex
	day     string // yyyy-mm-dd the cached times belong to
	sunrise time.Time
	sunset  time.Time
}

// NewCalculator creates a new daylight calculator
func NewCalculator(latitude, longitude float64, logger *zap.Logger) *Calculator {
	return &Calculator{
		latitude:  latitude,
		longitude: longitude,
		logger:    logger.Named("dayphase"),
	}
}

// SunTimes returns sunrise and sunset (UTC) for the calendar day of t.
// Both are zero when the sun does not rise or set at this latitude.
func (c *Calculator) SunTimes(t time.Time) (time.Time, time.Time) {
	key := t.Format("2006-01-02")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.day != key {
		c.sunrise, c.sunset = sunrise.SunriseSunset(
			c.latitude, c.longitude,
			t.Year(), t.Month(), t.Day(),
		)
		c.day = key

		c.logger.Debug("Sun times updated",
			zap.String("day", key),
			zap.Time("sunrise", c.sunrise),
			zap.Time("sunset", c.sunset))
	}

	return c.sunrise, c.sunset
}

// IsDaytime reports whether t lies between sunrise and sunset.
// Without a sunrise (polar day or night) it falls back to 06:00-18:00 local.
func (c *Calculator) IsDaytime(t time.Time) bool {
	rise, set := c.SunTimes(t)
	if rise.IsZero() || set.IsZero() {
		return t.Hour() >= 6 && t.Hour() < 18
	}
	return !t.Before(rise) && t.Before(set)
}
