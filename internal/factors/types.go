// Package factors gathers the external context (weather, time, market and
// retrograde state) that drives mood selection.
package factors

import "time"

// Season is one of the four fixed season labels
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)

// Weather is a single forecast snapshot
type Weather struct {
	Temperature              int     // degrees Fahrenheit
	IsDaytime                bool
	PrecipitationProbability float64 // 0..1
	ShortForecast            string
}

// Time describes the local wall-clock moment a selection is made for
type Time struct {
	Hour   int
	Minute int
	Day    int
	Month  int
	Year   int
	Season Season
}

// Market holds percentage changes since previous close
type Market struct {
	EquityChange float64 // broad equity index, e.g. SPY
	CryptoChange float64 // crypto asset, e.g. BTC-USD
}

// ExternalFactors is the immutable snapshot handed to the mood mapper
type ExternalFactors struct {
	Weather    Weather
	Time       Time
	Market     Market
	Retrograde bool
}

// SeasonFor returns the meteorological season for a month
func SeasonFor(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// TimeFrom builds a Time snapshot from t in its own location
func TimeFrom(t time.Time) Time {
	return Time{
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Day:    t.Day(),
		Month:  int(t.Month()),
		Year:   t.Year(),
		Season: SeasonFor(t.Month()),
	}
}

// IsWeekend reports whether t falls on Friday, Saturday or Sunday.
// Friday counts as weekend for playback scheduling.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}
