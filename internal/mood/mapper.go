package mood

import (
	"strings"

	"moodplayer/internal/dayphase"
	"moodplayer/internal/factors"
)

// retrogradeMood is added unnormalized when retrograde is in effect
var retrogradeMood = Vector{Mysterious: 0.7, Melancholic: 0.3}

// WeatherMood derives a normalized mood from a forecast snapshot
func WeatherMood(w factors.Weather) Vector {
	var v Vector
	warmth := Sigmoid((float64(w.Temperature) - 60.0) / 10.0)
	v[Happy] += warmth
	v[Nostalgic] += 1 - warmth
	v[Melancholic] += w.PrecipitationProbability
	v[Relaxing] += 1 - w.PrecipitationProbability

	if w.IsDaytime {
		v[Happy] += 0.3
		v[Hopeful] += 0.3
	} else {
		v[Mysterious] += 0.3
		v[Relaxing] += 0.3
	}

	switch {
	case strings.Contains(w.ShortForecast, "Cloudy"):
		v[Nostalgic] += 0.2
		v[Melancholic] += 0.2
	case strings.Contains(w.ShortForecast, "Clear"), strings.Contains(w.ShortForecast, "Sunny"):
		v[Happy] += 0.2
		v[Hopeful] += 0.2
	}

	return v.Normalize()
}

// TimeOfDayMood returns the normalized mood for the day phase of hour
func TimeOfDayMood(hour int) Vector {
	var v Vector
	switch dayphase.PhaseForHour(hour) {
	case dayphase.DayPhaseMorning:
		v = Vector{Happy: 0.5, Hopeful: 0.5}
	case dayphase.DayPhaseMidday:
		v = Vector{Happy: 0.4, Relaxing: 0.6}
	case dayphase.DayPhaseAfternoon:
		v = Vector{Nostalgic: 0.5, Relaxing: 0.5}
	case dayphase.DayPhaseEvening:
		v = Vector{Relaxing: 0.6, Melancholic: 0.4}
	default:
		v = Vector{Mysterious: 0.7, Melancholic: 0.3}
	}
	return v.Normalize()
}

// SeasonMood is a one-hot vector for the season; unknown seasons map to zero
func SeasonMood(season factors.Season) Vector {
	switch season {
	case factors.SeasonWinter:
		return Vector{Nostalgic: 1}
	case factors.SeasonSpring:
		return Vector{Hopeful: 1}
	case factors.SeasonSummer:
		return Vector{Happy: 1}
	case factors.SeasonFall:
		return Vector{Relaxing: 1}
	default:
		return Vector{}
	}
}

// MarketMood derives a normalized mood from equity and crypto movement
func MarketMood(m factors.Market) Vector {
	v := Vector{
		Hopeful:     Sigmoid(m.EquityChange),
		Melancholic: 1 - Sigmoid(m.EquityChange),
		Mysterious:  Sigmoid(-m.CryptoChange),
		Happy:       Sigmoid(m.CryptoChange),
	}
	return v.Normalize()
}

// Contributions returns every partial mood included for f, in the order
// weather, time of day, season, market and (only when set) retrograde
func Contributions(f factors.ExternalFactors) []Vector {
	parts := []Vector{
		WeatherMood(f.Weather),
		TimeOfDayMood(f.Time.Hour),
		SeasonMood(f.Time.Season),
		MarketMood(f.Market),
	}
	if f.Retrograde {
		parts = append(parts, retrogradeMood)
	}
	return parts
}

// FromFactors maps an external-factor snapshot to the current mood: the
// partial moods are summed, averaged over how many were included and the
// result normalized.
func FromFactors(f factors.ExternalFactors) Vector {
	parts := Contributions(f)

	var combined Vector
	for _, p := range parts {
		combined = combined.Sum(p)
	}

	return combined.Average(len(parts)).Normalize()
}
