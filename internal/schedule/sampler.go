// Package schedule generates randomized daily playback times and installs
// them as cron entries.
package schedule

import (
	"math"
	"time"

	"moodplayer/internal/factors"
)

// DefaultPlaysPerDay is the number of playback times sampled per day
const DefaultPlaysPerDay = 12

// Rand is the random source for sampling. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	NormFloat64() float64
}

// Distribution is an equal-weight mixture of two Gaussians over hour of day
type Distribution struct {
	Means   [2]float64 `yaml:"means"`
	StdDevs [2]float64 `yaml:"std_devs"`
}

// Default distributions for the two day types
var (
	WeekdayDistribution = Distribution{Means: [2]float64{11.5, 18.5}, StdDevs: [2]float64{2.0, 2.0}}
	WeekendDistribution = Distribution{Means: [2]float64{12.5, 20.0}, StdDevs: [2]float64{2.6, 2.7}}
)

// Config holds sampling parameters
type Config struct {
	PlaysPerDay int          `yaml:"plays_per_day"`
	Weekday     Distribution `yaml:"weekday"`
	Weekend     Distribution `yaml:"weekend"`
}

// DefaultConfig returns the standard schedule parameters
func DefaultConfig() Config {
	return Config{
		PlaysPerDay: DefaultPlaysPerDay,
		Weekday:     WeekdayDistribution,
		Weekend:     WeekendDistribution,
	}
}

// Sampler draws playback hours
type Sampler struct {
	cfg Config
}

// NewSampler creates a sampler
func NewSampler(cfg Config) *Sampler {
	if cfg.PlaysPerDay <= 0 {
		cfg.PlaysPerDay = DefaultPlaysPerDay
	}
	return &Sampler{cfg: cfg}
}

// PlaysPerDay returns the configured number of samples per day
func (s *Sampler) PlaysPerDay() int {
	return s.cfg.PlaysPerDay
}

// Distribution returns the parameters used for a day type
func (s *Sampler) Distribution(isWeekend bool) Distribution {
	if isWeekend {
		return s.cfg.Weekend
	}
	return s.cfg.Weekday
}

// Sample returns count independent hours in [0,24). Order is unspecified
// and duplicates are possible.
func (s *Sampler) Sample(isWeekend bool, count int, rng Rand) []float64 {
	dist := s.Distribution(isWeekend)
	hours := make([]float64, 0, max(count, 0))
	for i := 0; i < count; i++ {
		hours = append(hours, dist.sample(rng))
	}
	return hours
}

// SampleDay samples PlaysPerDay hours for the day type of day
func (s *Sampler) SampleDay(day time.Time, rng Rand) []float64 {
	return s.Sample(factors.IsWeekend(day), s.cfg.PlaysPerDay, rng)
}

func (d Distribution) sample(rng Rand) float64 {
	component := 1
	if rng.Float64() < 0.5 {
		component = 0
	}
	x := d.Means[component] + d.StdDevs[component]*rng.NormFloat64()
	return wrapHour(x)
}

// wrapHour folds x into [0,24)
func wrapHour(x float64) float64 {
	h := math.Mod(x, 24)
	if h < 0 {
		h += 24
	}
	if h >= 24 || math.IsNaN(h) {
		return 0
	}
	return h
}
