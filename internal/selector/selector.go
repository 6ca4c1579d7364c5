// Package selector picks the catalog track whose native mood best matches
// the current mood, with randomized tie-breaking and recency exclusion.
package selector

import (
	"math"
	"time"

	"moodplayer/internal/catalog"
	"moodplayer/internal/factors"
	"moodplayer/internal/mood"
	"moodplayer/internal/recent"

	"go.uber.org/zap"
)

// Rand is the random source used for pre-filtering and tie-breaking.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// BucketFilter splits the catalog at Boundary into a first and second bucket.
// With RestrictProbability only the first bucket is considered; otherwise each
// first-bucket track is dropped with DropProbability.
type BucketFilter struct {
	Enabled             bool    `yaml:"enabled"`
	Boundary            int     `yaml:"boundary"`
	RestrictProbability float64 `yaml:"restrict_probability"`
	DropProbability     float64 `yaml:"drop_probability"`
}

// Config controls selection policy
type Config struct {
	BucketFilter        BucketFilter `yaml:"bucket_filter"`
	ThresholdMultiplier float64      `yaml:"threshold_multiplier"`
}

// DefaultConfig returns the standard policy with the bucket filter disabled
func DefaultConfig() Config {
	return Config{
		BucketFilter: BucketFilter{
			Enabled:             false,
			Boundary:            24,
			RestrictProbability: 0.4,
			DropProbability:     0.7,
		},
		ThresholdMultiplier: 1.2,
	}
}

// Result describes one selection
type Result struct {
	Index     int
	Track     catalog.Track
	Distance  float64
	Finalists []int
	Record    recent.Record // updated record for the caller to persist
}

// Selector chooses tracks. Log is optional.
type Selector struct {
	cfg    Config
	Log    SelectionLog
	logger *zap.Logger
}

// New creates a selector
func New(cfg Config, logger *zap.Logger) *Selector {
	if cfg.ThresholdMultiplier <= 0 {
		cfg.ThresholdMultiplier = DefaultConfig().ThresholdMultiplier
	}
	return &Selector{
		cfg:    cfg,
		logger: logger.Named("selector"),
	}
}

type candidate struct {
	index    int
	distance float64
}

// Select picks a track for current. It fails only for an empty catalog.
func (s *Selector) Select(current mood.Vector, tracks []catalog.Track, rec recent.Record, now time.Time, rng Rand) (Result, error) {
	if len(tracks) == 0 {
		return Result{}, catalog.ErrEmptyCatalog
	}

	pool := s.eligible(s.prefilter(len(tracks), rng), rec, now)
	if len(pool) == 0 {
		pool = s.eligible(allIndices(len(tracks)), rec, now)
		if len(pool) > 0 {
			s.logger.Info("Filtered tracks were all recently played, widening to full catalog")
		}
	}
	if len(pool) == 0 {
		s.logger.Warn("All tracks were recently played, allowing any track")
		pool = allIndices(len(tracks))
	}

	candidates := make([]candidate, 0, len(pool))
	minDist := math.MaxFloat64
	for _, idx := range pool {
		d := current.Distance(tracks[idx].Mood)
		candidates = append(candidates, candidate{index: idx, distance: d})
		if d < minDist {
			minDist = d
		}

		s.logger.Debug("Candidate distance",
			zap.Int("index", idx),
			zap.String("track", tracks[idx].Name),
			zap.Float64("distance", d))
	}

	threshold := minDist * s.cfg.ThresholdMultiplier
	var finalists []candidate
	for _, c := range candidates {
		if c.distance <= threshold {
			finalists = append(finalists, c)
		}
	}
	if len(finalists) == 0 {
		// Only reachable when distances are NaN
		finalists = candidates
	}

	chosen := finalists[rng.Intn(len(finalists))]

	result := Result{
		Index:     chosen.index,
		Track:     tracks[chosen.index],
		Distance:  chosen.distance,
		Finalists: make([]int, len(finalists)),
		Record:    rec.Play(chosen.index, now),
	}
	for i, f := range finalists {
		result.Finalists[i] = f.index
	}

	s.logger.Info("Selected track",
		zap.Int("index", result.Index),
		zap.String("track", result.Track.Name),
		zap.Float64("distance", result.Distance),
		zap.Int("finalists", len(finalists)))

	s.appendLog(result, now)

	return result, nil
}

// prefilter applies the optional bucket filter and returns candidate indices
func (s *Selector) prefilter(n int, rng Rand) []int {
	bf := s.cfg.BucketFilter
	if !bf.Enabled || bf.Boundary <= 0 {
		return allIndices(n)
	}

	restrict := rng.Float64() < bf.RestrictProbability
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if restrict {
			if i >= bf.Boundary {
				break
			}
			out = append(out, i)
			continue
		}
		if i < bf.Boundary && rng.Float64() < bf.DropProbability {
			continue
		}
		out = append(out, i)
	}

	s.logger.Debug("Bucket filter applied",
		zap.Bool("first_bucket_only", restrict),
		zap.Int("remaining", len(out)))
	return out
}

func (s *Selector) eligible(indices []int, rec recent.Record, now time.Time) []int {
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if rec.IsExcluded(idx, now) {
			continue
		}
		out = append(out, idx)
	}
	return out
}

func (s *Selector) appendLog(result Result, now time.Time) {
	if s.Log == nil {
		return
	}
	entry := Entry{
		Time:   now,
		Index:  result.Index,
		Name:   result.Track.Name,
		Season: factors.SeasonFor(now.Month()),
	}
	if err := s.Log.Append(entry); err != nil {
		s.logger.Warn("Failed to append selection log", zap.Error(err))
	}
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
