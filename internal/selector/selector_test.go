package selector

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"moodplayer/internal/catalog"
	"moodplayer/internal/factors"
	"moodplayer/internal/mood"
	"moodplayer/internal/recent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2026, time.October, 14, 18, 30, 0, 0, time.UTC)

func abcCatalog() []catalog.Track {
	return []catalog.Track{
		{Name: "A", Mood: mood.Vector{mood.Happy: 1}},
		{Name: "B", Mood: mood.Vector{mood.Melancholic: 1}},
		{Name: "C", Mood: mood.Vector{mood.Happy: 0.9, mood.Melancholic: 0.1}},
	}
}

type memoryLog struct {
	entries []Entry
	err     error
}

func (m *memoryLog) Append(e Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func newSelector(cfg Config) *Selector {
	return New(cfg, zap.NewNop())
}

func TestSelect_ExactMatchIsDeterministic(t *testing.T) {
	s := newSelector(DefaultConfig())
	current := mood.Vector{mood.Happy: 1}

	for seed := int64(0); seed < 50; seed++ {
		res, err := s.Select(current, abcCatalog(), recent.NewRecord(), now, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.Equal(t, 0, res.Index, "seed %d", seed)
		assert.Equal(t, []int{0}, res.Finalists)
		assert.Equal(t, 0.0, res.Distance)
	}
}

func TestSelect_ExcludedTrackSkipped(t *testing.T) {
	s := newSelector(DefaultConfig())
	current := mood.Vector{mood.Happy: 1}
	rec := recent.Record{0: now.Add(-time.Hour).Unix()}

	for seed := int64(0); seed < 20; seed++ {
		res, err := s.Select(current, abcCatalog(), rec, now, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.Equal(t, 2, res.Index, "C is nearest among eligible tracks")
	}

	// Once the window passes, A is eligible again
	later := now.Add(-time.Hour).Add(recent.ExclusionWindow)
	res, err := s.Select(current, abcCatalog(), rec, later, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Index)
}

func TestSelect_AllExcludedFallsBack(t *testing.T) {
	s := newSelector(DefaultConfig())
	rec := recent.Record{
		0: now.Add(-time.Minute).Unix(),
		1: now.Add(-time.Minute).Unix(),
		2: now.Add(-time.Minute).Unix(),
	}

	res, err := s.Select(mood.Vector{mood.Melancholic: 1}, abcCatalog(), rec, now, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, now.Unix(), res.Record[1])
}

func TestSelect_RandomAmongFinalists(t *testing.T) {
	tracks := []catalog.Track{
		{Name: "twin 1", Mood: mood.Vector{mood.Relaxing: 1}},
		{Name: "twin 2", Mood: mood.Vector{mood.Relaxing: 1}},
		{Name: "far", Mood: mood.Vector{mood.Mysterious: 1}},
	}
	current := mood.Vector{mood.Relaxing: 0.8, mood.Hopeful: 0.2}
	s := newSelector(DefaultConfig())

	seen := make(map[int]int)
	for seed := int64(0); seed < 200; seed++ {
		res, err := s.Select(current, tracks, recent.NewRecord(), now, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{0, 1}, res.Finalists)
		seen[res.Index]++
	}

	assert.Zero(t, seen[2])
	assert.Positive(t, seen[0])
	assert.Positive(t, seen[1])
}

func TestSelect_WidenedThreshold(t *testing.T) {
	tracks := []catalog.Track{
		{Name: "near", Mood: mood.Vector{mood.Happy: 1}},
		{Name: "close", Mood: mood.Vector{mood.Happy: 1.105}},
		{Name: "outside", Mood: mood.Vector{mood.Happy: 1.13}},
	}
	current := mood.Vector{mood.Happy: 0.9}
	s := newSelector(DefaultConfig())

	res, err := s.Select(current, tracks, recent.NewRecord(), now, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	// min 0.1, threshold 0.12: 0.205 and 0.23 are out, so only "near"
	assert.Equal(t, []int{0}, res.Finalists)

	current = mood.Vector{mood.Happy: 1.05}
	res, err = s.Select(current, tracks, recent.NewRecord(), now, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	// min 0.05 (near), threshold 0.06: close at 0.055 is in, outside at 0.08 is out
	assert.ElementsMatch(t, []int{0, 1}, res.Finalists)
}

func TestSelect_SeedReproducible(t *testing.T) {
	tracks := make([]catalog.Track, 10)
	for i := range tracks {
		tracks[i] = catalog.Track{Name: "same", Mood: mood.Vector{mood.Hopeful: 1}}
	}
	s := newSelector(DefaultConfig())

	a, err := s.Select(mood.Vector{mood.Hopeful: 1}, tracks, recent.NewRecord(), now, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := s.Select(mood.Vector{mood.Hopeful: 1}, tracks, recent.NewRecord(), now, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, a.Index, b.Index)
}

func TestSelect_RecordsPlay(t *testing.T) {
	s := newSelector(DefaultConfig())
	stale := now.Add(-10 * time.Hour).Unix()
	rec := recent.Record{1: stale}

	res, err := s.Select(mood.Vector{mood.Happy: 1}, abcCatalog(), rec, now, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.True(t, res.Record.IsExcluded(res.Index, now))
	_, stillThere := res.Record[1]
	assert.False(t, stillThere, "expired entries are pruned")
	assert.Equal(t, stale, rec[1], "input record is untouched")
}

func TestSelect_EmptyCatalog(t *testing.T) {
	s := newSelector(DefaultConfig())
	_, err := s.Select(mood.Vector{}, nil, recent.NewRecord(), now, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestSelect_NaNMoodStillSelects(t *testing.T) {
	s := newSelector(DefaultConfig())
	current := mood.Vector{math.NaN()}

	res, err := s.Select(current, abcCatalog(), recent.NewRecord(), now, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, res.Finalists, 3)
}

func TestSelect_BucketFilterRestrict(t *testing.T) {
	tracks := make([]catalog.Track, 6)
	for i := range tracks {
		tracks[i] = catalog.Track{Name: "t", Mood: mood.Vector{mood.Relaxing: 1}}
	}
	cfg := DefaultConfig()
	cfg.BucketFilter = BucketFilter{Enabled: true, Boundary: 2, RestrictProbability: 1, DropProbability: 0}
	s := newSelector(cfg)

	for seed := int64(0); seed < 50; seed++ {
		res, err := s.Select(mood.Vector{mood.Relaxing: 1}, tracks, recent.NewRecord(), now, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.Less(t, res.Index, 2)
	}
}

func TestSelect_BucketFilterDrop(t *testing.T) {
	tracks := make([]catalog.Track, 6)
	for i := range tracks {
		tracks[i] = catalog.Track{Name: "t", Mood: mood.Vector{mood.Relaxing: 1}}
	}
	cfg := DefaultConfig()
	cfg.BucketFilter = BucketFilter{Enabled: true, Boundary: 2, RestrictProbability: 0, DropProbability: 1}
	s := newSelector(cfg)

	for seed := int64(0); seed < 50; seed++ {
		res, err := s.Select(mood.Vector{mood.Relaxing: 1}, tracks, recent.NewRecord(), now, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Index, 2)
	}
}

func TestSelect_BucketFilterWidensWhenFilteredAllExcluded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BucketFilter = BucketFilter{Enabled: true, Boundary: 1, RestrictProbability: 1}
	s := newSelector(cfg)

	// Only index 0 survives the filter but it was just played
	rec := recent.Record{0: now.Unix()}
	res, err := s.Select(mood.Vector{mood.Happy: 1}, abcCatalog(), rec, now, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Index, "a non-excluded track outside the filter wins over a repeat")
}

func TestSelect_AppendsLog(t *testing.T) {
	s := newSelector(DefaultConfig())
	log := &memoryLog{}
	s.Log = log

	res, err := s.Select(mood.Vector{mood.Happy: 1}, abcCatalog(), recent.NewRecord(), now, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	require.Len(t, log.entries, 1)
	assert.Equal(t, Entry{Time: now, Index: res.Index, Name: "A", Season: factors.SeasonFall}, log.entries[0])
}

func TestSelect_LogFailureIsNotFatal(t *testing.T) {
	s := newSelector(DefaultConfig())
	s.Log = &memoryLog{err: errors.New("disk full")}

	res, err := s.Select(mood.Vector{mood.Happy: 1}, abcCatalog(), recent.NewRecord(), now, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Index)
}

func TestNew_DefaultsMultiplier(t *testing.T) {
	s := New(Config{}, zap.NewNop())
	assert.Equal(t, 1.2, s.cfg.ThresholdMultiplier)
}
