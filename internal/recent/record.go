// Package recent tracks which catalog tracks were played recently so the
// selector can avoid repeats.
package recent

import (
	"maps"
	"slices"
	"time"
)

// ExclusionWindow is how long a played track stays ineligible
const ExclusionWindow = 6 * time.Hour

// Record maps a catalog index to the Unix time (seconds) it was last played.
// It is a plain value: operations return updated copies.
type Record map[int]int64

// NewRecord returns an empty record
func NewRecord() Record {
	return make(Record)
}

// IsExcluded reports whether idx was played less than ExclusionWindow before now
func (r Record) IsExcluded(idx int, now time.Time) bool {
	ts, ok := r[idx]
	if !ok {
		return false
	}
	return now.Unix()-ts < int64(ExclusionWindow/time.Second)
}

// Play returns a copy of r with idx stamped at now and every expired entry removed
func (r Record) Play(idx int, now time.Time) Record {
	out := maps.Clone(r)
	if out == nil {
		out = NewRecord()
	}
	out[idx] = now.Unix()
	return out.pruned(now)
}

// Prune returns a copy of r without expired entries
func (r Record) Prune(now time.Time) Record {
	return maps.Clone(r).pruned(now)
}

func (r Record) pruned(now time.Time) Record {
	if r == nil {
		return NewRecord()
	}
	for idx := range r {
		if !r.IsExcluded(idx, now) {
			delete(r, idx)
		}
	}
	return r
}

// Indices returns the recorded indices in ascending order
func (r Record) Indices() []int {
	return slices.Sorted(maps.Keys(r))
}
