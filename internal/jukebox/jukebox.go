// Package jukebox runs one playback cycle: gather context, pick a track,
// persist the recent-play record and hand the file to the player.
package jukebox

import (
	"context"
	"fmt"
	"path/filepath"

	"moodplayer/internal/catalog"
	"moodplayer/internal/clock"
	"moodplayer/internal/factors"
	"moodplayer/internal/mood"
	"moodplayer/internal/recent"
	"moodplayer/internal/selector"

	"go.uber.org/zap"
)

// FactorSource produces a fresh context snapshot
type FactorSource interface {
	Gather(ctx context.Context) factors.ExternalFactors
}

// RecentStore loads and persists the recent-play record
type RecentStore interface {
	Load() recent.Record
	Save(rec recent.Record) error
}

// Player plays an audio file to completion
type Player interface {
	Play(ctx context.Context, file string) error
}

// Options wires a Jukebox
type Options struct {
	Tracks    []catalog.Track
	AlbumPath string
	Factors   FactorSource
	Selector  *selector.Selector
	Store     RecentStore
	Player    Player
	Clock     clock.Clock
	Rand      selector.Rand
}

// Jukebox coordinates selection and playback
type Jukebox struct {
	opts   Options
	logger *zap.Logger
}

// Pick is the outcome of a selection
type Pick struct {
	Factors factors.ExternalFactors
	Mood    mood.Vector
	Result  selector.Result
	File    string
}

// New creates a jukebox
func New(opts Options, logger *zap.Logger) *Jukebox {
	return &Jukebox{
		opts:   opts,
		logger: logger.Named("jukebox"),
	}
}

// Pick selects a track without persisting or playing it
func (j *Jukebox) Pick(ctx context.Context) (Pick, error) {
	now := j.opts.Clock.Now()
	rec := j.opts.Store.Load().Prune(now)

	j.logger.Debug("Recently played", zap.Ints("excluded", rec.Indices()))

	f := j.opts.Factors.Gather(ctx)
	current := mood.FromFactors(f)

	j.logger.Debug("Current mood", zap.Any("mood", current.Map()))

	res, err := j.opts.Selector.Select(current, j.opts.Tracks, rec, now, j.opts.Rand)
	if err != nil {
		return Pick{}, fmt.Errorf("failed to select track: %w", err)
	}

	return Pick{
		Factors: f,
		Mood:    current,
		Result:  res,
		File:    filepath.Join(j.opts.AlbumPath, res.Track.File),
	}, nil
}

// PlayOnce picks a track, saves the updated record and plays the track.
// A failed save is logged and does not stop playback.
func (j *Jukebox) PlayOnce(ctx context.Context) (Pick, error) {
	pick, err := j.Pick(ctx)
	if err != nil {
		return Pick{}, err
	}

	if err := j.opts.Store.Save(pick.Result.Record); err != nil {
		j.logger.Warn("Failed to save recent plays", zap.Error(err))
	}

	if err := j.opts.Player.Play(ctx, pick.File); err != nil {
		return pick, fmt.Errorf("failed to play %s: %w", pick.Result.Track.Name, err)
	}

	j.logger.Info("Playback finished",
		zap.Int("index", pick.Result.Index),
		zap.String("track", pick.Result.Track.Name))
	return pick, nil
}
