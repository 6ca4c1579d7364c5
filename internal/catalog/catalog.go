// Package catalog loads the fixed, ordered list of playable tracks and
// their native moods.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"moodplayer/internal/mood"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned when a catalog holds no tracks
var ErrEmptyCatalog = errors.New("catalog contains no tracks")

// Track is a catalog entry. Its position in the catalog is its identity.
type Track struct {
	Name string
	File string // audio filename relative to the album directory
	Mood mood.Vector
}

// record is the on-disk shape of a track
type record struct {
	Track       string  `json:"track" yaml:"track"`
	File        string  `json:"file,omitempty" yaml:"file,omitempty"`
	Happy       float64 `json:"happy" yaml:"happy"`
	Melancholic float64 `json:"melancholic" yaml:"melancholic"`
	Hopeful     float64 `json:"hopeful" yaml:"hopeful"`
	Nostalgic   float64 `json:"nostalgic" yaml:"nostalgic"`
	Mysterious  float64 `json:"mysterious" yaml:"mysterious"`
	Relaxing    float64 `json:"relaxing" yaml:"relaxing"`
}

func (r record) toTrack() Track {
	file := r.File
	if file == "" {
		file = r.Track
	}
	return Track{
		Name: r.Track,
		File: file,
		Mood: mood.Vector{
			mood.Happy:       r.Happy,
			mood.Melancholic: r.Melancholic,
			mood.Hopeful:     r.Hopeful,
			mood.Nostalgic:   r.Nostalgic,
			mood.Mysterious:  r.Mysterious,
			mood.Relaxing:    r.Relaxing,
		},
	}
}

// Load reads a catalog from a JSON or YAML (.yaml/.yml) file
func Load(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var records []record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}

	tracks := make([]Track, len(records))
	for i, r := range records {
		if r.Track == "" {
			return nil, fmt.Errorf("catalog entry %d has no track name", i)
		}
		tracks[i] = r.toTrack()
	}

	return tracks, nil
}

// CheckCount compares the catalog against an expected track count.
// A mismatch is only a warning; the shorter length wins. expected <= 0 disables the check.
func CheckCount(tracks []Track, expected int, logger *zap.Logger) []Track {
	if expected <= 0 || len(tracks) == expected {
		return tracks
	}

	logger.Warn("Catalog track count does not match expected count",
		zap.Int("catalog", len(tracks)),
		zap.Int("expected", expected))

	if len(tracks) > expected {
		return tracks[:expected]
	}
	return tracks
}
