package recent

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultPath is the store location used when none is configured
const DefaultPath = "recent_songs.txt"

// Store persists a Record as "<index>,<timestamp>" lines
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store backed by path
func NewStore(path string, logger *zap.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{
		path:   path,
		logger: logger.Named("recent"),
	}
}

// Load reads the record. A missing or unreadable store yields an empty record;
// malformed lines are skipped.
func (s *Store) Load() Record {
	rec := NewRecord()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read recent plays, starting empty",
				zap.String("path", s.path),
				zap.Error(err))
		}
		return rec
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		idx, ts, ok := parseLine(line)
		if !ok {
			s.logger.Debug("Skipping malformed recent play line", zap.String("line", line))
			continue
		}
		rec[idx] = ts
	}

	s.logger.Debug("Loaded recent plays", zap.Int("entries", len(rec)))
	return rec
}

func parseLine(line string) (int, int64, bool) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || idx < 0 {
		return 0, 0, false
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return idx, ts, true
}

// Save overwrites the store with the full record. The file is written to a
// temporary sibling and renamed into place so readers never see a partial write.
func (s *Store) Save(rec Record) error {
	var buf bytes.Buffer
	for _, idx := range rec.Indices() {
		fmt.Fprintf(&buf, "%d,%d\n", idx, rec[idx])
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write recent plays: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync recent plays: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close recent plays: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace recent plays: %w", err)
	}

	s.logger.Debug("Saved recent plays",
		zap.String("path", s.path),
		zap.Int("entries", len(rec)))
	return nil
}
