package selector

import (
	"fmt"
	"io"
	"sync"
	"time"

	"moodplayer/internal/factors"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLogPath is the selection log location used when none is configured
const DefaultLogPath = "song_selections.txt"

// Entry is one line of the selection log
type Entry struct {
	Time   time.Time
	Index  int
	Name   string
	Season factors.Season
}

// String formats the entry as
// "[2006-01-02 15:04] Selected song index: 3 (Name) - Season: fall"
func (e Entry) String() string {
	return fmt.Sprintf("[%s] Selected song index: %d (%s) - Season: %s",
		e.Time.Format("2006-01-02 15:04"), e.Index, e.Name, e.Season)
}

// SelectionLog records chosen tracks
type SelectionLog interface {
	Append(e Entry) error
}

// FileLog appends entries to a size-rotated text file
type FileLog struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// NewFileLog opens (lazily) an append-only selection log at path
func NewFileLog(path string) *FileLog {
	if path == "" {
		path = DefaultLogPath
	}
	return &FileLog{
		w: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		},
	}
}

// Append writes one line for e
func (l *FileLog) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := io.WriteString(l.w, e.String()+"\n"); err != nil {
		return fmt.Errorf("failed to write selection log: %w", err)
	}
	return nil
}

// Close releases the underlying file
func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}
