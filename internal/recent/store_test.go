package recent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "recent_songs.txt"), zap.NewNop())
	rec := s.Load()
	assert.NotNil(t, rec)
	assert.Empty(t, rec)
}

func TestStore_LoadSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent_songs.txt")
	content := "3,1760443200\n" +
		"garbage\n" +
		"4,notanumber\n" +
		"\n" +
		"-1,1760443200\n" +
		"5,1760443300,extra\n" +
		" 12 , 1760443400 \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rec := NewStore(path, zap.NewNop()).Load()
	assert.Equal(t, Record{3: 1760443200, 12: 1760443400}, rec)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent_songs.txt")
	s := NewStore(path, zap.NewNop())

	rec := Record{30: 1760443500, 2: 1760443200}
	require.NoError(t, s.Save(rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2,1760443200\n30,1760443500\n", string(data), "one sorted entry per line")

	assert.Equal(t, rec, s.Load())
}

func TestStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent_songs.txt")
	s := NewStore(path, zap.NewNop())

	require.NoError(t, s.Save(Record{1: 100, 2: 200}))
	require.NoError(t, s.Save(Record{3: 300}))

	assert.Equal(t, Record{3: 300}, s.Load())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestStore_SaveUnwritableDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing", "recent_songs.txt"), zap.NewNop())
	assert.Error(t, s.Save(Record{1: 1}))
}

func TestStore_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewStore("", zap.NewNop()).path)
}
