package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))
	if age > 0 {
		old := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, old, old))
	}
	return path
}

func TestScanFindsJSONLFiles(t *testing.T) {
	tempDir := t.TempDir()
	fresh := writeFile(t, tempDir, "fresh.jsonl", 0)
	writeFile(t, tempDir, "notes.txt", 0)

	s := NewFileScanner(tempDir, 0)
	files, err := s.Scan()

	require.NoError(t, err)
	assert.Equal(t, []string{fresh}, files)
}

func TestScanFreshnessCutoff(t *testing.T) {
	tempDir := t.TempDir()
	fresh := writeFile(t, tempDir, "fresh.jsonl", time.Hour)
	stale := writeFile(t, tempDir, "stale.jsonl", 10*24*time.Hour)

	s := NewFileScanner(tempDir, 7)
	files, err := s.Scan()

	require.NoError(t, err)
	assert.Contains(t, files, fresh)
	assert.NotContains(t, files, stale)
}

func TestScanZeroDaysDisablesCutoff(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "fresh.jsonl", time.Hour)
	writeFile(t, tempDir, "stale.jsonl", 100*24*time.Hour)

	s := NewFileScanner(tempDir, 0)
	files, err := s.Scan()

	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestScanMissingDirectory(t *testing.T) {
	s := NewFileScanner("/path/that/does/not/exist", 7)
	files, err := s.Scan()

	assert.NoError(t, err, "a missing sessions directory is not an error")
	assert.Empty(t, files)
}

func TestScanRecursesSubdirectories(t *testing.T) {
	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "archive")
	require.NoError(t, os.MkdirAll(subDir, 0755))
	nested := writeFile(t, subDir, "old-session.jsonl", 0)

	s := NewFileScanner(tempDir, 0)
	files, err := s.Scan()

	require.NoError(t, err)
	assert.Contains(t, files, nested)
}
