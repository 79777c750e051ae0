// Package scanner locates session transcript files eligible for analysis.
package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openclaw/clawstats/internal/util"
)

// FileScanner finds .jsonl transcripts under a sessions directory, optionally
// skipping files last modified before a freshness cutoff.
type FileScanner struct {
	baseDir string
	maxAge  time.Duration // 0 disables the cutoff
}

// NewFileScanner creates a scanner for baseDir. days limits results to files
// modified within the last N days; 0 scans everything.
func NewFileScanner(baseDir string, days int) *FileScanner {
	var maxAge time.Duration
	if days > 0 {
		maxAge = time.Duration(days) * 24 * time.Hour
	}
	return &FileScanner{
		baseDir: baseDir,
		maxAge:  maxAge,
	}
}

// Scan returns the paths of all fresh-enough .jsonl files under the base
// directory. A missing directory yields an empty result, not an error.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	totalCount := 0
	staleCount := 0

	util.LogDebugf("Start scanning directory: %s", s.baseDir)

	if _, err := os.Stat(s.baseDir); os.IsNotExist(err) {
		util.LogDebugf("Sessions directory does not exist: %s", s.baseDir)
		return nil, nil
	}

	var cutoff time.Time
	if s.maxAge > 0 {
		cutoff = time.Now().Add(-s.maxAge)
	}

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebugf("Skip file (error): %s - %v", path, err)
			return nil
		}

		if info.IsDir() {
			return nil
		}

		totalCount++
		if !strings.HasSuffix(strings.ToLower(path), ".jsonl") {
			return nil
		}

		if s.maxAge > 0 && info.ModTime().Before(cutoff) {
			staleCount++
			return nil
		}

		files = append(files, path)
		return nil
	})

	util.LogDebugf("File scan completed: duration %v, %d files seen, %d stale, %d selected",
		time.Since(start), totalCount, staleCount, len(files))

	return files, err
}
