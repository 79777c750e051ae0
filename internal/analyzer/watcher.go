package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openclaw/clawstats/internal/util"
)

// watchDebounce coalesces the bursts of write events a single transcript
// append produces into one re-run.
const watchDebounce = 500 * time.Millisecond

// Watch runs the analysis once, then re-runs it whenever a transcript under
// the sessions directory changes. Each pass re-reads the files from scratch;
// nothing is held between runs. Blocks until the watcher fails.
func (a *Analyzer) Watch() error {
	if err := a.Run(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchPaths(watcher, a.config.SessionsDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", a.config.SessionsDir, err)
	}

	util.LogInfof("Watching %s for changes", a.config.SessionsDir)

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".jsonl" {
				continue
			}
			util.LogDebugf("Transcript event: %s %s", event.Op, event.Name)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case <-rerun:
			if err := a.Run(); err != nil {
				util.LogErrorf("Re-analysis failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// addWatchPaths registers the directory and any subdirectories with the
// watcher. Session writers create files in place, so watching directories is
// enough to see new transcripts.
func addWatchPaths(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
