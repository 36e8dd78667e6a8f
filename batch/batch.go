// Package batch plays every file of a directory, one session after another.
package batch

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/quickplay-cli/quickplay/filesystem"
	"github.com/quickplay-cli/quickplay/log"
	"github.com/quickplay-cli/quickplay/player"
	"github.com/quickplay-cli/quickplay/session"
)

// PlayFunc runs one session for path.
type PlayFunc func(path string) (*session.Result, error)

// Summary counts the outcomes of a batch.
type Summary struct {
	// Played is the number of sessions that reached a terminal state.
	Played  int
	Ended   int
	Errored int

	// Failed is the number of sessions that returned an error before playback.
	Failed int

	// Skipped is the number of directory entries that are not files.
	Skipped int
}

// Total is the number of files a session was attempted for.
func (s Summary) Total() int {
	return s.Played + s.Failed
}

// Run plays the files of dir in name order, announcing each on out. A failed session is logged
// and counted, and the batch moves on to the next file.
func Run(dir string, play PlayFunc, out io.Writer) (Summary, error) {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("read batch directory: %w", err)
	}

	var (
		paths   []string
		skipped int
	)
	for _, entry := range entries {
		if entry.IsDir() {
			log.Debugf("skipping directory %s", entry.Name())
			skipped++
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	summary := Each(paths, play, out, nil)
	summary.Skipped = skipped
	return summary, nil
}

// Each plays paths in the given order, announcing each on out. done, when set, is called after
// every session that reached a terminal state. Failed sessions are logged, counted and skipped.
func Each(paths []string, play PlayFunc, out io.Writer, done func(*session.Result)) Summary {
	var summary Summary

	for _, path := range paths {
		name := filepath.Base(path)
		_, _ = fmt.Fprintf(out, "\nPlaying %s\n", name)

		result, err := play(path)
		if err != nil {
			log.Errorf("playing %s: %v", name, err)
			summary.Failed++
			continue
		}

		summary.Played++
		if result.State == player.Error {
			summary.Errored++
		} else {
			summary.Ended++
		}

		if done != nil {
			done(result)
		}
	}

	return summary
}
