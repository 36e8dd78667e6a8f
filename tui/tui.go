// Package tui is the interactive file picker shown by quickplay pick.
package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quickplay-cli/quickplay/filesystem"
	"github.com/quickplay-cli/quickplay/history"
	"github.com/quickplay-cli/quickplay/log"
	"github.com/quickplay-cli/quickplay/media"
)

// Pick lets the user choose files of dir and returns their paths in list order.
// An empty result means the user quit without choosing.
func Pick(dir string) ([]string, error) {
	items, err := loadItems(dir)
	if err != nil {
		return nil, err
	}

	b := newBubble(fmt.Sprintf("Play from %s", dir), items)
	if _, err := tea.NewProgram(b, tea.WithAltScreen()).Run(); err != nil {
		return nil, err
	}
	return b.chosen, nil
}

func loadItems(dir string) ([]*listItem, error) {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	saved, err := history.Get()
	if err != nil {
		log.Warnf("reading history: %v", err)
	}

	var items []*listItem
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		item := &listItem{source: media.NewSource(path)}
		if abs, err := filepath.Abs(path); err == nil {
			item.last = saved[abs]
		}
		items = append(items, item)
	}
	return items, nil
}
