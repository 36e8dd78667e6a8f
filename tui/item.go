package tui

import (
	"fmt"

	"github.com/quickplay-cli/quickplay/color"
	"github.com/quickplay-cli/quickplay/history"
	"github.com/quickplay-cli/quickplay/icon"
	"github.com/quickplay-cli/quickplay/media"
	"github.com/quickplay-cli/quickplay/style"
)

// listItem is one playable file.
type listItem struct {
	source media.Source
	last   *history.Record
	marked bool
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

func (t *listItem) Title() string {
	title := t.source.Name()
	if t.marked {
		title = fmt.Sprintf("%s %s", title, style.Fg(color.Purple)(icon.Get(icon.Success)))
	}
	return title
}

func (t *listItem) Description() string {
	description := t.source.Kind().String()
	if t.last != nil {
		description += fmt.Sprintf(" • last %s, played %dx", t.last.State, t.last.Count)
	}
	return description
}

func (t *listItem) FilterValue() string {
	return t.source.Name()
}
