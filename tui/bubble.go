package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/quickplay-cli/quickplay/color"
	"github.com/samber/lo"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

type bubble struct {
	keymap *keymap
	listC  list.Model

	// chosen is set once the user confirmed; nil means the picker was abandoned.
	chosen []string
}

func newBubble(title string, items []*listItem) *bubble {
	b := &bubble{keymap: newKeymap()}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color.Purple).
		Foreground(color.Purple).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	b.listC = list.New(lo.Map(items, func(i *listItem, _ int) list.Item { return i }), delegate, 0, 0)
	b.listC.Title = title
	b.listC.Styles.NoItems = paddingStyle
	b.listC.AdditionalShortHelpKeys = b.keymap.ShortHelp
	b.listC.AdditionalFullHelpKeys = b.keymap.ShortHelp
	b.listC.SetShowStatusBar(false)

	return b
}

func (b *bubble) Init() tea.Cmd {
	return nil
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		x, y := paddingStyle.GetFrameSize()
		b.listC.SetSize(msg.Width-x, msg.Height-y)
		return b, nil
	case tea.KeyMsg:
		if b.listC.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, b.keymap.forceQuit), key.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case key.Matches(msg, b.keymap.selectOne):
			if item, ok := b.listC.SelectedItem().(*listItem); ok {
				item.toggleMark()
			}
			return b, nil
		case key.Matches(msg, b.keymap.selectAll):
			for _, item := range b.items() {
				item.marked = true
			}
			return b, nil
		case key.Matches(msg, b.keymap.confirm):
			b.chosen = b.selection()
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	b.listC, cmd = b.listC.Update(msg)
	return b, cmd
}

func (b *bubble) View() string {
	return paddingStyle.Render(b.listC.View())
}

func (b *bubble) items() []*listItem {
	return lo.Map(b.listC.Items(), func(i list.Item, _ int) *listItem { return i.(*listItem) })
}

// selection is every marked file in list order, or the highlighted one when nothing is marked.
func (b *bubble) selection() []string {
	marked := lo.FilterMap(b.items(), func(i *listItem, _ int) (string, bool) {
		return i.source.Path(), i.marked
	})
	if len(marked) > 0 {
		return marked
	}

	if item, ok := b.listC.SelectedItem().(*listItem); ok {
		return []string{item.source.Path()}
	}
	return []string{}
}
