package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quickplay-cli/quickplay/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func press(b *bubble, msg tea.KeyMsg) tea.Cmd {
	_, cmd := b.Update(msg)
	return cmd
}

func TestPicker(t *testing.T) {
	Convey("Given a directory with files", t, func() {
		dir := "/picker/examples"
		fs := filesystem.API()
		So(fs.MkdirAll(filepath.Join(dir, "nested"), 0o755), ShouldBeNil)
		for _, name := range []string{"clip.mp4", "song.mp3", "tune.flac"} {
			So(fs.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644), ShouldBeNil)
		}

		items, err := loadItems(dir)
		So(err, ShouldBeNil)

		Convey("Only files are listed, in name order", func() {
			So(len(items), ShouldEqual, 3)
			So(items[0].FilterValue(), ShouldEqual, "clip.mp4")
			So(items[0].Description(), ShouldStartWith, "video")
			So(items[1].Description(), ShouldStartWith, "audio")
		})

		b := newBubble("test", items)
		b.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

		Convey("Enter without marks plays the highlighted file", func() {
			So(press(b, tea.KeyMsg{Type: tea.KeyEnter}), ShouldNotBeNil)
			So(b.chosen, ShouldResemble, []string{filepath.Join(dir, "clip.mp4")})
		})

		Convey("Marked files are played in list order", func() {
			press(b, tea.KeyMsg{Type: tea.KeyDown})
			press(b, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			press(b, tea.KeyMsg{Type: tea.KeyDown})
			press(b, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			press(b, tea.KeyMsg{Type: tea.KeyEnter})

			So(b.chosen, ShouldResemble, []string{
				filepath.Join(dir, "song.mp3"),
				filepath.Join(dir, "tune.flac"),
			})
		})

		Convey("Tab marks everything", func() {
			press(b, tea.KeyMsg{Type: tea.KeyTab})
			press(b, tea.KeyMsg{Type: tea.KeyEnter})
			So(len(b.chosen), ShouldEqual, 3)
		})

		Convey("Quitting chooses nothing", func() {
			So(press(b, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}), ShouldNotBeNil)
			So(b.chosen, ShouldBeNil)
		})
	})

	Convey("Given a missing directory", t, func() {
		_, err := loadItems("/picker/missing")
		So(err, ShouldNotBeNil)
	})
}
