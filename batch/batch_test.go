package batch

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/quickplay-cli/quickplay/filesystem"
	"github.com/quickplay-cli/quickplay/media"
	"github.com/quickplay-cli/quickplay/player"
	"github.com/quickplay-cli/quickplay/session"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestRun(t *testing.T) {
	Convey("Given an examples directory", t, func() {
		dir := "/app/examples"
		fs := filesystem.API()
		So(fs.MkdirAll(filepath.Join(dir, "nested"), 0o755), ShouldBeNil)
		for _, name := range []string{"b.mp3", "a.mp4", "c.mkv"} {
			So(fs.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644), ShouldBeNil)
		}

		var played []string
		play := func(path string) (*session.Result, error) {
			played = append(played, filepath.Base(path))
			switch filepath.Base(path) {
			case "b.mp3":
				return nil, session.ErrSurface
			case "c.mkv":
				return &session.Result{Source: media.NewSource(path), State: player.Error}, nil
			}
			return &session.Result{Source: media.NewSource(path), State: player.Ended}, nil
		}

		var out bytes.Buffer
		summary, err := Run(dir, play, &out)
		So(err, ShouldBeNil)

		Convey("Files play in name order and directories are skipped", func() {
			So(played, ShouldResemble, []string{"a.mp4", "b.mp3", "c.mkv"})
			So(summary.Skipped, ShouldEqual, 1)
		})

		Convey("Each file is announced before it plays", func() {
			So(out.String(), ShouldEqual, "\nPlaying a.mp4\n\nPlaying b.mp3\n\nPlaying c.mkv\n")
		})

		Convey("A failed session does not stop the batch", func() {
			So(summary.Failed, ShouldEqual, 1)
			So(summary.Played, ShouldEqual, 2)
			So(summary.Ended, ShouldEqual, 1)
			So(summary.Errored, ShouldEqual, 1)
			So(summary.Total(), ShouldEqual, 3)
		})
	})

	Convey("Given a missing directory", t, func() {
		_, err := Run("/nowhere", func(string) (*session.Result, error) {
			return nil, errors.New("unreachable")
		}, &bytes.Buffer{})

		Convey("An error is returned", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEach(t *testing.T) {
	Convey("Given files where the middle one cannot be presented", t, func() {
		paths := []string{"/media/one.mp4", "/media/two.mov", "/media/three.mp3"}

		var played []string
		play := func(path string) (*session.Result, error) {
			played = append(played, filepath.Base(path))
			if filepath.Base(path) == "two.mov" {
				return nil, session.ErrSurface
			}
			return &session.Result{Source: media.NewSource(path), State: player.Ended}, nil
		}

		var (
			out  bytes.Buffer
			done []string
		)
		summary := Each(paths, play, &out, func(result *session.Result) {
			done = append(done, result.Source.Name())
		})

		Convey("The remaining files still play in the given order", func() {
			So(played, ShouldResemble, []string{"one.mp4", "two.mov", "three.mp3"})
			So(done, ShouldResemble, []string{"one.mp4", "three.mp3"})
			So(out.String(), ShouldEqual, "\nPlaying one.mp4\n\nPlaying two.mov\n\nPlaying three.mp3\n")
		})

		Convey("The failure is counted", func() {
			So(summary.Failed, ShouldEqual, 1)
			So(summary.Ended, ShouldEqual, 2)
			So(summary.Total(), ShouldEqual, 3)
		})
	})
}
