package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quickplay-cli/quickplay/filesystem"
	"github.com/quickplay-cli/quickplay/media"
	"github.com/quickplay-cli/quickplay/player"
	"github.com/quickplay-cli/quickplay/surface"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSelectStrategy(t *testing.T) {
	Convey("Given a media kind", t, func() {
		Convey("Audio is headless everywhere", func() {
			So(SelectStrategy(media.Audio, true), ShouldEqual, Headless)
			So(SelectStrategy(media.Audio, false), ShouldEqual, Headless)
		})

		Convey("Video follows the platform", func() {
			So(SelectStrategy(media.Video, true), ShouldEqual, CompositedSurface)
			So(SelectStrategy(media.Video, false), ShouldEqual, NativeFullscreen)
		})
	})

	Convey("PlatformNeedsComposite", t, func() {
		So(PlatformNeedsComposite("darwin", ModeAuto), ShouldBeTrue)
		So(PlatformNeedsComposite("linux", ModeAuto), ShouldBeFalse)
		So(PlatformNeedsComposite("windows", ""), ShouldBeFalse)
		So(PlatformNeedsComposite("linux", ModeAlways), ShouldBeTrue)
		So(PlatformNeedsComposite("darwin", ModeNever), ShouldBeFalse)
	})
}

func TestPhase(t *testing.T) {
	Convey("Phase names", t, func() {
		So(Created.String(), ShouldEqual, "created")
		So(Released.String(), ShouldEqual, "released")
		So(Phase(9).String(), ShouldEqual, "phase(9)")
		So(Phase(-1).String(), ShouldEqual, "phase(-1)")
	})
}

func TestPlayComposited(t *testing.T) {
	Convey("Given a video on a composited platform", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, states: []player.State{player.Starting, player.Playing, player.Playing, player.Ended}}
		toolkit := &fakeToolkit{rec: rec, display: surface.Rect{Width: 1920, Height: 1080}}
		s, c := newTestSession(engine, toolkit, true)

		result, err := s.Play("clip.mp4", mo.None[string]())

		Convey("It ends cleanly through the surface", func() {
			So(err, ShouldBeNil)
			So(result.State, ShouldEqual, player.Ended)
			So(result.OK(), ShouldBeTrue)
			So(result.Strategy, ShouldEqual, CompositedSurface)
			So(result.Polls, ShouldEqual, 4)
		})

		Convey("The engine is configured with the mouse hide timeout", func() {
			So(engine.opts.MouseHideTimeout, ShouldEqual, 10)
		})

		Convey("The window covers the primary display", func() {
			So(toolkit.geometry, ShouldResemble, surface.Rect{Width: 1920, Height: 1080})
			So(rec.index("window.show"), ShouldBeLessThan, rec.index("player.attach"))
			So(rec.index("player.attach"), ShouldBeLessThan, rec.index("player.play"))
			So(rec.count("player.fullscreen"), ShouldEqual, 0)
		})

		Convey("Every poll also pumps UI events", func() {
			So(rec.count("toolkit.events"), ShouldEqual, 3)
		})

		Convey("Waits are grace, surface polls, then settle", func() {
			So(c.sleeps, ShouldResemble, []time.Duration{
				500 * time.Millisecond,
				50 * time.Millisecond,
				50 * time.Millisecond,
				50 * time.Millisecond,
				100 * time.Millisecond,
			})
		})

		Convey("Teardown closes, stops, then releases in order", func() {
			tail := rec.calls[rec.index("window.close"):]
			So(tail, ShouldResemble, []string{
				"window.close",
				"player.stop",
				"media.release",
				"player.release",
				"instance.release",
			})
			So(s.Phase(), ShouldEqual, Released)
		})
	})
}

func TestPlayHeadless(t *testing.T) {
	Convey("Given an audio file", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, states: []player.State{player.Playing, player.Ended}}
		toolkit := &fakeToolkit{rec: rec}
		s, c := newTestSession(engine, toolkit, true)

		result, err := s.Play("song.mp3", mo.None[string]())

		Convey("No window is created and no events are pumped", func() {
			So(err, ShouldBeNil)
			So(result.Strategy, ShouldEqual, Headless)
			So(rec.count("window.new"), ShouldEqual, 0)
			So(rec.count("toolkit.events"), ShouldEqual, 0)
			So(rec.count("player.fullscreen"), ShouldEqual, 0)
		})

		Convey("Polls use the plain interval", func() {
			So(c.sleeps, ShouldResemble, []time.Duration{
				500 * time.Millisecond,
				100 * time.Millisecond,
				100 * time.Millisecond,
			})
		})
	})

	Convey("Given a video where native fullscreen is used", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, states: []player.State{player.Ended}}
		s, _ := newTestSession(engine, nil, false)

		result, err := s.Play("Movie.MKV", mo.None[string]())

		Convey("Fullscreen is requested before play", func() {
			So(err, ShouldBeNil)
			So(result.Strategy, ShouldEqual, NativeFullscreen)
			So(rec.index("player.fullscreen"), ShouldBeLessThan, rec.index("player.play"))
		})
	})
}

func TestPlayEngineError(t *testing.T) {
	Convey("Given a file the engine cannot decode", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, states: []player.State{player.Starting, player.Error}}
		s, _ := newTestSession(engine, nil, false)

		result, err := s.Play("missing.mkv", mo.None[string]())

		Convey("The error state is returned, not raised", func() {
			So(err, ShouldBeNil)
			So(result.State, ShouldEqual, player.Error)
			So(result.OK(), ShouldBeFalse)
		})

		Convey("Everything is still released once", func() {
			So(rec.count("player.stop"), ShouldEqual, 1)
			So(rec.count("media.release"), ShouldEqual, 1)
			So(rec.count("player.release"), ShouldEqual, 1)
			So(rec.count("instance.release"), ShouldEqual, 1)
		})
	})

	Convey("Given an engine that refuses to open a missing file", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, statMedia: true, states: []player.State{player.Ended}}
		s, c := newTestSession(engine, nil, false)

		result, err := s.Play("missing.mkv", mo.None[string]())

		Convey("The file ends in the error state without raising", func() {
			So(err, ShouldBeNil)
			So(result, ShouldNotBeNil)
			So(result.State, ShouldEqual, player.Error)
			So(result.Polls, ShouldEqual, 0)
			So(result.Source.Name(), ShouldEqual, "missing.mkv")
		})

		Convey("Teardown still runs and playback never starts", func() {
			So(rec.calls, ShouldResemble, []string{"instance.new", "instance.release"})
			So(c.sleeps, ShouldBeEmpty)
			So(s.Phase(), ShouldEqual, Released)
		})
	})

	Convey("Given a state query that fails", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, stateErr: errBroken}
		s, _ := newTestSession(engine, nil, false)

		result, err := s.Play("song.flac", mo.None[string]())

		Convey("It is treated as an engine error", func() {
			So(err, ShouldBeNil)
			So(result.State, ShouldEqual, player.Error)
			So(rec.count("instance.release"), ShouldEqual, 1)
		})
	})
}

func TestPlaySurfaceFailure(t *testing.T) {
	Convey("Given a toolkit that cannot create a window", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, states: []player.State{player.Ended}}
		toolkit := &fakeToolkit{rec: rec, windowErr: errBroken}
		s, c := newTestSession(engine, toolkit, true)

		result, err := s.Play("clip.mov", mo.None[string]())

		Convey("The failure propagates before playback", func() {
			So(result, ShouldBeNil)
			So(errors.Is(err, ErrSurface), ShouldBeTrue)
			So(errors.Is(err, errBroken), ShouldBeTrue)
			So(rec.count("player.play"), ShouldEqual, 0)
			So(rec.count("player.stop"), ShouldEqual, 0)
			So(c.sleeps, ShouldBeEmpty)
		})

		Convey("What was acquired is released", func() {
			So(rec.count("media.release"), ShouldEqual, 1)
			So(rec.count("player.release"), ShouldEqual, 1)
			So(rec.count("instance.release"), ShouldEqual, 1)
		})
	})

	Convey("Given no toolkit at all", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec}
		s, _ := newTestSession(engine, nil, true)

		_, err := s.Play("clip.mp4", mo.None[string]())
		So(errors.Is(err, ErrSurface), ShouldBeTrue)
	})
}

func TestPlayEngineFailure(t *testing.T) {
	Convey("Given an engine that cannot start", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, instanceErr: errBroken}
		s, _ := newTestSession(engine, nil, false)

		_, err := s.Play("song.mp3", mo.None[string]())

		Convey("ErrEngine is returned and nothing is released", func() {
			So(errors.Is(err, ErrEngine), ShouldBeTrue)
			So(rec.calls, ShouldBeEmpty)
		})
	})

	Convey("Given media that cannot be created", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, mediaErr: errBroken}
		s, _ := newTestSession(engine, nil, false)

		_, err := s.Play("song.mp3", mo.None[string]())

		Convey("Only the instance is released", func() {
			So(errors.Is(err, ErrEngine), ShouldBeTrue)
			So(rec.calls, ShouldResemble, []string{"instance.new", "instance.release"})
		})
	})
}

func TestPlaySequential(t *testing.T) {
	Convey("Given one session playing the same file twice", t, func() {
		rec := &recorder{}
		engine := &fakeEngine{rec: rec, states: []player.State{player.Playing, player.Ended}}
		s, _ := newTestSession(engine, nil, false)

		first, err := s.Play("song.mp3", mo.None[string]())
		So(err, ShouldBeNil)
		second, err := s.Play("song.mp3", mo.None[string]())
		So(err, ShouldBeNil)

		Convey("Each run acquires and releases its own resources", func() {
			So(first.State, ShouldEqual, player.Ended)
			So(second.State, ShouldEqual, player.Ended)
			So(rec.count("instance.new"), ShouldEqual, 2)
			So(rec.count("instance.release"), ShouldEqual, 2)
			So(rec.count("media.release"), ShouldEqual, 2)
		})
	})
}

func TestSessionLog(t *testing.T) {
	Convey("Given a session log file", t, func() {
		_ = filesystem.API().Remove("/logs/session.log")

		rec := &recorder{}
		engine := &fakeEngine{rec: rec, states: []player.State{player.Playing, player.Playing, player.Playing, player.Error}}
		s, _ := newTestSession(engine, nil, false)
		s.opts.Timings.StallWarning = 600 * time.Millisecond

		_, err := s.Play("clip.avi", mo.Some("/logs/session.log"))
		So(err, ShouldBeNil)

		contents, err := afero.ReadFile(filesystem.API(), "/logs/session.log")
		So(err, ShouldBeNil)
		text := string(contents)

		Convey("The lifecycle is recorded", func() {
			So(text, ShouldContainSubstring, "session created")
			So(text, ShouldContainSubstring, "file=clip.avi")
			So(text, ShouldContainSubstring, "playback started")
			So(text, ShouldContainSubstring, "session released")
		})

		Convey("The engine error is a warning", func() {
			So(text, ShouldContainSubstring, "engine reported an error")
		})

		Convey("A stall is warned about once", func() {
			So(strings.Count(text, "stall threshold"), ShouldEqual, 1)
		})
	})
}

func TestReleaser(t *testing.T) {
	Convey("Given a guarded release", t, func() {
		calls := 0
		r := guard("media", func() error {
			calls++
			return nil
		})

		So(r.Release(), ShouldBeNil)
		So(calls, ShouldEqual, 1)

		Convey("A second release panics", func() {
			So(func() { _ = r.Release() }, ShouldPanic)
			So(calls, ShouldEqual, 1)
		})
	})

	Convey("Release errors are wrapped with the resource name", t, func() {
		r := guard("player", func() error { return errBroken })
		err := r.Release()
		So(errors.Is(err, errBroken), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "player")
	})
}
