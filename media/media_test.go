package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Classify", t, func() {
		Convey("Video extensions in any case are video", func() {
			for _, path := range []string{
				"clip.mp4", "clip.AVI", "a/b/clip.Mov", "movie.mkv", "old.FLV", "/abs/path/x.MP4",
			} {
				So(Classify(path), ShouldEqual, Video)
			}
		})

		Convey("Everything else is audio", func() {
			for _, path := range []string{
				"song.mp3", "track.flac", "noext", "clip.mp4.bak", "video.webm", ".mp4x", "dir.mkv/file",
			} {
				So(Classify(path), ShouldEqual, Audio)
			}
		})
	})
}

func TestSource(t *testing.T) {
	Convey("Given a source", t, func() {
		src := NewSource("/media/examples/Clip.MKV")

		Convey("It keeps the path and kind", func() {
			So(src.Path(), ShouldEqual, "/media/examples/Clip.MKV")
			So(src.Kind(), ShouldEqual, Video)
			So(src.Name(), ShouldEqual, "Clip.MKV")
			So(src.Kind().String(), ShouldEqual, "video")
		})
	})
}
