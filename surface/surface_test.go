package surface

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type countingToolkit struct {
	events     int
	terminated int
}

func (c *countingToolkit) PrimaryDisplay() (Rect, error)  { return Rect{Width: 1920, Height: 1080}, nil }
func (c *countingToolkit) NewWindow(Rect) (Window, error) { return nil, nil }
func (c *countingToolkit) ProcessEvents()                 { c.events++ }
func (c *countingToolkit) Terminate()                     { c.terminated++ }

func TestLazy(t *testing.T) {
	Convey("Given a lazy toolkit", t, func() {
		inits := 0
		inner := &countingToolkit{}
		lazy := NewLazy(func() (Toolkit, error) {
			inits++
			return inner, nil
		})

		Convey("Nothing is initialized up front", func() {
			So(inits, ShouldEqual, 0)
			So(lazy.Initialized(), ShouldBeFalse)

			Convey("And Terminate is a no-op", func() {
				lazy.Terminate()
				So(inner.terminated, ShouldEqual, 0)
			})
		})

		Convey("The factory runs once across calls", func() {
			rect, err := lazy.PrimaryDisplay()
			So(err, ShouldBeNil)
			So(rect.String(), ShouldEqual, "1920x1080+0+0")
			lazy.ProcessEvents()
			_, _ = lazy.NewWindow(rect)
			So(inits, ShouldEqual, 1)
			So(inner.events, ShouldEqual, 1)

			Convey("And Terminate reaches the toolkit exactly once", func() {
				lazy.Terminate()
				lazy.Terminate()
				So(inner.terminated, ShouldEqual, 1)
				So(lazy.Initialized(), ShouldBeFalse)
			})

			Convey("And calls after Terminate fail instead of panicking", func() {
				lazy.Terminate()

				_, err := lazy.PrimaryDisplay()
				So(errors.Is(err, ErrTerminated), ShouldBeTrue)
				_, err = lazy.NewWindow(rect)
				So(errors.Is(err, ErrTerminated), ShouldBeTrue)
				So(func() { lazy.ProcessEvents() }, ShouldNotPanic)
				So(inits, ShouldEqual, 1)
				So(inner.events, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a toolkit that cannot start", t, func() {
		lazy := NewLazy(func() (Toolkit, error) { return nil, ErrUnsupported })

		Convey("Every call reports the init error", func() {
			_, err := lazy.PrimaryDisplay()
			So(errors.Is(err, ErrUnsupported), ShouldBeTrue)
			_, err = lazy.NewWindow(Rect{})
			So(errors.Is(err, ErrUnsupported), ShouldBeTrue)
			lazy.ProcessEvents()
			So(lazy.Initialized(), ShouldBeFalse)
		})
	})
}

func TestRect(t *testing.T) {
	Convey("Rect", t, func() {
		So(Rect{Width: 0, Height: 10}.Empty(), ShouldBeTrue)
		So(Rect{X: -1440, Width: 1440, Height: 900}.Empty(), ShouldBeFalse)
	})
}
