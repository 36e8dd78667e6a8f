//go:build darwin

package glfw

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/quickplay-cli/quickplay/constant"
	"github.com/quickplay-cli/quickplay/log"
	"github.com/quickplay-cli/quickplay/surface"
)

// GLFW must be driven from the main thread.
func init() {
	runtime.LockOSThread()
}

type toolkit struct{}

// New initializes GLFW. Call Terminate on the returned toolkit before exiting.
func New() (surface.Toolkit, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	return &toolkit{}, nil
}

func (*toolkit) PrimaryDisplay() (surface.Rect, error) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return surface.Rect{}, errors.New("no primary monitor")
	}

	mode := monitor.GetVideoMode()
	if mode == nil {
		return surface.Rect{}, errors.New("primary monitor reports no video mode")
	}

	x, y := monitor.GetPos()
	return surface.Rect{X: x, Y: y, Width: mode.Width, Height: mode.Height}, nil
}

func (*toolkit) NewWindow(geometry surface.Rect) (surface.Window, error) {
	if geometry.Empty() {
		return nil, fmt.Errorf("empty window geometry %s", geometry)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Decorated, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Floating, glfw.True)
	glfw.WindowHint(glfw.AutoIconify, glfw.False)

	w, err := glfw.CreateWindow(geometry.Width, geometry.Height, constant.App, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	w.SetPos(geometry.X, geometry.Y)
	log.Debugf("surface window created at %s", geometry)

	return &window{w: w}, nil
}

func (*toolkit) ProcessEvents() {
	glfw.PollEvents()
}

func (*toolkit) Terminate() {
	glfw.Terminate()
}

type window struct {
	w *glfw.Window
}

func (w *window) Show() error {
	if w.w == nil {
		return surface.ErrClosed
	}
	w.w.Show()
	return nil
}

// Handle returns the window's content NSView, the drawable libVLC and mpv expect on macOS.
func (w *window) Handle() (uintptr, error) {
	if w.w == nil {
		return 0, surface.ErrClosed
	}

	view := contentView(w.w.GetCocoaWindow())
	if view == 0 {
		return 0, errors.New("window has no content view")
	}
	return view, nil
}

func (w *window) Close() error {
	if w.w == nil {
		return surface.ErrClosed
	}
	w.w.Destroy()
	w.w = nil
	return nil
}
