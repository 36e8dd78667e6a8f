// Package surface is the windowing boundary used to draw video into an application-owned,
// borderless window that covers the primary display.
package surface

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnsupported is returned by toolkits that cannot run on this platform.
	ErrUnsupported = errors.New("surface toolkit unsupported on this platform")

	// ErrClosed is returned by every Window method once the window was closed.
	ErrClosed = errors.New("surface window closed")

	// ErrTerminated is returned by a Lazy toolkit after Terminate.
	ErrTerminated = errors.New("surface toolkit terminated")
)

// Rect is a display geometry in screen coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Toolkit is a process-wide windowing system.
type Toolkit interface {
	PrimaryDisplay() (Rect, error)

	// NewWindow creates a hidden frameless window with the given geometry.
	NewWindow(geometry Rect) (Window, error)

	// ProcessEvents handles pending UI events without blocking.
	ProcessEvents()

	Terminate()
}

// Window is a frameless top-level window. It must not be reused after Close.
type Window interface {
	Show() error

	// Handle is the native drawable handed to the engine.
	Handle() (uintptr, error)

	Close() error
}

// Lazy initializes a toolkit on first use and hands the same instance to every caller.
type Lazy struct {
	factory func() (Toolkit, error)

	once       sync.Once
	toolkit    Toolkit
	err        error
	terminated bool
}

// NewLazy wraps factory; nothing is initialized until a Toolkit method is called.
func NewLazy(factory func() (Toolkit, error)) *Lazy {
	return &Lazy{factory: factory}
}

func (l *Lazy) get() (Toolkit, error) {
	if l.terminated {
		return nil, ErrTerminated
	}

	l.once.Do(func() {
		l.toolkit, l.err = l.factory()
		if l.err != nil {
			l.err = fmt.Errorf("initialize surface toolkit: %w", l.err)
		}
	})
	return l.toolkit, l.err
}

func (l *Lazy) PrimaryDisplay() (Rect, error) {
	t, err := l.get()
	if err != nil {
		return Rect{}, err
	}
	return t.PrimaryDisplay()
}

func (l *Lazy) NewWindow(geometry Rect) (Window, error) {
	t, err := l.get()
	if err != nil {
		return nil, err
	}
	return t.NewWindow(geometry)
}

func (l *Lazy) ProcessEvents() {
	if t, err := l.get(); err == nil {
		t.ProcessEvents()
	}
}

// Initialized reports whether the factory has run successfully.
func (l *Lazy) Initialized() bool {
	return l.toolkit != nil
}

// Terminate tears the toolkit down when, and only when, it was initialized.
// Every later call on l fails with ErrTerminated.
func (l *Lazy) Terminate() {
	if l.Initialized() {
		l.toolkit.Terminate()
		l.toolkit = nil
	}
	l.terminated = true
}
