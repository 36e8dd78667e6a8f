package session

import (
	"errors"
	"os"
	"time"

	"github.com/quickplay-cli/quickplay/player"
	"github.com/quickplay-cli/quickplay/surface"
)

// recorder collects every engine and toolkit call in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(call string) {
	r.calls = append(r.calls, call)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (r *recorder) index(call string) int {
	for i, c := range r.calls {
		if c == call {
			return i
		}
	}
	return -1
}

type fakeEngine struct {
	rec *recorder

	// states is returned by successive State calls; the last one repeats.
	states []player.State

	// statMedia makes NewMedia stat the path first and fail when it is missing.
	statMedia bool

	opts        player.Options
	instanceErr error
	mediaErr    error
	stateErr    error
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) NewInstance(opts player.Options) (player.Instance, error) {
	if e.instanceErr != nil {
		return nil, e.instanceErr
	}
	e.opts = opts
	e.rec.add("instance.new")
	return &fakeInstance{engine: e}, nil
}

type fakeInstance struct {
	engine *fakeEngine
}

func (i *fakeInstance) NewMedia(path string) (player.Media, error) {
	if i.engine.mediaErr != nil {
		return nil, i.engine.mediaErr
	}
	if i.engine.statMedia {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
	}
	i.engine.rec.add("media.new")
	return &fakeMedia{rec: i.engine.rec, path: path}, nil
}

func (i *fakeInstance) NewPlayer() (player.Player, error) {
	i.engine.rec.add("player.new")
	return &fakePlayer{engine: i.engine}, nil
}

func (i *fakeInstance) Release() error {
	i.engine.rec.add("instance.release")
	return nil
}

type fakeMedia struct {
	rec  *recorder
	path string
}

func (m *fakeMedia) Path() string { return m.path }

func (m *fakeMedia) Release() error {
	m.rec.add("media.release")
	return nil
}

type fakePlayer struct {
	engine *fakeEngine
	polls  int
}

func (p *fakePlayer) SetMedia(player.Media) error {
	p.engine.rec.add("player.set_media")
	return nil
}

func (p *fakePlayer) Play() error {
	p.engine.rec.add("player.play")
	return nil
}

func (p *fakePlayer) Stop() error {
	p.engine.rec.add("player.stop")
	return nil
}

func (p *fakePlayer) State() (player.State, error) {
	if p.engine.stateErr != nil {
		return player.Starting, p.engine.stateErr
	}
	states := p.engine.states
	if len(states) == 0 {
		return player.Ended, nil
	}
	i := p.polls
	if i >= len(states) {
		i = len(states) - 1
	}
	p.polls++
	return states[i], nil
}

func (p *fakePlayer) SetFullscreen(fullscreen bool) error {
	if fullscreen {
		p.engine.rec.add("player.fullscreen")
	}
	return nil
}

func (p *fakePlayer) AttachSurface(uintptr) error {
	p.engine.rec.add("player.attach")
	return nil
}

func (p *fakePlayer) Release() error {
	p.engine.rec.add("player.release")
	return nil
}

type fakeToolkit struct {
	rec       *recorder
	display   surface.Rect
	windowErr error
	geometry  surface.Rect
}

func (t *fakeToolkit) PrimaryDisplay() (surface.Rect, error) {
	return t.display, nil
}

func (t *fakeToolkit) NewWindow(geometry surface.Rect) (surface.Window, error) {
	if t.windowErr != nil {
		return nil, t.windowErr
	}
	t.geometry = geometry
	t.rec.add("window.new")
	return &fakeWindow{rec: t.rec}, nil
}

func (t *fakeToolkit) ProcessEvents() {
	t.rec.add("toolkit.events")
}

func (t *fakeToolkit) Terminate() {
	t.rec.add("toolkit.terminate")
}

type fakeWindow struct {
	rec *recorder
}

func (w *fakeWindow) Show() error {
	w.rec.add("window.show")
	return nil
}

func (w *fakeWindow) Handle() (uintptr, error) {
	return 0x2a, nil
}

func (w *fakeWindow) Close() error {
	w.rec.add("window.close")
	return nil
}

// clock is a virtual time source advanced by sleeping.
type clock struct {
	now    time.Time
	sleeps []time.Duration
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *clock) Now() time.Time {
	return c.now
}

var errBroken = errors.New("broken")

// newTestSession wires fakes into a session whose sleeps are virtual.
func newTestSession(engine *fakeEngine, toolkit surface.Toolkit, composited bool) (*Session, *clock) {
	c := newClock()
	s := New(Options{
		Engine:           engine,
		Toolkit:          toolkit,
		Composited:       composited,
		MouseHideTimeout: 10,
		Timings:          DefaultTimings(),
	})
	s.sleep = c.Sleep
	s.now = c.Now
	return s, c
}
