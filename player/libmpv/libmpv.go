// Package libmpv implements the playback engine in process through libmpv.
package libmpv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/quickplay-cli/quickplay/player"
	"github.com/wildeyedskies/go-mpv/mpv"
)

// Name is the engine name used in configuration.
const Name = "libmpv"

type Engine struct{}

func New() *Engine { return &Engine{} }

func (*Engine) Name() string { return Name }

// NewInstance records the startup options; each Player gets its own mpv handle.
func (*Engine) NewInstance(opts player.Options) (player.Instance, error) {
	return &instance{opts: opts}, nil
}

type instance struct {
	opts player.Options
}

func (i *instance) NewMedia(path string) (player.Media, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}
	return &media{path: path}, nil
}

func (i *instance) NewPlayer() (player.Player, error) {
	handle := mpv.Create()
	if handle == nil {
		return nil, errors.New("mpv_create returned no handle")
	}

	options := [][2]string{
		{"cursor-autohide", strconv.Itoa(i.opts.MouseHideTimeout)},
		{"input-default-bindings", "no"},
		{"keep-open", "no"},
	}
	for _, opt := range options {
		if err := handle.SetOptionString(opt[0], opt[1]); err != nil {
			handle.TerminateDestroy()
			return nil, fmt.Errorf("set %s: %w", opt[0], err)
		}
	}

	return &libmpvPlayer{handle: handle, extra: i.opts.Extra}, nil
}

func (*instance) Release() error { return nil }

type media struct {
	path string
}

func (m *media) Path() string   { return m.path }
func (m *media) Release() error { return nil }

type libmpvPlayer struct {
	handle      *mpv.Mpv
	extra       []string
	media       player.Media
	windowed    bool
	initialized bool
	tracker     tracker
}

func (p *libmpvPlayer) SetMedia(m player.Media) error {
	p.media = m
	return nil
}

func (p *libmpvPlayer) SetFullscreen(fullscreen bool) error {
	p.windowed = p.windowed || fullscreen
	return p.handle.SetOptionString("fullscreen", yesNo(fullscreen))
}

func (p *libmpvPlayer) AttachSurface(handle uintptr) error {
	if p.initialized {
		return player.ErrStarted
	}
	p.windowed = true
	return p.handle.SetOptionString("wid", strconv.FormatUint(uint64(handle), 10))
}

// Play initializes the handle on first use, then loads the media.
func (p *libmpvPlayer) Play() error {
	if p.media == nil {
		return errors.New("no media set")
	}

	if !p.initialized {
		if !p.windowed {
			if err := p.handle.SetOptionString("vid", "no"); err != nil {
				return fmt.Errorf("disable video: %w", err)
			}
			if err := p.handle.SetOptionString("force-window", "no"); err != nil {
				return fmt.Errorf("disable window: %w", err)
			}
		}
		for _, arg := range p.extra {
			name, value := splitOption(arg)
			if err := p.handle.SetOptionString(name, value); err != nil {
				return fmt.Errorf("set %s: %w", name, err)
			}
		}
		if err := p.handle.Initialize(); err != nil {
			return fmt.Errorf("initialize mpv: %w", err)
		}
		p.initialized = true
	}

	return p.handle.Command([]string{"loadfile", p.media.Path()})
}

// State drains pending events without blocking and reports the resulting state.
func (p *libmpvPlayer) State() (player.State, error) {
	if !p.initialized {
		return player.Starting, nil
	}
	for {
		e := p.handle.WaitEvent(0)
		if e == nil || e.Event_Id == mpv.EVENT_NONE {
			return p.tracker.state, nil
		}
		p.tracker.observe(e)
	}
}

func (p *libmpvPlayer) Stop() error {
	if !p.initialized {
		return nil
	}
	return p.handle.Command([]string{"stop"})
}

func (p *libmpvPlayer) Release() error {
	p.handle.TerminateDestroy()
	return nil
}

// tracker folds the libmpv event stream into a playback state.
type tracker struct {
	state  player.State
	loaded bool
}

func (t *tracker) observe(e *mpv.Event) {
	if t.state.Terminal() {
		return
	}

	switch e.Event_Id {
	case mpv.EVENT_START_FILE:
		t.state = player.Starting
	case mpv.EVENT_FILE_LOADED, mpv.EVENT_PLAYBACK_RESTART:
		t.loaded = true
		t.state = player.Playing
	case mpv.EVENT_END_FILE:
		// A file that ends without ever loading could not be opened.
		if t.loaded {
			t.state = player.Ended
		} else {
			t.state = player.Error
		}
	case mpv.EVENT_SHUTDOWN:
		t.state = player.Ended
	}
}

// splitOption turns "--name=value" or "name=value" into an option pair; a bare name means "yes".
func splitOption(arg string) (string, string) {
	name, value, ok := strings.Cut(strings.TrimLeft(arg, "-"), "=")
	if !ok {
		return name, "yes"
	}
	return name, value
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
