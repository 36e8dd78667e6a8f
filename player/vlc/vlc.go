// Package vlc implements the playback engine on top of libVLC.
package vlc

import (
	"fmt"
	"runtime"

	vlc "github.com/adrg/libvlc-go/v3"
	"github.com/quickplay-cli/quickplay/constant"
	"github.com/quickplay-cli/quickplay/player"
)

// Name is the engine name used in configuration.
const Name = "vlc"

// Engine creates libVLC instances. libVLC keeps one process-wide instance,
// so only one Instance may be alive at a time.
type Engine struct{}

func New() *Engine { return &Engine{} }

func (*Engine) Name() string { return Name }

func (*Engine) NewInstance(opts player.Options) (player.Instance, error) {
	args := append([]string{fmt.Sprintf("--mouse-hide-timeout=%d", opts.MouseHideTimeout)}, opts.Extra...)
	if err := vlc.Init(args...); err != nil {
		return nil, fmt.Errorf("init libvlc: %w", err)
	}
	return &instance{}, nil
}

type instance struct{}

// NewMedia opens path by URL, so a missing file reaches the player's Error state.
func (*instance) NewMedia(path string) (player.Media, error) {
	location, err := player.FileURL(path)
	if err != nil {
		return nil, err
	}

	m, err := vlc.NewMediaFromURL(location)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return &media{path: path, m: m}, nil
}

func (*instance) NewPlayer() (player.Player, error) {
	p, err := vlc.NewPlayer()
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	return &vlcPlayer{p: p}, nil
}

func (*instance) Release() error {
	return vlc.Release()
}

type media struct {
	path string
	m    *vlc.Media
}

func (m *media) Path() string   { return m.path }
func (m *media) Release() error { return m.m.Release() }

type vlcPlayer struct {
	p *vlc.Player
}

func (v *vlcPlayer) SetMedia(m player.Media) error {
	native, ok := m.(*media)
	if !ok {
		return fmt.Errorf("media %T was not created by the vlc engine", m)
	}
	return v.p.SetMedia(native.m)
}

func (v *vlcPlayer) Play() error { return v.p.Play() }
func (v *vlcPlayer) Stop() error { return v.p.Stop() }

func (v *vlcPlayer) State() (player.State, error) {
	s, err := v.p.MediaState()
	if err != nil {
		return player.Error, err
	}
	return mapState(s), nil
}

func (v *vlcPlayer) SetFullscreen(fullscreen bool) error {
	return v.p.SetFullScreen(fullscreen)
}

// AttachSurface hands the native view to libVLC using the platform's drawable call.
func (v *vlcPlayer) AttachSurface(handle uintptr) error {
	switch runtime.GOOS {
	case constant.Darwin:
		return v.p.SetNSObject(handle)
	case constant.Windows:
		return v.p.SetHWND(handle)
	default:
		return v.p.SetXWindow(uint32(handle))
	}
}

func (v *vlcPlayer) Release() error { return v.p.Release() }

// mapState folds libVLC's media states onto the four polled states.
// A player stopped outside of the session counts as Ended.
func mapState(s vlc.MediaState) player.State {
	switch s {
	case vlc.MediaPlaying, vlc.MediaPaused:
		return player.Playing
	case vlc.MediaEnded, vlc.MediaStopped:
		return player.Ended
	case vlc.MediaError:
		return player.Error
	default:
		return player.Starting
	}
}
