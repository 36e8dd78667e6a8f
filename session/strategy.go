package session

import (
	"github.com/quickplay-cli/quickplay/constant"
	"github.com/quickplay-cli/quickplay/media"
)

// Strategy is how a session presents its media, decided once before playback.
type Strategy int

const (
	// Headless plays without any window.
	Headless Strategy = iota

	// NativeFullscreen lets the engine open its own fullscreen output.
	NativeFullscreen

	// CompositedSurface draws into a frameless window owned by the session.
	CompositedSurface
)

func (s Strategy) String() string {
	switch s {
	case NativeFullscreen:
		return "native-fullscreen"
	case CompositedSurface:
		return "composited-surface"
	default:
		return "headless"
	}
}

// SelectStrategy picks the presentation for a media kind. Audio is always headless.
func SelectStrategy(kind media.Kind, composited bool) Strategy {
	switch {
	case kind != media.Video:
		return Headless
	case composited:
		return CompositedSurface
	default:
		return NativeFullscreen
	}
}

// Surface modes accepted by PlatformNeedsComposite.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// SurfaceModes lists the accepted modes.
var SurfaceModes = []string{ModeAuto, ModeAlways, ModeNever}

// PlatformNeedsComposite reports whether video on goos is drawn into an application window.
// In auto mode only macOS does so, avoiding its separate-desktop native fullscreen.
func PlatformNeedsComposite(goos, mode string) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return goos == constant.Darwin
	}
}
