// Package player defines the playback engine boundary and its mpv JSON-IPC backend.
//
// An Engine creates Instances; an Instance creates the Media and Player objects bound to it.
// Every object is released explicitly by its owner, exactly once.
package player

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// State is the engine playback state as seen by a polling caller.
type State int

const (
	// Starting covers every pre-playback phase: idle, opening and buffering.
	Starting State = iota
	Playing
	Ended
	Error
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether polling should stop.
func (s State) Terminal() bool {
	return s == Ended || s == Error
}

// Options configure an engine instance at startup.
type Options struct {
	// MouseHideTimeout is the pointer idle timeout, in the engine's native unit.
	MouseHideTimeout int

	// Extra holds additional engine-specific startup options.
	Extra []string
}

// Engine is a playback library capable of creating configured instances.
type Engine interface {
	Name() string
	NewInstance(opts Options) (Instance, error)
}

// Instance is a configured engine session.
type Instance interface {
	// NewMedia creates the engine-side representation of a local file.
	NewMedia(path string) (Media, error)

	// NewPlayer creates a player bound to this instance.
	NewPlayer() (Player, error)

	Release() error
}

// Media is one input file known to an instance.
type Media interface {
	Path() string
	Release() error
}

// Player renders one Media.
type Player interface {
	SetMedia(m Media) error
	Play() error
	Stop() error

	// State never blocks for longer than a single engine query.
	State() (State, error)

	// SetFullscreen asks the engine to open its own fullscreen output.
	SetFullscreen(fullscreen bool) error

	// AttachSurface makes the engine render into an existing native view instead of its own window.
	// The handle is not owned by the player.
	AttachSurface(handle uintptr) error

	Release() error
}

// FileURL returns the file URL of path, made absolute first. The file need not exist.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", path, err)
	}

	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return (&url.URL{Scheme: "file", Path: slashed}).String(), nil
}
