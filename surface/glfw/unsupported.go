//go:build !darwin

package glfw

import "github.com/quickplay-cli/quickplay/surface"

// New reports surface.ErrUnsupported: engines use their own fullscreen output here.
func New() (surface.Toolkit, error) {
	return nil, surface.ErrUnsupported
}
