// Package glfw provides the surface toolkit on top of GLFW. Only macOS draws video into its own
// window, so the toolkit is built for darwin and reports surface.ErrUnsupported elsewhere.
package glfw
