// Package media classifies local media files and probes their content.
package media

import (
	"path/filepath"
	"strings"
)

// Kind is the presentation class of a media file.
type Kind int

const (
	Audio Kind = iota
	Video
)

func (k Kind) String() string {
	if k == Video {
		return "video"
	}
	return "audio"
}

// VideoExtensions are the container suffixes treated as video. Everything else plays as audio.
var VideoExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".flv"}

// Source is a file path together with its classification.
type Source struct {
	path string
	kind Kind
}

// NewSource classifies path by extension.
func NewSource(path string) Source {
	return Source{path: path, kind: Classify(path)}
}

func (s Source) Path() string { return s.path }
func (s Source) Kind() Kind   { return s.kind }

// Name is the final path element, as announced to the user.
func (s Source) Name() string { return filepath.Base(s.path) }

// Classify reports Video when the extension matches VideoExtensions case-insensitively.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range VideoExtensions {
		if ext == v {
			return Video
		}
	}
	return Audio
}
