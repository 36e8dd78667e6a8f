package media

import (
	"fmt"
	"io"

	"github.com/dhowden/tag"
	"github.com/gabriel-vasile/mimetype"
	"github.com/quickplay-cli/quickplay/filesystem"
	"github.com/quickplay-cli/quickplay/util"
)

// minTagged is the size of an ID3v1 trailer. Shorter files carry no tags the reader can parse.
const minTagged = 128

// Info describes a probed file. Tag fields are empty when the file carries no tags.
type Info struct {
	Source
	MIME   string
	Format string
	Title  string
	Artist string
	Album  string
}

// Probe sniffs the content type and reads embedded tags.
// Kind is still taken from the extension; the content is only reported.
func Probe(path string) (*Info, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer util.Ignore(f.Close)

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("detect type: %w", err)
	}

	info := &Info{
		Source: NewSource(path),
		MIME:   detected.String(),
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.Size() < minTagged {
		return info, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}

	m, err := tag.ReadFrom(f)
	if err != nil {
		// ErrNoTagsFound and unparseable tags alike leave the tag fields empty.
		return info, nil
	}

	info.Format = string(m.Format())
	info.Title = m.Title()
	info.Artist = m.Artist()
	info.Album = m.Album()

	return info, nil
}
