package history

import (
	"fmt"
	"path/filepath"
	"time"
)

// Record is the last known outcome of playing one file.
type Record struct {
	Path     string    `json:"path"`
	Kind     string    `json:"kind"`
	Strategy string    `json:"strategy"`
	State    string    `json:"state"`
	Engine   string    `json:"engine"`
	PlayedAt time.Time `json:"played_at"`

	// Count is how many sessions have played this path.
	Count int `json:"count"`
}

func (r *Record) Name() string {
	return filepath.Base(r.Path)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s : %s (%dx)", r.Name(), r.State, r.Count)
}
