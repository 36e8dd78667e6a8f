package session

import "fmt"

// releaser guards a single release call. Releasing twice is a programming error and panics.
type releaser struct {
	name    string
	release func() error
	done    bool
}

func guard(name string, release func() error) *releaser {
	return &releaser{name: name, release: release}
}

func (r *releaser) Release() error {
	if r.done {
		panic(fmt.Sprintf("%s released twice", r.name))
	}
	r.done = true
	if err := r.release(); err != nil {
		return fmt.Errorf("release %s: %w", r.name, err)
	}
	return nil
}
