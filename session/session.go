// Package session plays one media file to completion: it classifies the file, configures an engine
// instance, optionally opens a composited surface, polls until a terminal state and releases
// everything it acquired.
package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/quickplay-cli/quickplay/log"
	"github.com/quickplay-cli/quickplay/media"
	"github.com/quickplay-cli/quickplay/player"
	"github.com/quickplay-cli/quickplay/surface"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

var (
	// ErrEngine wraps failures to acquire or start engine objects.
	ErrEngine = errors.New("playback engine failure")

	// ErrSurface wraps failures to build the composited surface. Playback is never started.
	ErrSurface = errors.New("surface creation failure")

	// errUnavailable marks media the engine refused to open because the file is missing.
	errUnavailable = errors.New("media unavailable")
)

// Phase is the lifecycle position of the most recent Play call.
type Phase int

const (
	Created Phase = iota
	Configured
	Presenting
	Playing
	Terminal
	Released
)

func (p Phase) String() string {
	switch p {
	case Created:
		return "created"
	case Configured:
		return "configured"
	case Presenting:
		return "presenting"
	case Playing:
		return "playing"
	case Terminal:
		return "terminal"
	case Released:
		return "released"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Timings are the fixed waits of a session.
type Timings struct {
	// Grace is slept once after Play so very short files are not read as already ended.
	Grace time.Duration

	// Poll separates state checks when no surface is open.
	Poll time.Duration

	// SurfacePoll separates state checks while a surface is open.
	SurfacePoll time.Duration

	// Settle is slept between the end of polling and stopping the engine.
	Settle time.Duration

	// StallWarning, when positive, logs a warning to the session log once playback has not
	// reached a terminal state this long after it started.
	StallWarning time.Duration
}

// DefaultTimings returns the standard waits.
func DefaultTimings() Timings {
	return Timings{
		Grace:       500 * time.Millisecond,
		Poll:        100 * time.Millisecond,
		SurfacePoll: 50 * time.Millisecond,
		Settle:      100 * time.Millisecond,
	}
}

// Options configure every Play call of a Session.
type Options struct {
	Engine player.Engine

	// Toolkit is only used when Composited is set.
	Toolkit surface.Toolkit

	// Composited is true when the platform draws video into a session-owned window.
	Composited bool

	MouseHideTimeout int
	ExtraArgs        []string
	Timings          Timings
}

// Result is the outcome of one Play call.
type Result struct {
	Source    media.Source
	Strategy  Strategy
	State     player.State
	Polls     int
	StartedAt time.Time
	EndedAt   time.Time
}

// OK reports whether playback ran to its end.
func (r *Result) OK() bool {
	return r.State == player.Ended
}

func (r *Result) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Session plays files one at a time. Consecutive Play calls are independent.
type Session struct {
	opts  Options
	phase Phase

	sleep func(time.Duration)
	now   func() time.Time
}

func New(opts Options) *Session {
	return &Session{
		opts:  opts,
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// Phase reports where the most recent Play call is, or ended, in its lifecycle.
func (s *Session) Phase() Phase {
	return s.phase
}

// playback holds what one Play call acquired, in acquisition order.
type playback struct {
	instance *releaser
	media    *releaser
	player   *releaser
	window   surface.Window
	engine   player.Player
	started  bool
}

// Play plays path until the engine reports Ended or Error and returns the terminal state.
// An engine Error is not an error of Play, nor is a missing file, which ends as Error.
// Engine acquisition and surface failures are errors, reported only after everything acquired
// so far has been released.
func (s *Session) Play(path string, logFile mo.Option[string]) (*Result, error) {
	s.phase = Created

	logger, closeLog := s.openLog(logFile)
	defer func() { _ = closeLog.Close() }()

	src := media.NewSource(path)
	result := &Result{
		Source:    src,
		Strategy:  SelectStrategy(src.Kind(), s.opts.Composited),
		StartedAt: s.now(),
	}
	entry := logger.WithFields(logrus.Fields{
		"file":     src.Path(),
		"kind":     src.Kind().String(),
		"strategy": result.Strategy.String(),
		"engine":   s.opts.Engine.Name(),
	})
	entry.Info("session created")
	log.Infof("playing %s as %s (%s)", src.Path(), src.Kind(), result.Strategy)

	pb := &playback{}
	defer func() {
		s.teardown(pb, entry)
		result.EndedAt = s.now()
	}()

	if err := s.configure(pb, src); err != nil {
		if errors.Is(err, errUnavailable) {
			entry.WithError(err).Warn("engine reported an error")
			result.State = player.Error
			s.phase = Terminal
			return result, nil
		}
		entry.WithError(err).Error("engine configuration failed")
		return nil, err
	}
	s.phase = Configured

	if err := s.present(pb, result.Strategy, entry); err != nil {
		entry.WithError(err).Error("presentation failed")
		return nil, err
	}

	if err := pb.engine.Play(); err != nil {
		err = fmt.Errorf("%w: start playback: %w", ErrEngine, err)
		entry.WithError(err).Error("playback did not start")
		return nil, err
	}
	pb.started = true
	s.phase = Playing
	entry.Info("playback started")

	s.sleep(s.opts.Timings.Grace)
	result.State, result.Polls = s.poll(pb, result.StartedAt, entry)
	s.phase = Terminal

	if result.State == player.Error {
		entry.WithField("polls", result.Polls).Warn("engine reported an error")
	} else {
		entry.WithField("polls", result.Polls).Info("playback ended")
	}

	return result, nil
}

// configure acquires the instance, media and player and binds them.
func (s *Session) configure(pb *playback, src media.Source) error {
	instance, err := s.opts.Engine.NewInstance(player.Options{
		MouseHideTimeout: s.opts.MouseHideTimeout,
		Extra:            s.opts.ExtraArgs,
	})
	if err != nil {
		return fmt.Errorf("%w: create instance: %w", ErrEngine, err)
	}
	pb.instance = guard("engine instance", instance.Release)

	m, err := instance.NewMedia(src.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", errUnavailable, err)
	}
	if err != nil {
		return fmt.Errorf("%w: create media: %w", ErrEngine, err)
	}
	pb.media = guard("media", m.Release)

	p, err := instance.NewPlayer()
	if err != nil {
		return fmt.Errorf("%w: create player: %w", ErrEngine, err)
	}
	pb.player = guard("player", p.Release)
	pb.engine = p

	if err := p.SetMedia(m); err != nil {
		return fmt.Errorf("%w: set media: %w", ErrEngine, err)
	}
	return nil
}

// present applies the strategy before playback starts.
func (s *Session) present(pb *playback, strategy Strategy, entry *logrus.Entry) error {
	switch strategy {
	case CompositedSurface:
		s.phase = Presenting
		if err := s.openSurface(pb); err != nil {
			return fmt.Errorf("%w: %w", ErrSurface, err)
		}
		entry.Info("engine attached to surface")
	case NativeFullscreen:
		if err := pb.engine.SetFullscreen(true); err != nil {
			return fmt.Errorf("%w: fullscreen: %w", ErrEngine, err)
		}
	}
	return nil
}

func (s *Session) openSurface(pb *playback) error {
	toolkit := s.opts.Toolkit
	if toolkit == nil {
		return errors.New("no surface toolkit configured")
	}

	geometry, err := toolkit.PrimaryDisplay()
	if err != nil {
		return fmt.Errorf("query primary display: %w", err)
	}

	window, err := toolkit.NewWindow(geometry)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	pb.window = window

	if err := window.Show(); err != nil {
		return fmt.Errorf("show window: %w", err)
	}

	handle, err := window.Handle()
	if err != nil {
		return fmt.Errorf("native handle: %w", err)
	}

	if err := pb.engine.AttachSurface(handle); err != nil {
		return fmt.Errorf("attach engine: %w", err)
	}
	return nil
}

// poll blocks until the engine reports a terminal state. A failed state query counts as Error.
func (s *Session) poll(pb *playback, startedAt time.Time, entry *logrus.Entry) (player.State, int) {
	interval := s.opts.Timings.Poll
	if pb.window != nil {
		interval = s.opts.Timings.SurfacePoll
	}

	stallWarned := s.opts.Timings.StallWarning <= 0
	polls := 0
	for {
		state, err := pb.engine.State()
		polls++
		if err != nil {
			entry.WithError(err).Warn("state query failed")
			return player.Error, polls
		}
		if state.Terminal() {
			return state, polls
		}

		if !stallWarned && s.now().Sub(startedAt) > s.opts.Timings.StallWarning {
			stallWarned = true
			entry.WithField("state", state.String()).Warn("playback still running past the stall threshold")
		}

		if pb.window != nil {
			s.opts.Toolkit.ProcessEvents()
		}
		s.sleep(interval)
	}
}

// teardown closes the surface, stops the engine and releases media, player and instance in
// that order. Only what was acquired is touched.
func (s *Session) teardown(pb *playback, entry *logrus.Entry) {
	if pb.window != nil {
		if err := pb.window.Close(); err != nil {
			entry.WithError(err).Warn("closing surface failed")
		}
	}

	if pb.started {
		s.sleep(s.opts.Timings.Settle)
		if err := pb.engine.Stop(); err != nil {
			entry.WithError(err).Warn("stopping engine failed")
		}
	}

	for _, r := range []*releaser{pb.media, pb.player, pb.instance} {
		if r == nil {
			continue
		}
		if err := r.Release(); err != nil {
			entry.WithError(err).Warn("release failed")
			log.Warn(err)
		}
	}

	s.phase = Released
	entry.Info("session released")
}

// openLog returns the per-session logger, or a discarding one when no log file was given
// or it cannot be opened.
func (s *Session) openLog(logFile mo.Option[string]) (*logrus.Logger, io.Closer) {
	path, ok := logFile.Get()
	if !ok || path == "" {
		return log.Discard(), io.NopCloser(nil)
	}

	logger, closer, err := log.NewSessionLogger(path)
	if err != nil {
		log.Warnf("session log unavailable: %v", err)
		return log.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}
