package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/quickplay-cli/quickplay/log"
)

// MPVName is the engine name of the subprocess mpv backend.
const MPVName = "mpv"

const mpvQuitTimeout = 3 * time.Second

// ErrStarted is returned when a player option is changed after playback started.
var ErrStarted = errors.New("player already started")

// MPVEngine drives an external mpv process over its JSON-IPC socket.
type MPVEngine struct {
	// Binary is the mpv executable, looked up in PATH when relative.
	Binary string
}

// NewMPVEngine returns an engine using the mpv found in PATH.
func NewMPVEngine() *MPVEngine {
	return &MPVEngine{Binary: "mpv"}
}

func (e *MPVEngine) Name() string { return MPVName }

// NewInstance checks that the mpv binary is available. No process is started yet.
func (e *MPVEngine) NewInstance(opts Options) (Instance, error) {
	bin, err := exec.LookPath(e.Binary)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", e.Binary, err)
	}
	return &mpvInstance{binary: bin, opts: opts}, nil
}

type mpvInstance struct {
	binary string
	opts   Options
}

func (i *mpvInstance) NewMedia(path string) (Media, error) {
	target, err := sanitizeMediaTarget(path)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}
	return &mpvMedia{path: target}, nil
}

func (i *mpvInstance) NewPlayer() (Player, error) {
	return &MPV{binary: i.binary, opts: i.opts}, nil
}

// Release is a no-op: the instance owns no process.
func (i *mpvInstance) Release() error { return nil }

type mpvMedia struct {
	path string
}

func (m *mpvMedia) Path() string   { return m.path }
func (m *mpvMedia) Release() error { return nil }

// MPV is a Player backed by one mpv process, started by Play.
type MPV struct {
	binary     string
	opts       Options
	media      Media
	fullscreen bool
	wid        uintptr

	ipc     *ipcClient
	cmd     *exec.Cmd
	exited  chan struct{}
	exitErr error
	mu      sync.Mutex
}

func (m *MPV) SetMedia(media Media) error {
	if m.started() {
		return ErrStarted
	}
	m.media = media
	return nil
}

func (m *MPV) SetFullscreen(fullscreen bool) error {
	if m.started() {
		_, err := m.ipc.call("set_property", "fullscreen", fullscreen)
		return err
	}
	m.fullscreen = fullscreen
	return nil
}

func (m *MPV) AttachSurface(handle uintptr) error {
	if m.started() {
		return ErrStarted
	}
	m.wid = handle
	return nil
}

// Play spawns mpv and returns immediately; State reports Starting until the IPC socket answers.
func (m *MPV) Play() error {
	if m.media == nil {
		return errors.New("no media set")
	}
	if m.started() {
		return ErrStarted
	}

	socketPath, err := newSocketPath()
	if err != nil {
		return err
	}

	cmd := exec.Command(m.binary, m.args(socketPath)...)
	detach(cmd)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}
	log.Debugf("mpv started: pid=%d socket=%s", cmd.Process.Pid, socketPath)

	exited := make(chan struct{})
	m.mu.Lock()
	m.cmd = cmd
	m.exited = exited
	m.ipc = &ipcClient{socketPath: socketPath}
	m.mu.Unlock()

	go func() {
		err := cmd.Wait()
		m.mu.Lock()
		m.exitErr = err
		m.mu.Unlock()
		close(exited)
	}()

	return nil
}

// State maps the process lifecycle onto playback states: a clean exit is Ended,
// any other exit is Error.
func (m *MPV) State() (State, error) {
	if !m.started() {
		return Starting, nil
	}

	select {
	case <-m.exited:
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.exitErr != nil {
			return Error, nil
		}
		return Ended, nil
	default:
	}

	if _, err := m.ipc.probe("get_property", "pid"); err != nil {
		return Starting, nil
	}
	return Playing, nil
}

// Stop asks mpv to quit and kills its process group when it does not comply in time.
func (m *MPV) Stop() error {
	if !m.started() {
		return nil
	}
	defer os.Remove(m.ipc.socketPath)

	select {
	case <-m.exited:
		return nil
	default:
	}

	_, _ = m.ipc.call("quit")

	select {
	case <-m.exited:
	case <-time.After(mpvQuitTimeout):
		log.Warnf("mpv did not quit within %s, killing it", mpvQuitTimeout)
		return killProcess(m.cmd)
	}
	return nil
}

// Release makes sure the process is gone.
func (m *MPV) Release() error {
	return m.Stop()
}

func (m *MPV) started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cmd != nil
}

// args builds the mpv command line. User mpv.conf settings such as --vo and --hwdec are respected.
func (m *MPV) args(socketPath string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=no",
		"--keep-open=no",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--force-media-title=%s", sanitizeTitle(filepath.Base(m.media.Path()))),
		fmt.Sprintf("--cursor-autohide=%d", m.opts.MouseHideTimeout),
	}

	switch {
	case m.wid != 0:
		args = append(args, fmt.Sprintf("--wid=%d", m.wid))
	case m.fullscreen:
		args = append(args, "--fs", "--force-window=yes")
	default:
		args = append(args, "--force-window=no", "--no-video")
	}

	args = append(args, m.opts.Extra...)
	return append(args, "--", m.media.Path())
}

func newSocketPath() (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("quickplay-%x.sock", randomBytes)), nil
}

// sanitizeMediaTarget rejects paths mpv would parse as options or that carry control characters.
func sanitizeMediaTarget(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", errors.New("empty path")
	}
	if strings.ContainsAny(p, "\x00\n\r") {
		return "", errors.New("invalid control characters in path")
	}
	if strings.HasPrefix(p, "-") {
		return "", errors.New("path must not start with '-' (looks like a flag)")
	}
	return filepath.Clean(p), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
