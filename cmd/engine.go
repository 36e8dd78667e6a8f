package cmd

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/quickplay-cli/quickplay/color"
	"github.com/quickplay-cli/quickplay/history"
	"github.com/quickplay-cli/quickplay/key"
	"github.com/quickplay-cli/quickplay/log"
	"github.com/quickplay-cli/quickplay/player"
	"github.com/quickplay-cli/quickplay/player/libmpv"
	"github.com/quickplay-cli/quickplay/player/vlc"
	"github.com/quickplay-cli/quickplay/session"
	"github.com/quickplay-cli/quickplay/style"
	"github.com/quickplay-cli/quickplay/surface"
	"github.com/quickplay-cli/quickplay/surface/glfw"
	"github.com/quickplay-cli/quickplay/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// engines maps player.engine values to their constructors.
var engines = map[string]func() player.Engine{
	vlc.Name:       func() player.Engine { return vlc.New() },
	player.MPVName: func() player.Engine { return player.NewMPVEngine() },
	libmpv.Name:    func() player.Engine { return libmpv.New() },
}

// toolkit is shared by every session of the process and terminated by Execute.
var toolkit = surface.NewLazy(glfw.New)

func errUnknownEngine(name string) error {
	closest := lo.MinBy(lo.Keys(engines), func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})

	return fmt.Errorf(
		"unknown engine %s, did you mean %s?",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(closest),
	)
}

func newEngine() (player.Engine, error) {
	name := viper.GetString(key.PlayerEngine)
	constructor, ok := engines[name]
	if !ok {
		return nil, errUnknownEngine(name)
	}
	return constructor(), nil
}

func millis(k string) time.Duration {
	return time.Duration(util.Max(viper.GetInt(k), 0)) * time.Millisecond
}

func sessionOptions(engine player.Engine) session.Options {
	return session.Options{
		Engine:           engine,
		Toolkit:          toolkit,
		Composited:       session.PlatformNeedsComposite(runtime.GOOS, viper.GetString(key.SurfaceMode)),
		MouseHideTimeout: viper.GetInt(key.PlayerMouseHideTimeout),
		ExtraArgs:        viper.GetStringSlice(key.PlayerExtraArgs),
		Timings: session.Timings{
			Grace:        millis(key.PlayerGraceMs),
			Poll:         util.Max(millis(key.PlayerPollMs), time.Millisecond),
			SurfacePoll:  util.Max(millis(key.PlayerSurfacePollMs), time.Millisecond),
			Settle:       millis(key.PlayerSettleMs),
			StallWarning: millis(key.PlayerStallWarningMs),
		},
	}
}

// newPlayFunc builds the session runner shared by batch mode and the play command.
// Outcomes are recorded in history when history.save is on.
func newPlayFunc(logFile mo.Option[string]) (func(path string) (*session.Result, error), error) {
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}

	checkEngine(engine)
	s := session.New(sessionOptions(engine))

	return func(path string) (*session.Result, error) {
		result, err := s.Play(path, logFile)
		if err != nil {
			if errors.Is(err, session.ErrSurface) {
				log.Warnf("surface unavailable for %s", path)
			}
			return nil, err
		}

		if viper.GetBool(key.HistorySave) {
			if err := history.Save(result, engine.Name()); err != nil {
				log.Warnf("saving history: %v", err)
			}
		}
		return result, nil
	}, nil
}
