// Package where resolves the application's platform-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/quickplay-cli/quickplay/constant"
	"github.com/quickplay-cli/quickplay/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "QUICKPLAY_CONFIG_PATH"

// ExamplesDirName is the directory batch mode plays from, relative to the executable.
const ExamplesDirName = "examples"

// executable is swapped in tests.
var executable = os.Executable

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honoring QUICKPLAY_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory for application logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the playback outcome registry file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Examples resolves the batch directory. The directory next to the executable wins;
// when it does not exist (go run, tests) the working-directory relative path is used.
func Examples() string {
	exe, err := executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}

		dir := filepath.Join(filepath.Dir(exe), ExamplesDirName)
		if ok, _ := filesystem.API().DirExists(dir); ok {
			return dir
		}
	}

	return ExamplesDirName
}
