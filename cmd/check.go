package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/quickplay-cli/quickplay/color"
	"github.com/quickplay-cli/quickplay/constant"
	"github.com/quickplay-cli/quickplay/icon"
	"github.com/quickplay-cli/quickplay/player"
	"github.com/quickplay-cli/quickplay/style"
)

// checkEngine exits with install instructions when the engine cannot be started.
// Only the subprocess backend has a runtime dependency; the library backends are linked.
func checkEngine(engine player.Engine) {
	mpv, ok := engine.(*player.MPVEngine)
	if !ok {
		return
	}

	if _, err := mpv.NewInstance(player.Options{}); errors.Is(err, exec.ErrNotFound) {
		printMissingDependency(mpv.Binary)
		os.Exit(1)
	}
}

func printMissingDependency(dep string) {
	var install string
	switch runtime.GOOS {
	case constant.Darwin:
		install = "brew install " + dep
	case constant.Linux:
		install = "sudo apt install " + dep
	case constant.Windows:
		install = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.Header(color.HiRed)(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := fmt.Sprintf("The playback engine '%s' was not found in your PATH.", dep)

	if install != "" {
		body += fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.Header(color.Purple)(install))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body)))
}
