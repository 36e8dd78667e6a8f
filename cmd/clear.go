package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quickplay-cli/quickplay/history"
	"github.com/quickplay-cli/quickplay/icon"
	"github.com/quickplay-cli/quickplay/util"
	"github.com/quickplay-cli/quickplay/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"history file", "history", mo.Some("s"), where.History},
	{"logs directory", "logs", mo.Some("l"), where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:     "clear [file]...",
	Short:   "Remove recorded history or logs",
	Long:    "Remove recorded history or logs. With --history and files, only the records of those files are removed.",
	Example: "  quickplay clear --history examples/clip.mp4",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if !lo.Must(cmd.Flags().GetBool("history")) {
				handleErr(errors.New("files can only be cleared from the history, pass --history"))
			}

			for _, path := range args {
				handleErr(history.Remove(path))
				fmt.Printf("%s History of %s cleared\n", icon.Get(icon.Success), filepath.Base(path))
			}
			return
		}

		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(target.location())
			erase()

			if err != nil && !os.IsNotExist(err) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
