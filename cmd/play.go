package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/quickplay-cli/quickplay/batch"
	"github.com/quickplay-cli/quickplay/color"
	"github.com/quickplay-cli/quickplay/filesystem"
	"github.com/quickplay-cli/quickplay/icon"
	"github.com/quickplay-cli/quickplay/player"
	"github.com/quickplay-cli/quickplay/session"
	"github.com/quickplay-cli/quickplay/style"
	"github.com/quickplay-cli/quickplay/util"
	"github.com/quickplay-cli/quickplay/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.SetOut(os.Stdout)
	playCmd.Flags().StringP("log-file", "l", "", "Append a diagnostic log of each session to this file")
	playCmd.Flags().BoolP("verbose", "V", false, "Print the final state of each session")
	lo.Must0(playCmd.MarkFlagFilename("log-file", "log"))
}

var playCmd = &cobra.Command{
	Use:     "play [file|name]...",
	Short:   "Play files one after another",
	Long:    "Play each argument in turn. An argument that is not an existing file is matched against the examples directory.",
	Example: "  quickplay play ~/Music/song.mp3 clip",
	Args:    cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names, _ := exampleNames(where.Examples())
		return names, cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		var logFile mo.Option[string]
		if path := lo.Must(cmd.Flags().GetString("log-file")); path != "" {
			logFile = mo.Some(path)
		}
		verbose := lo.Must(cmd.Flags().GetBool("verbose"))

		paths := make([]string, len(args))
		for i, arg := range args {
			path, err := resolve(arg, where.Examples())
			handleErr(err)
			paths[i] = path
		}

		play, err := newPlayFunc(logFile)
		handleErr(err)

		summary := batch.Each(paths, play, cmd.OutOrStdout(), func(result *session.Result) {
			if !verbose {
				return
			}

			status := icon.Get(icon.Success)
			if result.State == player.Error {
				status = icon.Get(icon.Fail)
			}
			cmd.Printf(
				"%s %s %s in %s\n",
				status,
				style.Fg(color.Purple)(result.Source.Name()),
				style.Bold(result.State.String()),
				style.Faint(result.Duration().Round(time.Millisecond).String()),
			)
		})

		if summary.Failed > 0 {
			cmd.Printf("%s %s could not be played\n", icon.Get(icon.Warn), util.Quantify(summary.Failed, "file", "files"))
		}
	},
}

// resolve returns arg when it names an existing file. Otherwise the closest file name in dir wins.
func resolve(arg, dir string) (string, error) {
	if ok, _ := filesystem.API().Exists(arg); ok {
		return arg, nil
	}

	names, err := exampleNames(dir)
	if err != nil {
		return "", fmt.Errorf("no such file %s", arg)
	}

	ranks := fuzzy.RankFindNormalizedFold(arg, names)
	if len(ranks) == 0 {
		return "", fmt.Errorf("no such file %s and nothing in %s matches it", arg, dir)
	}

	sort.Sort(ranks)
	return filepath.Join(dir, ranks[0].Target), nil
}

func exampleNames(dir string) ([]string, error) {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
