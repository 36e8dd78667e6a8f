package cmd

import (
	"os"

	"github.com/quickplay-cli/quickplay/batch"
	"github.com/quickplay-cli/quickplay/icon"
	"github.com/quickplay-cli/quickplay/key"
	"github.com/quickplay-cli/quickplay/tui"
	"github.com/quickplay-cli/quickplay/util"
	"github.com/quickplay-cli/quickplay/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().StringP("dir", "d", "", "Directory to pick from instead of the examples directory")
	pickCmd.SetOut(os.Stdout)
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose files to play from a list",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir := lo.Must(cmd.Flags().GetString("dir"))
		if dir == "" {
			dir = viper.GetString(key.BatchDir)
		}
		if dir == "" {
			dir = where.Examples()
		}

		paths, err := tui.Pick(dir)
		handleErr(err)
		if len(paths) == 0 {
			return
		}

		play, err := newPlayFunc(mo.None[string]())
		handleErr(err)

		summary := batch.Each(paths, play, cmd.OutOrStdout(), nil)
		if summary.Failed > 0 {
			cmd.Printf("%s %s could not be played\n", icon.Get(icon.Warn), util.Quantify(summary.Failed, "file", "files"))
		}
	},
}
