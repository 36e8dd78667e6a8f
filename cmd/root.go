// Package cmd implements the quickplay command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/quickplay-cli/quickplay/batch"
	"github.com/quickplay-cli/quickplay/color"
	"github.com/quickplay-cli/quickplay/constant"
	"github.com/quickplay-cli/quickplay/icon"
	"github.com/quickplay-cli/quickplay/key"
	"github.com/quickplay-cli/quickplay/log"
	"github.com/quickplay-cli/quickplay/style"
	"github.com/quickplay-cli/quickplay/util"
	"github.com/quickplay-cli/quickplay/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.Flags().StringP("dir", "d", "", "Directory to play instead of the examples directory")
	lo.Must0(viper.BindPFlag(key.BatchDir, rootCmd.Flags().Lookup("dir")))

	rootCmd.PersistentFlags().StringP("engine", "e", "", "Playback engine (vlc, mpv, libmpv)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("engine", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Keys(engines), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlayerEngine, rootCmd.PersistentFlags().Lookup("engine")))

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icon variant (emoji, nerd, plain, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record the outcome of every played file")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))
}

var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Play every file of a directory, one after another",
	Long: style.Header(color.HiPurple)(constant.App) + "\n" +
		style.Italic("    - Play local audio and video files from the terminal"),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		dir := viper.GetString(key.BatchDir)
		if dir == "" {
			dir = where.Examples()
		}

		play, err := newPlayFunc(mo.None[string]())
		handleErr(err)

		summary, err := batch.Run(dir, play, cmd.OutOrStdout())
		handleErr(err)

		log.Infof(
			"batch finished: %s, %d ended, %d errored, %d failed",
			util.Quantify(summary.Total(), "file", "files"),
			summary.Ended,
			summary.Errored,
			summary.Failed,
		)
	},
}

// Execute runs the command tree and tears the surface toolkit down afterwards.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	err := rootCmd.Execute()
	toolkit.Terminate()

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		toolkit.Terminate()
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
