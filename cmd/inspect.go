package cmd

import (
	"os"
	"runtime"

	"github.com/quickplay-cli/quickplay/color"
	"github.com/quickplay-cli/quickplay/icon"
	"github.com/quickplay-cli/quickplay/key"
	"github.com/quickplay-cli/quickplay/media"
	"github.com/quickplay-cli/quickplay/session"
	"github.com/quickplay-cli/quickplay/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.SetOut(os.Stdout)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]...",
	Short: "Show how files would be played",
	Long:  "Show the media kind, the presentation strategy on this platform, the detected MIME type and any embedded tags.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		composited := session.PlatformNeedsComposite(runtime.GOOS, viper.GetString(key.SurfaceMode))
		faint := style.Faint

		for i, path := range args {
			info, err := media.Probe(path)
			handleErr(err)

			kindIcon := icon.Get(icon.Audio)
			if info.Kind() == media.Video {
				kindIcon = icon.Get(icon.Video)
			}

			cmd.Printf("%s %s\n", kindIcon, style.Header(color.Purple)(info.Name()))
			cmd.Printf("  %s     %s\n", faint("Kind"), info.Kind())
			cmd.Printf("  %s %s\n", faint("Strategy"), session.SelectStrategy(info.Kind(), composited))
			cmd.Printf("  %s     %s\n", faint("MIME"), info.MIME)

			for _, tag := range []struct{ name, value string }{
				{"Format  ", info.Format},
				{"Title   ", info.Title},
				{"Artist  ", info.Artist},
				{"Album   ", info.Album},
			} {
				if tag.value != "" {
					cmd.Printf("  %s %s\n", faint(tag.name), tag.value)
				}
			}

			if i < len(args)-1 {
				cmd.Println()
			}
		}
	},
}
