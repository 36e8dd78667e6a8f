package cmd

import (
	"encoding/json"
	"os"

	"github.com/quickplay-cli/quickplay/color"
	"github.com/quickplay-cli/quickplay/history"
	"github.com/quickplay-cli/quickplay/icon"
	"github.com/quickplay-cli/quickplay/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.SetOut(os.Stdout)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the outcome of every played file, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := history.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("Nothing played yet"))
			return
		}

		for _, r := range records {
			status := icon.Get(icon.Success)
			if r.State != "ended" {
				status = icon.Get(icon.Fail)
			}

			cmd.Printf(
				"%s %s %s %s\n",
				status,
				style.Fg(color.Purple)(r.Name()),
				style.Faint(r.PlayedAt.Local().Format("2006-01-02 15:04")),
				style.Faint(r.Engine+"/"+r.Strategy),
			)
		}
	},
}
