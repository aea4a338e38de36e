package cmd

import (
	"fmt"
	"os"

	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/icon"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolP("refresh", "r", false, "Ignore the remembered version list")
	listCmd.SetOut(os.Stdout)
}

// listCmd prints the template versions published by the remote.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available versions of template releases",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resolver, _, err := newResolver()
		handleErr(err)

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching version info...", icon.Get(icon.Progress)))
		tags, stale, err := resolver.Versions(cmd.Context(), lo.Must(cmd.Flags().GetBool("refresh")))
		erase()
		handleErr(err)

		if stale {
			cmd.Println(style.Fg(color.Yellow)(icon.Get(icon.Warn) + " Remote unavailable, showing the last known versions"))
		}

		index, err := resolver.Index()
		handleErr(err)

		cmd.Println("Available versions:")
		for _, tag := range tags {
			line := style.Fg(color.Green)(tag)
			if index.Get(tag).IsPresent() {
				line += " " + style.Faint("(cached)")
			}
			cmd.Println(line)
		}
	},
}
