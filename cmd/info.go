package cmd

import (
	"os"
	"strings"

	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/open"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolP("web", "w", false, "Open the release page in the browser")
	infoCmd.SetOut(os.Stdout)
}

// infoCmd prints the notes of a published release.
var infoCmd = &cobra.Command{
	Use:   "info [version]",
	Short: "Show the notes of a template release, the latest by default",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, err := newResolver()
		handleErr(err)

		ctx, cancel := remoteContext(cmd.Context())
		defer cancel()

		rel, err := client.Release(ctx, versionArg(args, 0).OrEmpty())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("web")) {
			handleErr(open.Start(rel.HTMLURL))
			return
		}

		width := util.TerminalWidth(80)

		cmd.Println(style.Title(rel.Title()))
		cmd.Printf("%s %s\n", style.Faint("Tag:      "), style.Fg(color.Purple)(rel.TagName))
		if !rel.PublishedAt.IsZero() {
			cmd.Printf("%s %s\n", style.Faint("Published:"), rel.PublishedAt.Local().Format("2006-01-02 15:04"))
		}
		if rel.HTMLURL != "" {
			cmd.Printf("%s %s\n", style.Faint("Page:     "), rel.HTMLURL)
		}

		if body := strings.TrimSpace(rel.Body); body != "" {
			cmd.Println()
			cmd.Println(wordwrap.String(body, util.Max(width-2, 20)))
		}
	},
}
