package cmd

import (
	"os"

	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/filesystem"
	"github.com/codingforme/bingolink-cli/release"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.SetOut(os.Stdout)
}

// templatesCmd prints the templates shipped with a release.
var templatesCmd = &cobra.Command{
	Use:     "templates [version]",
	Short:   "List available templates, of the newest release by default",
	Aliases: []string{"list-template"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resolver, _, err := newResolver()
		handleErr(err)

		res := resolve(cmd.Context(), resolver, versionArg(args, 0))

		names, err := release.Templates(filesystem.API().Fs, res.Path)
		handleErr(err)

		if len(names) == 0 {
			cmd.Println("No templates available.")
			return
		}

		cmd.Println("Available templates:")
		for _, name := range names {
			cmd.Println(style.Fg(color.Green)(name))
		}
	},
}
