package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/filesystem"
	"github.com/codingforme/bingolink-cli/icon"
	"github.com/codingforme/bingolink-cli/release"
	"github.com/codingforme/bingolink-cli/scaffold"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

const defaultTemplate = "(release default)"

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringP("template", "t", "", "Initialize src/ with the specified template")
	createCmd.Flags().BoolP("interactive", "i", false, "Choose the version and the template interactively")
	createCmd.MarkFlagsMutuallyExclusive("template", "interactive")
}

// createCmd scaffolds a project from a template release.
var createCmd = &cobra.Command{
	Use:   "create <name> [version]",
	Short: "Create a project, using the latest template release by default",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		dest := lo.Must(filepath.Abs(name))
		fs := filesystem.API().Fs

		exists, err := filesystem.API().Exists(dest)
		handleErr(err)
		if exists {
			handleErr(fmt.Errorf("%w: %s", scaffold.ErrExists, name))
		}

		resolver, _, err := newResolver()
		handleErr(err)

		version := versionArg(args, 1)
		interactive := lo.Must(cmd.Flags().GetBool("interactive"))
		if interactive && version.IsAbsent() {
			version = askVersion(cmd, resolver)
		}

		res := resolve(cmd.Context(), resolver, version)

		template := mo.EmptyableToOption(lo.Must(cmd.Flags().GetString("template")))
		if interactive {
			template = askTemplate(res.Path)
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Creating %s from %s...", icon.Get(icon.Progress), style.Bold(name), res.Tag))
		result, err := scaffold.Create(fs, res.Path, dest, template)
		erase()
		handleErr(err)

		if result.Missing {
			msg := fmt.Sprintf("Template %s does not exist, using the default template", template.MustGet())
			if suggestion, ok := result.Suggestion.Get(); ok {
				msg += fmt.Sprintf(". Did you mean %s?", style.Bold(suggestion))
			}
			fmt.Printf("%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), style.Fg(color.Yellow)(msg))
		}

		fmt.Printf(
			"%s Created %s with release %s%s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(name),
			style.Bold(res.Tag),
			lo.Ternary(result.Template.IsPresent(), " and template "+style.Bold(result.Template.OrEmpty()), ""),
		)
	},
}

func askVersion(cmd *cobra.Command, resolver *release.Resolver) mo.Option[string] {
	tags, _, err := resolver.Versions(cmd.Context(), false)
	handleErr(err)
	if len(tags) == 0 {
		return mo.None[string]()
	}

	var tag string
	handleErr(survey.AskOne(&survey.Select{
		Message: "Template version",
		Options: tags,
		Default: tags[0],
	}, &tag))
	return mo.Some(tag)
}

func askTemplate(releasePath string) mo.Option[string] {
	names, err := release.Templates(filesystem.API().Fs, releasePath)
	handleErr(err)
	if len(names) == 0 {
		return mo.None[string]()
	}

	var name string
	handleErr(survey.AskOne(&survey.Select{
		Message: "Template",
		Options: append([]string{defaultTemplate}, names...),
		Default: defaultTemplate,
	}, &name))

	if name == defaultTemplate {
		return mo.None[string]()
	}
	return mo.Some(name)
}
