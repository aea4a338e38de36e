package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/codingforme/bingolink-cli/constant"
	"github.com/codingforme/bingolink-cli/filesystem"
	"github.com/codingforme/bingolink-cli/icon"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/codingforme/bingolink-cli/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget defines a filesystem resource eligible for cleanup.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"release cache", "cache", mo.Some("c"), func() string { return where.Templates(cacheRoot()) }},
	{"remembered versions", "versions", mo.Some("V"), func() string {
		return filepath.Join(where.Templates(cacheRoot()), constant.VersionsFile)
	}},
	{"temporary downloads", "temp", mo.Some("t"), where.Temp},
	{"logs", "logs", mo.Some("l"), where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd removes cached and temporary application artifacts.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached releases and temporary application artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			location := target.location()
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			exists, err := filesystem.API().Exists(location)
			if err == nil && exists {
				err = util.Delete(location)
			}
			e()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
