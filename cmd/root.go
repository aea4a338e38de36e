// Package cmd implements the command-line interface for bingolink-cli.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/codingforme/bingolink-cli/archive"
	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/constant"
	"github.com/codingforme/bingolink-cli/icon"
	"github.com/codingforme/bingolink-cli/key"
	"github.com/codingforme/bingolink-cli/log"
	"github.com/codingforme/bingolink-cli/release"
	"github.com/codingforme/bingolink-cli/remote"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/codingforme/bingolink-cli/version"
	"github.com/codingforme/bingolink-cli/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("cache", "", "Use this directory as the release cache root")
	lo.Must0(viper.BindPFlag(key.CacheRoot, rootCmd.PersistentFlags().Lookup("cache")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		notifyUpdate(cmd.Context())
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the bingolink-cli application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Scaffold bingolink projects from versioned template releases",
	Long: style.Bold(constant.App) + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Scaffold bingolink projects from versioned template releases"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
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

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(describeErr(err), " \n"))
		os.Exit(1)
	}
}

// describeErr adds a hint for the failures a user can act on.
func describeErr(err error) string {
	switch {
	case errors.Is(err, release.ErrNoFallback):
		return err.Error() + "\n" + style.Faint("Check your connection, nothing has been downloaded yet.")
	case errors.Is(err, remote.ErrTimeout):
		return err.Error() + "\n" + style.Faint(fmt.Sprintf("Raise %s or %s if the network is slow.", key.RemoteTimeout, key.DownloadTimeout))
	case errors.Is(err, remote.ErrStatus):
		var status *remote.StatusError
		if errors.As(err, &status) && status.Code == 403 {
			return err.Error() + "\n" + style.Faint("The API rate limit may be exhausted, see \""+constant.App+" auth login\".")
		}
	case errors.Is(err, archive.ErrExtraction):
		return err.Error() + "\n" + style.Faint("The release archive has an unexpected layout.")
	}
	return err.Error()
}

func notifyUpdate(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := newClient(constant.SelfReleaseURL)
	if err != nil {
		log.Warn(err)
		return
	}
	version.Notify(ctx, client)
}
