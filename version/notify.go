package version

import (
	"context"
	"fmt"

	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/constant"
	"github.com/codingforme/bingolink-cli/icon"
	"github.com/codingforme/bingolink-cli/key"
	"github.com/codingforme/bingolink-cli/log"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/spf13/viper"
)

// Notify prints a hint when a newer CLI release is published.
// Failures are logged and otherwise ignored.
func Notify(ctx context.Context, source Source) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx, source)
	erase()
	if err != nil {
		log.Warnf("version check: %v", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/codingforme/bingolink-cli/releases/tag/v"+latest),
	)
}
