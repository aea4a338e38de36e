package open

import (
	"testing"

	"github.com/codingforme/bingolink-cli/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a release page", t, func() {
		url := "https://github.com/bingo-oss/bingolink-template/releases/tag/v1.0"

		Convey("Each supported OS has a handler", func() {
			for goos, bin := range map[string]string{
				constant.Darwin:  "open",
				constant.Linux:   "xdg-open",
				constant.Android: "termux-open",
			} {
				cmd, ok := command(goos, url)
				So(ok, ShouldBeTrue)
				So(cmd.Args, ShouldResemble, []string{bin, url})
			}
		})

		Convey("Windows goes through rundll32", func() {
			cmd, ok := command(constant.Windows, url)
			So(ok, ShouldBeTrue)
			So(cmd.Args[1:], ShouldResemble, []string{"url.dll,FileProtocolHandler", url})
		})

		Convey("Other systems are unsupported", func() {
			_, ok := command("plan9", url)
			So(ok, ShouldBeFalse)
		})
	})
}
