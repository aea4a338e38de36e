package style

import (
	"testing"

	"github.com/codingforme/bingolink-cli/color"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	Convey("Renderers keep the text", t, func() {
		for _, render := range []func(string) string{Faint, Bold, Italic, Title, ErrorTitle, Fg(color.Green), Tag(color.White, color.Blue)} {
			So(render("v1.0"), ShouldContainSubstring, "v1.0")
		}
	})
}
