package icon

import (
	"testing"

	"github.com/codingforme/bingolink-cli/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given the registered icons", t, func() {
		Reset(func() {
			viper.Set(key.IconsVariant, "plain")
		})

		Convey("Every icon renders for each variant", func() {
			for i := range icons {
				for _, variant := range AvailableVariants() {
					viper.Set(key.IconsVariant, variant)
					So(Get(i), ShouldNotBeEmpty)
				}
			}
		})

		Convey("Plain variant is ASCII", func() {
			viper.Set(key.IconsVariant, "plain")
			So(Get(Success), ShouldEqual, "ok")
		})

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Fail), ShouldBeEmpty)
		})
	})
}
