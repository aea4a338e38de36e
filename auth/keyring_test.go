package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestToken(t *testing.T) {
	Convey("Given a mocked keyring", t, func() {
		Reset(func() { _ = DeleteToken() })

		Convey("A configured token wins", func() {
			So(SetToken("from-keyring"), ShouldBeNil)
			token, err := Token("from-config")
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "from-config")
		})

		Convey("The keyring is consulted otherwise", func() {
			So(SetToken("from-keyring"), ShouldBeNil)
			token, err := Token("")
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "from-keyring")
		})

		Convey("A missing entry yields an anonymous token", func() {
			token, err := Token("")
			So(err, ShouldBeNil)
			So(token, ShouldBeEmpty)
		})
	})
}
