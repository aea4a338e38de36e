package where

import (
	"path/filepath"
	"testing"

	"github.com/codingforme/bingolink-cli/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override variable", func() {
			t.Setenv(EnvConfigPath, "/custom/config")
			So(Config(), ShouldEqual, "/custom/config")
			So(lo.Must(filesystem.API().IsDir("/custom/config")), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(filepath.Base(path), ShouldEqual, ".bingolink")
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Index() lives in the template directory", func() {
			So(Index("/root/.bingolink"), ShouldEqual, filepath.Join("/root/.bingolink", "template", "release.json"))
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})
	})
}
