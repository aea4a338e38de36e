package scaffold

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/samber/mo"
	"github.com/spf13/afero"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCreate(t *testing.T) {
	Convey("Given a resolved release", t, func() {
		fs := afero.NewMemMapFs()
		release := "/cache/template/v1.0"
		for path, content := range map[string]string{
			"package.json":              `{"name": "app"}`,
			"src/main.js":               "default",
			"templates/basic/main.js":   "basic",
			"templates/advanced/app.js": "advanced",
		} {
			So(fs.MkdirAll(filepath.Dir(filepath.Join(release, path)), 0o755), ShouldBeNil)
			So(afero.WriteFile(fs, filepath.Join(release, path), []byte(content), 0o644), ShouldBeNil)
		}

		read := func(path string) string {
			data, err := afero.ReadFile(fs, path)
			So(err, ShouldBeNil)
			return string(data)
		}
		exists := func(path string) bool {
			ok, err := afero.Exists(fs, path)
			So(err, ShouldBeNil)
			return ok
		}

		Convey("When a project is created without a template", func() {
			result, err := Create(fs, release, "/work/app", mo.None[string]())

			Convey("Then the release is copied and templates are dropped", func() {
				So(err, ShouldBeNil)
				So(result.Template.IsAbsent(), ShouldBeTrue)
				So(result.Missing, ShouldBeFalse)
				So(read("/work/app/package.json"), ShouldEqual, `{"name": "app"}`)
				So(read("/work/app/src/main.js"), ShouldEqual, "default")
				So(exists("/work/app/templates"), ShouldBeFalse)
			})

			Convey("Then the release itself is untouched", func() {
				So(exists(filepath.Join(release, "templates", "basic")), ShouldBeTrue)
			})
		})

		Convey("When a template is selected", func() {
			result, err := Create(fs, release, "/work/app", mo.Some("advanced"))

			Convey("Then src is replaced with it", func() {
				So(err, ShouldBeNil)
				So(result.Template.MustGet(), ShouldEqual, "advanced")
				So(read("/work/app/src/app.js"), ShouldEqual, "advanced")
				So(exists("/work/app/src/main.js"), ShouldBeFalse)
				So(exists("/work/app/templates"), ShouldBeFalse)
			})
		})

		Convey("When the template does not exist", func() {
			result, err := Create(fs, release, "/work/app", mo.Some("advnced"))

			Convey("Then the default source is kept and a suggestion is made", func() {
				So(err, ShouldBeNil)
				So(result.Missing, ShouldBeTrue)
				So(result.Suggestion.MustGet(), ShouldEqual, "advanced")
				So(read("/work/app/src/main.js"), ShouldEqual, "default")
			})
		})

		Convey("When the destination exists", func() {
			So(fs.MkdirAll("/work/app", 0o755), ShouldBeNil)

			_, err := Create(fs, release, "/work/app", mo.None[string]())

			So(errors.Is(err, ErrExists), ShouldBeTrue)
		})
	})
}
