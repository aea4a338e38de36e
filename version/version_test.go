package version

import (
	"context"
	"errors"
	"testing"

	"github.com/codingforme/bingolink-cli/remote"
	. "github.com/smartystreets/goconvey/convey"
)

type stubSource struct {
	tag   string
	err   error
	calls int
}

func (s *stubSource) Release(context.Context, string) (*remote.Release, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &remote.Release{TagName: s.tag}, nil
}

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		cases := []struct {
			a, b string
			want int
		}{
			{"1.0.0", "1.0.0", 0},
			{"v1.2.0", "1.1.9", 1},
			{"0.2.0", "0.10.0", -1},
			{"2.0.0", "v10.0.0", -1},
			{"1.0.0-rc.1", "1.0.0", -1},
			{"1.0.0", "1.0.0-rc.1", 1},
			{"1.0.0-rc.2", "1.0.0-rc.1", 1},
			{"1.0.0+build.5", "1.0.0", 0},
		}
		for _, c := range cases {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}

		for _, bad := range []string{"latest", "1.0", "1.x.0", "1.0.0.0"} {
			_, err := Compare(bad, "1.0.0")
			So(err, ShouldNotBeNil)
		}
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a release source", t, func() {
		t.Setenv("HOME", t.TempDir())
		source := &stubSource{tag: "v1.4.2"}

		ver, err := Latest(context.Background(), source)
		So(err, ShouldBeNil)
		So(ver, ShouldEqual, "1.4.2")

		Convey("The answer is reused", func() {
			source.err = errors.New("offline")
			ver, err := Latest(context.Background(), source)
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "1.4.2")
			So(source.calls, ShouldEqual, 1)
		})
	})
}
