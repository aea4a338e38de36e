package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codingforme/bingolink-cli/constant"
	. "github.com/smartystreets/goconvey/convey"
)

const releasesJSON = `[
  {"tag_name": "v1.1", "published_at": "2020-02-01T00:00:00Z", "zipball_url": "http://example/zip/v1.1"},
  {"tag_name": "v1.0", "published_at": "2020-01-01T00:00:00Z", "zipball_url": "http://example/zip/v1.0"}
]`

func newServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/repos/bingo-oss/template/releases/")
	if err != nil {
		t.Fatal(err)
	}
	return c, srv
}

func TestNew(t *testing.T) {
	Convey("New validates the endpoint", t, func() {
		_, err := New("")
		So(err, ShouldNotBeNil)

		_, err = New("not a url")
		So(err, ShouldNotBeNil)

		c, err := New("https://api.github.com/repos/o/r/releases/")
		So(err, ShouldBeNil)
		So(c.BaseURL(), ShouldEqual, "https://api.github.com/repos/o/r/releases")
	})
}

func TestReleases(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		var gotAgent, gotAuth string
		c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotAgent = r.Header.Get("User-Agent")
			gotAuth = r.Header.Get("Authorization")
			if r.URL.Path != "/repos/bingo-oss/template/releases" {
				http.NotFound(w, r)
				return
			}
			_, _ = io.WriteString(w, releasesJSON)
		})

		Convey("It lists tags in server order", func() {
			releases, err := c.Releases(context.Background())
			So(err, ShouldBeNil)
			So(len(releases), ShouldEqual, 2)
			So(releases[0].TagName, ShouldEqual, "v1.1")
			So(releases[1].PublishedAt.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(gotAgent, ShouldEqual, constant.UserAgent)
			So(gotAuth, ShouldBeEmpty)
		})

		Convey("It sends the bearer token when configured", func() {
			WithToken("secret")(c)
			_, err := c.Releases(context.Background())
			So(err, ShouldBeNil)
			So(gotAuth, ShouldEqual, "Bearer secret")
		})
	})
}

func TestRelease(t *testing.T) {
	Convey("Given a release endpoint", t, func() {
		c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/repos/bingo-oss/template/releases/latest":
				_, _ = io.WriteString(w, `{"tag_name": "v1.1", "published_at": "2020-02-01T00:00:00Z", "zipball_url": "z", "tarball_url": "t"}`)
			case "/repos/bingo-oss/template/releases/tags/v1.0":
				_, _ = io.WriteString(w, `{"tag_name": "v1.0", "published_at": "2020-01-01T00:00:00Z", "zipball_url": "z0"}`)
			case "/repos/bingo-oss/template/releases/tags/broken":
				_, _ = io.WriteString(w, `{"name": "no tag"}`)
			case "/repos/bingo-oss/template/releases/tags/garbage":
				_, _ = io.WriteString(w, `<html>`)
			default:
				w.WriteHeader(http.StatusNotFound)
				_, _ = io.WriteString(w, `{"message": "Not Found"}`)
			}
		})
		ctx := context.Background()

		Convey("An empty tag asks for the latest release", func() {
			rel, err := c.Release(ctx, "")
			So(err, ShouldBeNil)
			So(rel.TagName, ShouldEqual, "v1.1")
			So(rel.ArchiveURL(constant.ArchiveZip), ShouldEqual, "z")
			So(rel.ArchiveURL(constant.ArchiveTarball), ShouldEqual, "t")
			So(rel.Title(), ShouldEqual, "v1.1")
		})

		Convey("An explicit tag is looked up by tag", func() {
			rel, err := c.Release(ctx, "v1.0")
			So(err, ShouldBeNil)
			So(rel.TagName, ShouldEqual, "v1.0")
			So(rel.ArchiveURL(constant.ArchiveTarball), ShouldEqual, "z0")
		})

		Convey("A missing tag is a status error", func() {
			_, err := c.Release(ctx, "v9.9")
			So(errors.Is(err, ErrStatus), ShouldBeTrue)

			var status *StatusError
			So(errors.As(err, &status), ShouldBeTrue)
			So(status.Code, ShouldEqual, http.StatusNotFound)
			So(status.Body, ShouldContainSubstring, "Not Found")
		})

		Convey("A document without tag_name is rejected", func() {
			_, err := c.Release(ctx, "broken")
			So(errors.Is(err, ErrDecode), ShouldBeTrue)
		})

		Convey("A non JSON document is rejected", func() {
			_, err := c.Release(ctx, "garbage")
			So(errors.Is(err, ErrDecode), ShouldBeTrue)
		})
	})
}

func TestTransportFailures(t *testing.T) {
	Convey("Given an unreachable endpoint", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c, err := New(url)
		So(err, ShouldBeNil)

		_, err = c.Release(context.Background(), "")
		So(errors.Is(err, ErrNetwork), ShouldBeTrue)
		So(errors.Is(err, ErrTimeout), ShouldBeFalse)
	})

	Convey("Given a slow endpoint", t, func() {
		unblock := make(chan struct{})
		c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-unblock:
			case <-r.Context().Done():
			}
		})
		Reset(func() { close(unblock) })

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := c.Releases(ctx)
		So(errors.Is(err, ErrTimeout), ShouldBeTrue)
	})
}

func TestReleaseSharesConcurrentCalls(t *testing.T) {
	Convey("Given concurrent lookups of the same tag", t, func() {
		var hits atomic.Int32
		unblock := make(chan struct{})
		c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			<-unblock
			_, _ = io.WriteString(w, `{"tag_name": "v1.0", "zipball_url": "z"}`)
		})

		var wg sync.WaitGroup
		tags := make([]string, 5)
		for i := range tags {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rel, err := c.Release(context.Background(), "v1.0")
				if err == nil {
					tags[i] = rel.TagName
				}
			}(i)
		}

		time.Sleep(100 * time.Millisecond)
		close(unblock)
		wg.Wait()

		So(hits.Load(), ShouldEqual, 1)
		for _, tag := range tags {
			So(tag, ShouldEqual, "v1.0")
		}
	})
}

func TestOpen(t *testing.T) {
	Convey("Given an archive endpoint", t, func() {
		c, srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/archive.zip" {
				_, _ = io.WriteString(w, "PK-bytes")
				return
			}
			w.WriteHeader(http.StatusForbidden)
		})

		Convey("It streams the body", func() {
			body, err := c.Open(context.Background(), srv.URL+"/archive.zip")
			So(err, ShouldBeNil)
			defer body.Close()
			data, err := io.ReadAll(body)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "PK-bytes")
		})

		Convey("It surfaces non-200 responses", func() {
			_, err := c.Open(context.Background(), srv.URL+"/missing.zip")
			So(errors.Is(err, ErrStatus), ShouldBeTrue)
		})
	})
}
