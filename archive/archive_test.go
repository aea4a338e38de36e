package archive

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/codingforme/bingolink-cli/remote"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

// zipArchive builds a zip holding files keyed by slash separated path.
func zipArchive(files map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := io.WriteString(w, content); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// tarballArchive builds a gzip'd tar with a leading global header, as GitHub serves them.
func tarballArchive(files map[string]string) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Typeflag:   tar.TypeXGlobalHeader,
		Name:       "pax_global_header",
		PAXRecords: map[string]string{"comment": "0123456789abcdef"},
	}); err != nil {
		panic(err)
	}
	for name, content := range files {
		if err := tw.WriteHeader(&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
		}); err != nil {
			panic(err)
		}
		if _, err := io.WriteString(tw, content); err != nil {
			panic(err)
		}
	}
	if err := tw.Close(); err != nil {
		panic(err)
	}
	if err := gz.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func serve(data []byte) Opener {
	return OpenerFunc(func(context.Context, string) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

func entries(dir string) []string {
	items, err := os.ReadDir(dir)
	if err != nil {
		panic(err)
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name())
	}
	return names
}

var releaseTree = map[string]string{
	"bingo-oss-template-abc123/package.json":            `{"name": "template"}`,
	"bingo-oss-template-abc123/templates/basic/a.js":    "basic",
	"bingo-oss-template-abc123/templates/advanced/b.js": "advanced",
}

func TestFetch(t *testing.T) {
	Convey("Given a fetcher staging downloads in a private directory", t, func() {
		tempDir := t.TempDir()
		cache := t.TempDir()
		target := filepath.Join(cache, "v1.0")
		fs := afero.NewOsFs()

		Convey("A zipball is published at the target", func() {
			f := New(serve(zipArchive(releaseTree)), WithFs(fs), WithTempDir(tempDir))
			So(f.Fetch(context.Background(), "http://example/zip", target), ShouldBeNil)

			data, err := os.ReadFile(filepath.Join(target, "templates", "basic", "a.js"))
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "basic")

			Convey("And no temporary artifact survives", func() {
				So(entries(tempDir), ShouldBeEmpty)
				So(entries(cache), ShouldResemble, []string{"v1.0"})
			})
		})

		Convey("A tarball is published at the target", func() {
			f := New(serve(tarballArchive(releaseTree)), WithFs(fs), WithTempDir(tempDir))
			So(f.Fetch(context.Background(), "http://example/tar", target), ShouldBeNil)

			data, err := os.ReadFile(filepath.Join(target, "package.json"))
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "template")
			So(entries(tempDir), ShouldBeEmpty)
		})

		Convey("An archive with several top-level entries is rejected", func() {
			f := New(serve(zipArchive(map[string]string{
				"one/a.txt": "a",
				"two/b.txt": "b",
			})), WithFs(fs), WithTempDir(tempDir))

			err := f.Fetch(context.Background(), "http://example/zip", target)
			So(errors.Is(err, ErrExtraction), ShouldBeTrue)

			Convey("And the failure leaves nothing behind", func() {
				So(entries(tempDir), ShouldBeEmpty)
				So(entries(cache), ShouldBeEmpty)
			})
		})

		Convey("A corrupt download is an extraction error", func() {
			f := New(serve([]byte("<html>rate limited</html>")), WithFs(fs), WithTempDir(tempDir))

			err := f.Fetch(context.Background(), "http://example/zip", target)
			So(errors.Is(err, ErrExtraction), ShouldBeTrue)
			So(entries(tempDir), ShouldBeEmpty)
			So(entries(cache), ShouldBeEmpty)
		})

		Convey("A path traversal entry is rejected", func() {
			f := New(serve(zipArchive(map[string]string{
				"root/ok.txt":    "ok",
				"../../evil.txt": "evil",
			})), WithFs(fs), WithTempDir(tempDir))

			err := f.Fetch(context.Background(), "http://example/zip", target)
			So(errors.Is(err, ErrExtraction), ShouldBeTrue)
			So(entries(cache), ShouldBeEmpty)
		})

		Convey("Open failures propagate untouched", func() {
			f := New(OpenerFunc(func(context.Context, string) (io.ReadCloser, error) {
				return nil, &remote.StatusError{Code: 404, URL: "http://example/zip"}
			}), WithFs(fs), WithTempDir(tempDir))

			err := f.Fetch(context.Background(), "http://example/zip", target)
			So(errors.Is(err, remote.ErrStatus), ShouldBeTrue)
			So(entries(tempDir), ShouldBeEmpty)
		})

		Convey("A stream interrupted mid-way is a network error", func() {
			f := New(OpenerFunc(func(context.Context, string) (io.ReadCloser, error) {
				return io.NopCloser(io.MultiReader(
					bytes.NewReader([]byte("PK\x03\x04partial")),
					iotestErrReader{err: io.ErrClosedPipe},
				)), nil
			}), WithFs(fs), WithTempDir(tempDir))

			err := f.Fetch(context.Background(), "http://example/zip", target)
			So(errors.Is(err, remote.ErrNetwork), ShouldBeTrue)
			So(entries(tempDir), ShouldBeEmpty)
			So(entries(cache), ShouldBeEmpty)
		})

		Convey("An existing target is never overwritten", func() {
			So(os.MkdirAll(target, 0o755), ShouldBeNil)
			f := New(serve(zipArchive(releaseTree)), WithFs(fs), WithTempDir(tempDir))

			err := f.Fetch(context.Background(), "http://example/zip", target)
			So(errors.Is(err, ErrFilesystem), ShouldBeTrue)
		})
	})
}

type iotestErrReader struct{ err error }

func (r iotestErrReader) Read([]byte) (int, error) { return 0, r.err }

func TestEntryPath(t *testing.T) {
	Convey("entryPath keeps entries inside the destination", t, func() {
		p, err := entryPath("/scratch", "root/a/b.txt")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, filepath.Join("/scratch", "root", "a", "b.txt"))

		_, err = entryPath("/scratch", "../outside")
		So(errors.Is(err, ErrExtraction), ShouldBeTrue)

		_, err = entryPath("/scratch", "root/../../outside")
		So(errors.Is(err, ErrExtraction), ShouldBeTrue)
	})
}

func TestSingleRoot(t *testing.T) {
	Convey("Given an extraction directory", t, func() {
		fs := afero.NewMemMapFs()

		Convey("One directory is accepted", func() {
			So(fs.MkdirAll("/scratch/repo-abc", 0o755), ShouldBeNil)
			root, err := SingleRoot(fs, "/scratch")
			So(err, ShouldBeNil)
			So(root, ShouldEqual, filepath.Join("/scratch", "repo-abc"))
		})

		Convey("A lone file is rejected", func() {
			So(fs.MkdirAll("/scratch", 0o755), ShouldBeNil)
			So(afero.WriteFile(fs, "/scratch/README", []byte("x"), 0o644), ShouldBeNil)
			_, err := SingleRoot(fs, "/scratch")
			So(errors.Is(err, ErrExtraction), ShouldBeTrue)
		})

		Convey("An empty directory is rejected", func() {
			So(fs.MkdirAll("/scratch", 0o755), ShouldBeNil)
			_, err := SingleRoot(fs, "/scratch")
			So(errors.Is(err, ErrExtraction), ShouldBeTrue)
		})
	})
}
