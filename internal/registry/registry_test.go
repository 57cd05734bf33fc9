package registry

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestClient(baseURL string) *Client {
	return New(baseURL, nil, log.New(io.Discard))
}

func TestURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		want string
	}{
		{"default trims nothing", "https://packages.typst.org", "https://packages.typst.org/preview/cetz-0.2.2.tar.gz"},
		{"trailing slash trimmed", "https://registry.example/", "https://registry.example/preview/cetz-0.2.2.tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(tt.base)
			if got := c.URL("preview", "cetz", "0.2.2"); got != tt.want {
				t.Errorf("URL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDownload(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, []entry{
		{name: "lib.typ", content: []byte("#let x = 1")},
		{name: "./relative.typ", content: []byte("rel")},
		{name: "assets/", dir: true},
		{name: "assets/logo.png", content: []byte{0x89, 'P', 'N', 'G'}},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/preview/demo-0.1.0.tar.gz" {
			http.NotFound(w, req)
			return
		}
		w.Write(archive)
	}))
	defer srv.Close()

	files, err := newTestClient(srv.URL).Download(context.Background(), "preview", "demo", "0.1.0")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	want := map[string]string{
		"/lib.typ":         "#let x = 1",
		"/relative.typ":    "rel",
		"/assets/logo.png": "\x89PNG",
	}
	if len(files) != len(want) {
		t.Fatalf("Download returned %d files, want %d: %v", len(files), len(want), keys(files))
	}
	for path, content := range want {
		if string(files[path]) != content {
			t.Errorf("files[%q] = %q, want %q", path, files[path], content)
		}
	}
}

func TestDownloadNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestClient(srv.URL).Download(context.Background(), "preview", "absent", "1.0.0")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("err = %v, want *RequestError", err)
	}
	if reqErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", reqErr.Status)
	}
}

func TestDownloadConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens anymore

	_, err := newTestClient(srv.URL).Download(context.Background(), "preview", "demo", "0.1.0")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("err = %v, want *RequestError", err)
	}
	if reqErr.Status != 0 {
		t.Errorf("status = %d, want 0 for a transport failure", reqErr.Status)
	}
}

func TestDownloadMalformedGzip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("this is not gzip"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Download(context.Background(), "preview", "demo", "0.1.0")
	var extErr *ExtractError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %v, want *ExtractError", err)
	}
}

func TestDownloadTruncatedTar(t *testing.T) {
	t.Parallel()

	// Valid gzip wrapping a truncated tar stream.
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte("short"))
	gz.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Download(context.Background(), "preview", "demo", "0.1.0")
	var extErr *ExtractError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %v, want *ExtractError", err)
	}
}

func TestDownloadContextCancelled(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Download(ctx, "preview", "demo", "0.1.0")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("err = %v, want *RequestError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want to wrap context.Canceled", err)
	}
}

type entry struct {
	name    string
	content []byte
	dir     bool
}

func buildArchive(t *testing.T, entries []entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0o644}
		if e.dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
		} else {
			hdr.Size = int64(len(e.content))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", e.name, err)
		}
		if !e.dir {
			if _, err := tw.Write(e.content); err != nil {
				t.Fatalf("write content %s: %v", e.name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

func keys(m map[string][]byte) []string {
	var ks []string
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}
