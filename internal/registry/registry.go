// Package registry downloads package archives from a remote registry.
//
// The protocol is a single HTTP GET of a gzip-compressed POSIX tar
// archive at <base>/<namespace>/<name>-<version>.tar.gz. No other
// transport or encoding is supported, and a failed request is never
// retried here; the caller decides whether to re-attempt.
package registry

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
)

// DefaultBaseURL is the public package registry.
const DefaultBaseURL = "https://packages.typst.org"

// RequestError reports a failed registry request: transport error or a
// non-success status.
type RequestError struct {
	URL    string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("get %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("get %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ExtractError reports a malformed gzip or tar stream.
type ExtractError struct {
	Err error
}

func (e *ExtractError) Error() string { return fmt.Sprintf("extract archive: %v", e.Err) }

func (e *ExtractError) Unwrap() error { return e.Err }

// Client fetches package archives.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *log.Logger
}

// New creates a client for the given registry base URL. A nil httpc uses
// http.DefaultClient.
func New(baseURL string, httpc *http.Client, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), httpc: httpc, log: logger}
}

// URL returns the archive URL for one package version.
func (c *Client) URL(namespace, name, version string) string {
	return fmt.Sprintf("%s/%s/%s-%s.tar.gz", c.baseURL, namespace, name, version)
}

// Download fetches and unpacks one package archive into a path to content
// mapping. Paths are re-rooted to "/"; only regular file entries are
// kept. The request blocks until the archive is read or ctx is done.
func (c *Client) Download(ctx context.Context, namespace, name, version string) (map[string][]byte, error) {
	url := c.URL(namespace, name, version)
	c.log.Debug("downloading package", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{URL: url, Err: err}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &RequestError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &RequestError{URL: url, Status: resp.StatusCode}
	}

	files, err := untar(resp.Body)
	if err != nil {
		return nil, err
	}
	c.log.Debug("downloaded package", "url", url, "files", len(files))
	return files, nil
}

// untar decompresses a gzip stream and extracts every regular tar entry.
func untar(r io.Reader) (map[string][]byte, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, &ExtractError{Err: err}
	}
	defer gz.Close()

	files := make(map[string][]byte)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ExtractError{Err: err}
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			return nil, &ExtractError{Err: err}
		}
		files[path.Clean("/"+strings.TrimPrefix(hdr.Name, "./"))] = content
	}
	return files, nil
}
