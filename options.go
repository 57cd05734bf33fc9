package worldres

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures a Resolver.
type Options struct {
	Files     map[string][]byte
	Packages  map[PackageSpec]map[string][]byte
	CacheDir  string
	Registry  string
	Downloads bool
	HTTP      *http.Client
	Fonts     [][]byte
	Logger    *log.Logger
	Now       func() time.Time

	errs []error
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultResolverOptions() *Options {
	return &Options{
		Files:     make(map[string][]byte),
		Packages:  make(map[PackageSpec]map[string][]byte),
		CacheDir:  defaultCacheDir(),
		Downloads: true,
		Now:       time.Now,
	}
}

// WithFile makes a single file available to the document under its
// normalized virtual path.
func WithFile(path string, content []byte) Option {
	return func(o *Options) { o.Files[NormalizePath(path)] = content }
}

// WithFiles adds a whole file set; keys are normalized.
func WithFiles(files map[string][]byte) Option {
	return func(o *Options) {
		for path, content := range files {
			o.Files[NormalizePath(path)] = content
		}
	}
}

// WithPackage pre-seeds one package so it resolves without disk or
// network access. File paths are normalized at resolver construction.
func WithPackage(spec PackageSpec, files map[string][]byte) Option {
	return func(o *Options) { o.Packages[spec] = files }
}

// WithPackageString is WithPackage taking the "@namespace/name:version"
// form; a parse failure is reported by New.
func WithPackageString(spec string, files map[string][]byte) Option {
	return func(o *Options) {
		parsed, err := ParseSpec(spec)
		if err != nil {
			o.errs = append(o.errs, err)
			return
		}
		o.Packages[parsed] = files
	}
}

// WithCacheDir sets the on-disk package cache directory.
func WithCacheDir(dir string) Option {
	return func(o *Options) { o.CacheDir = dir }
}

// WithRegistry sets the registry base URL.
func WithRegistry(url string) Option {
	return func(o *Options) { o.Registry = url }
}

// WithDownloads toggles network access. A download-disabled resolver
// satisfies the same interface; package misses surface
// ErrDownloadsDisabled instead of reaching the registry.
func WithDownloads(enabled bool) Option {
	return func(o *Options) { o.Downloads = enabled }
}

// WithHTTPClient sets the client used for registry requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.HTTP = c }
}

// WithFonts supplies the bundled font blobs, indexed in order by Font.
func WithFonts(fonts ...[]byte) Option {
	return func(o *Options) { o.Fonts = fonts }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithNow overrides the wall clock read by Now. Test seam.
func WithNow(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}

func defaultCacheDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "worldres", "packages")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "worldres", "packages")
	}
	return filepath.Join(".worldres", "packages")
}

func (o *Options) err() error {
	if len(o.errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid options: %w", o.errs[0])
}
