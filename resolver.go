package worldres

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/worldres/worldres/internal/diskcache"
	"github.com/worldres/worldres/internal/registry"
)

// Resolver implements the compiler's resource-provider contract: source
// text, raw bytes, fonts, and the wall clock. One Resolver is constructed
// per compilation, bound to one main document, one static file table, and
// one package cache. The Resolver itself is stateless across calls; all
// mutable state lives in the package cache, so concurrent resolution
// calls from compiler worker threads are safe.
type Resolver struct {
	main   string
	static *staticFileTable
	cache  *packageCache
	fonts  [][]byte
	now    func() time.Time
	log    *log.Logger
}

// New creates a Resolver for one compilation of mainSource.
func New(mainSource string, opts ...Option) (*Resolver, error) {
	o := defaultResolverOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.err(); err != nil {
		return nil, err
	}

	logger := o.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	disk := diskAdapter{cache: diskcache.New(o.CacheDir, logger)}
	var net netTier
	if o.Downloads {
		net = netAdapter{client: registry.New(o.Registry, o.HTTP, logger)}
	}

	cache := newPackageCache(disk, net, logger)
	for spec, files := range o.Packages {
		cache.seed(spec, files)
	}

	return &Resolver{
		main:   mainSource,
		static: newStaticFileTable(NewFileSet(o.Files)),
		cache:  cache,
		fonts:  o.Fonts,
		now:    o.Now,
		log:    logger,
	}, nil
}

// ResolveSource returns decoded source text for an identifier. The main
// ID yields the main document verbatim; package-scoped IDs resolve
// through the cache chain and must decode as UTF-8. Plain path IDs are
// not valid source lookups.
func (r *Resolver) ResolveSource(ctx context.Context, id FileID) (string, error) {
	if id.IsMain() {
		return r.main, nil
	}

	if spec, ok := id.Package(); ok {
		content, err := r.cache.get(ctx, spec, id.Path())
		if err != nil {
			return "", fmt.Errorf("%s: %w", id, err)
		}
		if !utf8.Valid(content) {
			return "", fmt.Errorf("%s: %w", id, ErrInvalidEncoding)
		}
		return string(content), nil
	}

	return "", fmt.Errorf("%s: %w", id, ErrNotFound)
}

// ResolveBytes returns raw content for an identifier. Plain paths look up
// the static file table; package-scoped IDs resolve through the cache
// chain. The main document is not byte-addressable.
func (r *Resolver) ResolveBytes(ctx context.Context, id FileID) ([]byte, error) {
	if spec, ok := id.Package(); ok {
		content, err := r.cache.get(ctx, spec, id.Path())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		return content, nil
	}

	if id.IsMain() {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	content, ok := r.static.get(id.Path())
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return content, nil
}

// Font returns the bundled font blob at index, or nil when out of range.
// The font list is materialized once at construction.
func (r *Resolver) Font(index int) []byte {
	if index < 0 || index >= len(r.fonts) {
		return nil
	}
	return r.fonts[index]
}

// Now returns the current wall-clock time, optionally shifted to a fixed
// whole-hour UTC offset. The second return is false when the offset is
// outside the representable range of a zone (within a day of UTC).
func (r *Resolver) Now(offsetHours *int) (time.Time, bool) {
	t := r.now()
	if offsetHours == nil {
		return t, true
	}
	h := *offsetHours
	if h <= -24 || h >= 24 {
		return time.Time{}, false
	}
	zone := time.FixedZone(fmt.Sprintf("UTC%+d", h), h*3600)
	return t.In(zone), true
}
