package worldres

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/worldres/worldres/internal/diskcache"
	"github.com/worldres/worldres/internal/registry"
)

// diskTier is the persistent fallback behind the in-memory cache.
type diskTier interface {
	read(spec PackageSpec) (FileSet, bool)
	write(spec PackageSpec, files FileSet)
}

// netTier fetches a whole package from the registry.
type netTier interface {
	fetch(ctx context.Context, spec PackageSpec) (FileSet, error)
}

// packageCache is the shared mutable state of a resolution session: a
// spec to file-set mapping populated lazily from disk and network.
// Packages are versioned, so an entry's content is immutable for the
// session; the map only grows.
type packageCache struct {
	mu       sync.RWMutex
	packages map[PackageSpec]FileSet

	disk diskTier
	net  netTier // nil on a download-disabled resolver
	log  *log.Logger
}

func newPackageCache(disk diskTier, net netTier, logger *log.Logger) *packageCache {
	return &packageCache{
		packages: make(map[PackageSpec]FileSet),
		disk:     disk,
		net:      net,
		log:      logger,
	}
}

// seed installs a caller-supplied package. Paths are normalized here so
// lookups never have to.
func (c *packageCache) seed(spec PackageSpec, files map[string][]byte) {
	c.merge(spec, NewFileSet(files))
}

// get resolves one path inside one package, attempting memory, then
// disk, then network. The lock is never held across disk or network I/O.
func (c *packageCache) get(ctx context.Context, spec PackageSpec, path string) ([]byte, error) {
	if content, ok := c.lookup(spec, path); ok {
		return content, nil
	}

	if err := c.materialize(ctx, spec); err != nil {
		return nil, err
	}

	content, ok := c.lookup(spec, path)
	if !ok {
		return nil, ErrNotFound
	}
	return content, nil
}

func (c *packageCache) lookup(spec PackageSpec, path string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files, ok := c.packages[spec]
	if !ok {
		return nil, false
	}
	content, ok := files[path]
	return content, ok
}

// has reports whether the package is materialized, regardless of which
// paths it contains.
func (c *packageCache) has(spec PackageSpec) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.packages[spec]
	return ok
}

// materialize loads the whole package into memory from the first tier
// that has it. Packages are fetched as atomic units; the registry never
// serves single files. Two concurrent misses may both reach the network;
// merge keeps the first writer's copy, so the race costs a duplicate
// fetch but never corrupts.
func (c *packageCache) materialize(ctx context.Context, spec PackageSpec) error {
	if c.has(spec) {
		return nil
	}

	if files, ok := c.disk.read(spec); ok {
		c.log.Debug("package loaded from disk cache", "spec", spec)
		c.merge(spec, files)
		return nil
	}

	if c.net == nil {
		return ErrDownloadsDisabled
	}
	files, err := c.net.fetch(ctx, spec)
	if err != nil {
		return err
	}
	c.log.Info("package downloaded", "spec", spec, "files", len(files))

	// Write-through for future sessions. Best-effort; the in-memory copy
	// below is authoritative for this session.
	c.disk.write(spec, files)

	c.merge(spec, files)
	return nil
}

// merge commits a complete file set under spec. First writer wins: a
// concurrent fetch that lost the race is discarded so readers only ever
// observe one consistent set per spec.
func (c *packageCache) merge(spec PackageSpec, files FileSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.packages[spec]; ok {
		return
	}
	c.packages[spec] = files
}

// diskAdapter binds the diskcache package to PackageSpec keys.
type diskAdapter struct {
	cache *diskcache.Cache
}

func (a diskAdapter) read(spec PackageSpec) (FileSet, bool) {
	files, ok := a.cache.Read(spec.Namespace, spec.Name, spec.Version.String())
	if !ok {
		return nil, false
	}
	return NewFileSet(files), true
}

func (a diskAdapter) write(spec PackageSpec, files FileSet) {
	a.cache.Write(spec.Namespace, spec.Name, spec.Version.String(), files)
}

// netAdapter binds the registry client to PackageSpec keys and maps its
// errors into the resolution taxonomy.
type netAdapter struct {
	client *registry.Client
}

func (a netAdapter) fetch(ctx context.Context, spec PackageSpec) (FileSet, error) {
	files, err := a.client.Download(ctx, spec.Namespace, spec.Name, spec.Version.String())
	if err != nil {
		var reqErr *registry.RequestError
		if errors.As(err, &reqErr) {
			return nil, &NetworkError{URL: reqErr.URL, Status: reqErr.Status, Err: reqErr.Err}
		}
		var extErr *registry.ExtractError
		if errors.As(err, &extErr) {
			return nil, &ArchiveError{Spec: spec, Err: extErr.Err}
		}
		return nil, err
	}
	return NewFileSet(files), nil
}
