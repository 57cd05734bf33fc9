package worldres

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// DefaultPrefetchConcurrency bounds parallel registry downloads.
const DefaultPrefetchConcurrency = 4

// Prefetch warms the package cache for a set of packages, downloading in
// parallel whatever disk and memory do not already have. Failures do not
// stop the remaining downloads; the returned error joins one entry per
// failed spec. A download-disabled resolver fails every uncached spec
// with ErrDownloadsDisabled.
func (r *Resolver) Prefetch(ctx context.Context, specs ...PackageSpec) error {
	p := pool.New().
		WithMaxGoroutines(DefaultPrefetchConcurrency).
		WithContext(ctx)

	for _, spec := range specs {
		p.Go(func(ctx context.Context) error {
			if err := r.cache.materialize(ctx, spec); err != nil {
				return fmt.Errorf("prefetch %s: %w", spec, err)
			}
			r.log.Debug("package ready", "spec", spec)
			return nil
		})
	}

	return p.Wait()
}
