// Package worldres supplies a document compiler with every external
// resource it resolves during compilation: the main document text,
// caller-supplied auxiliary files, versioned packages, font data, and the
// current time.
//
// Package lookups fall through three tiers: an in-memory cache seeded
// with caller-supplied packages, a persistent on-disk cache keyed by
// namespace/name/version, and finally an HTTP fetch of the package
// archive from a registry. Every successful download is written back to
// memory and disk, so later lookups and later processes skip the network.
//
// Basic usage:
//
//	r, _ := worldres.New("= Title",
//	    worldres.WithFile("logo.png", logoBytes),
//	)
//
//	// Main document text
//	src, _ := r.ResolveSource(ctx, worldres.MainID())
//
//	// Caller-supplied file bytes
//	data, _ := r.ResolveBytes(ctx, worldres.PathID("/logo.png"))
//
//	// A file inside a package (memory → disk → network)
//	spec, _ := worldres.ParseSpec("@preview/cetz:0.2.2")
//	lib, _ := r.ResolveBytes(ctx, worldres.PackageFileID(spec, "lib.typ"))
//
// Offline usage pre-seeds packages and disables downloads:
//
//	r, _ := worldres.New(src,
//	    worldres.WithPackageString("@preview/demo:0.1.0", files),
//	    worldres.WithDownloads(false),
//	)
//
// Resolution calls are safe for concurrent use; the package cache is the
// only shared mutable state and is guarded internally.
package worldres
