package worldres

// NormalizePath canonicalizes a caller-supplied virtual path to its rooted
// form. Paths already starting with "/" are returned unchanged, so the
// function is idempotent. It is applied at every ingestion point (options,
// package file sets, disk reads, archive extraction); lookups never
// re-normalize.
func NormalizePath(path string) string {
	if len(path) > 0 && path[0] == '/' {
		return path
	}
	return "/" + path
}
