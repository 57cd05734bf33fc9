package worldres

// FileSet maps normalized virtual paths to file content. Content slices
// are shared by reference across cache tiers and must be treated as
// immutable after insertion.
type FileSet map[string][]byte

// NewFileSet builds a FileSet from raw entries, normalizing every key.
// The map is copied; the content slices are not.
func NewFileSet(files map[string][]byte) FileSet {
	fs := make(FileSet, len(files))
	for path, content := range files {
		fs[NormalizePath(path)] = content
	}
	return fs
}

// staticFileTable is the immutable path lookup for caller-supplied files.
// Built once at resolver construction, read-only afterwards, so lookups
// need no synchronization.
type staticFileTable struct {
	files FileSet
}

func newStaticFileTable(files FileSet) *staticFileTable {
	return &staticFileTable{files: files}
}

// get returns the content for an exact normalized path. Absence is a
// normal outcome, reported to the resolver rather than as an error.
func (t *staticFileTable) get(path string) ([]byte, bool) {
	content, ok := t.files[path]
	return content, ok
}
