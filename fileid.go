package worldres

// FileID is a discriminated reference to content the compiler may request:
// the main document, a caller-supplied file, or a file inside a package.
// IDs are immutable value types and usable as map keys. The main document
// is deliberately distinct from every path ID, so supplying a document
// does not make it addressable as a plain file.
type FileID struct {
	kind kindID
	path string
	spec PackageSpec
}

type kindID uint8

const (
	kindMain kindID = iota
	kindPath
	kindPackage
)

// MainID refers to the single entry document of a compilation.
func MainID() FileID {
	return FileID{kind: kindMain}
}

// PathID refers to a caller-supplied file. The path is normalized.
func PathID(path string) FileID {
	return FileID{kind: kindPath, path: NormalizePath(path)}
}

// PackageFileID refers to a file scoped to a package. The path is normalized.
func PackageFileID(spec PackageSpec, path string) FileID {
	return FileID{kind: kindPackage, spec: spec, path: NormalizePath(path)}
}

// IsMain reports whether the ID refers to the main document.
func (id FileID) IsMain() bool { return id.kind == kindMain }

// Path returns the normalized virtual path, or "" for the main document.
func (id FileID) Path() string { return id.path }

// Package returns the package spec and whether the ID is package-scoped.
func (id FileID) Package() (PackageSpec, bool) {
	return id.spec, id.kind == kindPackage
}

func (id FileID) String() string {
	switch id.kind {
	case kindMain:
		return "<main>"
	case kindPackage:
		return id.spec.String() + id.path
	default:
		return id.path
	}
}
