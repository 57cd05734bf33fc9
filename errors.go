package worldres

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that an identifier has no resolvable content in
	// any tier (memory, disk, network).
	ErrNotFound = errors.New("worldres: not found")

	// ErrInvalidEncoding reports that content was found but is not valid
	// UTF-8 where source text was required.
	ErrInvalidEncoding = errors.New("worldres: invalid utf-8")

	// ErrDownloadsDisabled reports a package miss on a resolver that was
	// constructed without download capability.
	ErrDownloadsDisabled = errors.New("worldres: downloads disabled")

	// ErrNetwork is the base error matched by NetworkError via errors.Is.
	ErrNetwork = errors.New("worldres: network failure")

	// ErrMalformedArchive is the base error matched by ArchiveError.
	ErrMalformedArchive = errors.New("worldres: malformed archive")
)

// NetworkError reports that the registry request failed: transport error,
// timeout, or a non-success status.
type NetworkError struct {
	URL    string
	Status int // zero when the request never completed
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("registry request %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("registry request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is matches ErrNetwork so callers can classify without the concrete type.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ArchiveError reports that a downloaded package archive could not be
// decompressed or parsed as a tar stream.
type ArchiveError struct {
	Spec PackageSpec
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("package %s: malformed archive: %v", e.Spec, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

func (e *ArchiveError) Is(target error) bool { return target == ErrMalformedArchive }
