package worldres

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a semantic package version.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 ordering v against o.
func (v Version) Compare(o Version) int {
	if c := cmpInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmpInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmpInt(v.Patch, o.Patch)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ParseVersion parses a "MAJOR.MINOR.PATCH" triple.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: want MAJOR.MINOR.PATCH", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (len(p) > 1 && p[0] == '0') {
			return Version{}, fmt.Errorf("invalid version %q: bad component %q", s, p)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// PackageSpec identifies one version of a package. It is a value type with
// structural equality, usable as a map key; the same triple also keys the
// on-disk cache layout.
type PackageSpec struct {
	Namespace string
	Name      string
	Version   Version
}

// String renders the canonical "@namespace/name:MAJOR.MINOR.PATCH" form.
func (s PackageSpec) String() string {
	return "@" + s.Namespace + "/" + s.Name + ":" + s.Version.String()
}

// Compare gives a total order over specs: namespace, then name, then version.
func (s PackageSpec) Compare(o PackageSpec) int {
	if c := strings.Compare(s.Namespace, o.Namespace); c != 0 {
		return c
	}
	if c := strings.Compare(s.Name, o.Name); c != 0 {
		return c
	}
	return s.Version.Compare(o.Version)
}

// ParseSpec parses the "@namespace/name:MAJOR.MINOR.PATCH" form, e.g.
// "@preview/cetz:0.2.2".
func ParseSpec(s string) (PackageSpec, error) {
	rest, ok := strings.CutPrefix(s, "@")
	if !ok {
		return PackageSpec{}, fmt.Errorf("invalid package spec %q: missing leading @", s)
	}
	namespace, rest, ok := strings.Cut(rest, "/")
	if !ok || namespace == "" {
		return PackageSpec{}, fmt.Errorf("invalid package spec %q: missing namespace", s)
	}
	name, versionStr, ok := strings.Cut(rest, ":")
	if !ok || name == "" {
		return PackageSpec{}, fmt.Errorf("invalid package spec %q: missing version", s)
	}
	version, err := ParseVersion(versionStr)
	if err != nil {
		return PackageSpec{}, fmt.Errorf("invalid package spec %q: %w", s, err)
	}
	return PackageSpec{Namespace: namespace, Name: name, Version: version}, nil
}
