// Package diskcache persists package file sets under a local directory.
//
// Layout mirrors the package identifier:
//
//	root/namespace/name/version/
//	  lib.typ
//	  assets/logo.png
//
// Presence of a version directory is treated as equivalent to a prior
// successful fetch. The disk cache is an optimization tier only: writes
// are best-effort and never a correctness dependency, because the
// in-memory cache already holds the authoritative copy for the session.
package diskcache

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Cache reads and writes package file sets beneath a root directory.
type Cache struct {
	root string
	log  *log.Logger
}

// New creates a cache rooted at dir. The logger receives write failures,
// which are swallowed rather than propagated.
func New(dir string, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cache{root: dir, log: logger}
}

// Root returns the cache root directory.
func (c *Cache) Root() string { return c.root }

// Dir returns the directory for one package version.
func (c *Cache) Dir(namespace, name, version string) string {
	return filepath.Join(c.root, namespace, name, version)
}

// Read loads a package's entire file set from disk. Keys are re-rooted to
// "/" relative to the version directory. A missing directory is a cache
// miss, not an error.
func (c *Cache) Read(namespace, name, version string) (map[string][]byte, bool) {
	dir := c.Dir(namespace, name, version)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, false
	}

	files := make(map[string][]byte)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files["/"+filepath.ToSlash(rel)] = content
		return nil
	})
	if err != nil {
		c.log.Warn("disk cache read failed", "dir", dir, "err", err)
		return nil, false
	}
	return files, true
}

// Write persists a file set for one package version. Best-effort: every
// failure is logged and swallowed. Concurrent writers for the same
// package race benignly since the bytes are identical.
func (c *Cache) Write(namespace, name, version string, files map[string][]byte) {
	dir := c.Dir(namespace, name, version)
	for path, content := range files {
		dst := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(path, "/")))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			c.log.Warn("disk cache write failed", "path", dst, "err", err)
			continue
		}
		if err := os.WriteFile(dst, content, 0o644); err != nil {
			c.log.Warn("disk cache write failed", "path", dst, "err", err)
		}
	}
}

// Remove deletes one package version from the cache.
func (c *Cache) Remove(namespace, name, version string) error {
	return os.RemoveAll(c.Dir(namespace, name, version))
}

// RemoveAll deletes the entire cache directory.
func (c *Cache) RemoveAll() error {
	return os.RemoveAll(c.root)
}

// Entry describes one cached package version.
type Entry struct {
	Namespace string
	Name      string
	Version   string
	Files     int
	Bytes     int64
}

// List enumerates every cached package version. A missing root yields an
// empty list.
func (c *Cache) List() ([]Entry, error) {
	var entries []Entry

	namespaces, err := readDirNames(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	for _, ns := range namespaces {
		names, err := readDirNames(filepath.Join(c.root, ns))
		if err != nil {
			continue
		}
		for _, name := range names {
			versions, err := readDirNames(filepath.Join(c.root, ns, name))
			if err != nil {
				continue
			}
			for _, version := range versions {
				e := Entry{Namespace: ns, Name: name, Version: version}
				dir := c.Dir(ns, name, version)
				filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
					if err != nil || !d.Type().IsRegular() {
						return nil
					}
					if info, err := d.Info(); err == nil {
						e.Files++
						e.Bytes += info.Size()
					}
					return nil
				})
				entries = append(entries, e)
			}
		}
	}
	return entries, nil
}

func readDirNames(dir string) ([]string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, d := range dirents {
		if d.IsDir() {
			names = append(names, d.Name())
		}
	}
	return names, nil
}
