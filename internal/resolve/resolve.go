// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/bldctlgo/internal/memo"
)

// DefaultMarker is the tag embedded in versioned companion filenames,
// as in lib.bldc-30.mxi.
const DefaultMarker = "bldc"

// DefaultPackageFiles returns the marker filenames whose presence makes a
// directory a regular (non-namespace) package.
func DefaultPackageFiles() []string {
	return []string{"__pkg__.mx", "__pkg__.mxi", "__pkg__.mxc"}
}

// VersionEntry is one discovered versioned companion file.
type VersionEntry struct {
	Version int    `json:"version"`
	Path    string `json:"path"`
}

// PackageDir is the classification result for a directory walk.
type PackageDir struct {
	Dir       string `json:"dir"`
	Namespace bool   `json:"namespace"`
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithMarker overrides the companion filename tag.
func WithMarker(marker string) Option {
	return func(r *Resolver) {
		if marker != "" {
			r.marker = marker
		}
	}
}

// WithPackageFiles overrides the package marker filenames.
func WithPackageFiles(names []string) Option {
	return func(r *Resolver) {
		if len(names) > 0 {
			r.packageFiles = names
		}
	}
}

// Resolver answers companion-file and package-layout queries against a
// filesystem snapshot. All public lookups are memoized through the registry
// handed to New; the caller clears the registry when the tree changes.
type Resolver struct {
	marker       string
	packageFiles []string

	findVersioned *memo.Func4[string, string, string, int, string]
	hasMarker     *memo.Func[string, bool]
	rootDir       *memo.Func[string, string]
	checkPkg      *memo.Func2[string, string, PackageDir]
}

// New builds a Resolver whose caches are owned by reg.
func New(reg *memo.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		marker:       DefaultMarker,
		packageFiles: DefaultPackageFiles(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.findVersioned = memo.NewFunc4(reg, r.findVersionedFile)
	r.hasMarker = memo.NewFunc(reg, r.containsMarker)
	r.rootDir = memo.NewFunc(reg, r.findRootPackageDir)
	r.checkPkg = memo.NewFunc2(reg, r.checkPackageDir)
	return r
}

// FindVersionedFile returns the best companion for base+suffix in dir given
// the current toolchain rank: the highest tagged version not exceeding
// current, else the unversioned file, else "". The empty result is not an
// error; filesystem errors reading dir are.
func (r *Resolver) FindVersionedFile(dir, base, suffix string, current int) (string, error) {
	return r.findVersioned.Call(dir, base, suffix, current)
}

func (r *Resolver) findVersionedFile(dir, base, suffix string, current int) (string, error) {
	entries, err := r.ScanVersionedFiles(dir, base, suffix)
	if err != nil {
		return "", err
	}

	// The unversioned file is the last resort, ranked below any tagged one.
	bestVersion := -1
	bestPath := ""
	unversioned := filepath.Join(dir, base+suffix)
	if _, err := os.Stat(unversioned); err == nil {
		bestPath = unversioned
	}

	for _, e := range entries {
		if bestVersion < e.Version && e.Version <= current {
			bestVersion = e.Version
			bestPath = e.Path
		}
	}

	log.Debugf("resolved %s%s in %s to %q (rank %d)", base, suffix, dir, bestPath, bestVersion)
	return bestPath, nil
}

// ScanVersionedFiles lists every tagged companion for base+suffix in dir,
// sorted by version then path so duplicate version numbers select
// deterministically. Not memoized; callers wanting the cached answer go
// through FindVersionedFile.
func (r *Resolver) ScanVersionedFiles(dir, base, suffix string) ([]VersionEntry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	prefix := base + "." + r.marker + "-"

	var entries []VersionEntry
	for _, de := range dirents {
		name := de.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		digits := strings.TrimSuffix(strings.TrimPrefix(name, prefix), suffix)
		version, err := strconv.Atoi(digits)
		if err != nil {
			// Not a version tag, e.g. lib.bldc-next.mxi. Skip it.
			continue
		}
		entries = append(entries, VersionEntry{Version: version, Path: filepath.Join(dir, name)})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Version != entries[j].Version {
			return entries[i].Version < entries[j].Version
		}
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}

// IsPackageDir reports whether dir directly contains a package marker file.
func (r *Resolver) IsPackageDir(dir string) bool {
	found, _ := r.hasMarker.Call(dir)
	return found
}

func (r *Resolver) containsMarker(dir string) (bool, error) {
	for _, name := range r.packageFiles {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return true, nil
		}
	}
	return false, nil
}

// CheckPackageDir descends from dir through the given package name segments
// and reports the final directory plus whether the whole chain is a namespace
// package. Namespace holds only if every segment lacked a marker file.
func (r *Resolver) CheckPackageDir(dir string, segments []string) (PackageDir, error) {
	return r.checkPkg.Call(dir, strings.Join(segments, "/"))
}

func (r *Resolver) checkPackageDir(dir, joined string) (PackageDir, error) {
	result := PackageDir{Dir: dir, Namespace: true}
	if joined == "" {
		result.Namespace = !r.IsPackageDir(dir)
		return result, nil
	}

	for _, segment := range strings.Split(joined, "/") {
		result.Dir = filepath.Join(result.Dir, segment)
		if r.IsPackageDir(result.Dir) {
			result.Namespace = false
		}
	}
	return result, nil
}

// FindRootPackageDir walks up from file's directory and returns the
// outermost ancestor that is still a package directory. If the file's own
// directory carries no marker, that directory is returned as-is.
func (r *Resolver) FindRootPackageDir(file string) string {
	root, _ := r.rootDir.Call(file)
	return root
}

func (r *Resolver) findRootPackageDir(file string) (string, error) {
	dir := filepath.Dir(file)
	if dir == file {
		// Already at the filesystem root.
		return dir, nil
	}
	if !r.IsPackageDir(dir) {
		return dir, nil
	}

	for {
		parent := filepath.Dir(dir)
		if parent == dir || !r.IsPackageDir(parent) {
			return dir, nil
		}
		dir = parent
	}
}

// CheckReservedName fails early when a module tries to take the toolchain's
// own name; compiling a module called bldc only ends in grief later.
func CheckReservedName(fullModuleName string) error {
	if fullModuleName == DefaultMarker || strings.HasPrefix(fullModuleName, DefaultMarker+".") {
		return fmt.Errorf("%s is a reserved module name", DefaultMarker)
	}
	return nil
}
