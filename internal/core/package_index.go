package core

import (
	"yyoom/internal/types"
)

// IndexEntry is one (version, package) pair of a capability bucket.
type IndexEntry struct {
	EVR     types.EVR
	Package types.Package
}

// PackageIndex maps a capability name to every package providing it,
// across all engine sources. Duplicates are kept; matching decides which
// entry wins.
type PackageIndex map[string][]IndexEntry

// BuildPackageIndex projects the engine's package views into a capability
// index. A package's own name is always indexed.
func BuildPackageIndex(lists types.PackageLists) PackageIndex {
	index := PackageIndex{}
	for _, pkg := range lists.All() {
		entry := IndexEntry{EVR: pkg.EVR(), Package: pkg}
		seen := map[string]struct{}{}
		for _, capability := range append([]string{pkg.Name}, pkg.Provides...) {
			if capability == "" {
				continue
			}
			if _, ok := seen[capability]; ok {
				continue
			}
			seen[capability] = struct{}{}
			index[capability] = append(index[capability], entry)
		}
	}
	return index
}

// Lookup returns the bucket for a capability and whether it exists.
func (idx PackageIndex) Lookup(capability string) ([]IndexEntry, bool) {
	entries, ok := idx[capability]
	return entries, ok
}

// Installed reports whether any installed package provides the capability
// in a version that satisfies every clause of req.
func (idx PackageIndex) Installed(req types.Requirement) bool {
	entries, ok := idx.Lookup(req.Name)
	if !ok {
		return false
	}
	cache := newVersionCache()
	for _, entry := range entries {
		if entry.Package.Installed() && cache.satisfiesAll(entry.EVR, req.Clauses) {
			return true
		}
	}
	return false
}
