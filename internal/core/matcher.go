package core

import (
	"errors"
	"slices"

	"yyoom/internal/types"
)

// ErrNotFound is returned by Find when the capability is unknown or no
// version satisfies the requirement. It is distinct from an empty result.
var ErrNotFound = errors.New("no package matches requirement")

// Find parses raw and returns every indexed package satisfying it.
func Find(index PackageIndex, raw string) ([]types.Package, error) {
	req, err := ParseRequirement(raw)
	if err != nil {
		return nil, err
	}
	return FindRequirement(index, req)
}

// FindRequirement returns every indexed package satisfying req, in
// descending version order.
func FindRequirement(index PackageIndex, req types.Requirement) ([]types.Package, error) {
	entries, ok := index.Lookup(req.Name)
	if !ok {
		return nil, ErrNotFound
	}
	cache := newVersionCache()
	var matches []types.Package
	for _, entry := range entries {
		if cache.satisfiesAll(entry.EVR, req.Clauses) {
			matches = append(matches, entry.Package)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	cache.sortPackages(matches)
	return matches, nil
}

// SelectInstall picks the install target among matches. Preferred repos
// narrow the candidates unless that leaves nothing, in which case every
// match is considered. The highest version wins.
func SelectInstall(matches []types.Package, preferred []string) (types.Package, bool) {
	if len(matches) == 0 {
		return types.Package{}, false
	}
	candidates := matches
	if len(preferred) > 0 {
		var narrowed []types.Package
		for _, pkg := range matches {
			if slices.Contains(preferred, pkg.Repo) {
				narrowed = append(narrowed, pkg)
			}
		}
		if len(narrowed) > 0 {
			candidates = narrowed
		}
	}
	sorted := slices.Clone(candidates)
	newVersionCache().sortPackages(sorted)
	return sorted[0], true
}

// SelectErase returns every installed match, one per NEVRA.
func SelectErase(matches []types.Package) []types.Package {
	seen := map[string]struct{}{}
	var out []types.Package
	for _, pkg := range matches {
		if !pkg.Installed() {
			continue
		}
		if _, ok := seen[pkg.NEVRA()]; ok {
			continue
		}
		seen[pkg.NEVRA()] = struct{}{}
		out = append(out, pkg)
	}
	return out
}
